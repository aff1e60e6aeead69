package geom

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Record is one persisted geometry. The concrete type is one of Marker,
// Polyline, Polygon, Rectangle or Circle.
type Record interface {
	Kind() Kind
	Validate() error
}

type Marker struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Name string  `json:"name,omitempty"`
}

// UnmarshalJSON accepts a name of any JSON type. Strings are trimmed; other
// values keep their JSON text so a document with a numeric name still loads.
func (m *Marker) UnmarshalJSON(b []byte) error {
	var w struct {
		Lat  float64         `json:"lat"`
		Lng  float64         `json:"lng"`
		Name json.RawMessage `json:"name"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*m = Marker{Lat: w.Lat, Lng: w.Lng}
	raw := bytes.TrimSpace(w.Name)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
	case raw[0] == '"':
		var name string
		if err := json.Unmarshal(raw, &name); err != nil {
			return err
		}
		m.Name = strings.TrimSpace(name)
	default:
		m.Name = string(raw)
	}
	return nil
}

// UnnamedLabel is shown for markers whose name could not be recovered.
const UnnamedLabel = "unnamed"

func (Marker) Kind() Kind { return KindMarker }

func (m Marker) Validate() error {
	return checkPoint(LatLng{Lat: m.Lat, Lng: m.Lng})
}

// Title is the name to display, falling back to UnnamedLabel.
func (m Marker) Title() string {
	if m.Name == "" {
		return UnnamedLabel
	}
	return m.Name
}

type Polyline struct {
	Points []LatLng
}

func (Polyline) Kind() Kind { return KindPolyline }

func (p Polyline) Validate() error {
	if len(p.Points) < 2 {
		return fmt.Errorf("%w: polyline needs at least 2 points, got %d", ErrInvalidGeometry, len(p.Points))
	}
	return checkPoints(p.Points)
}

func (p Polyline) MarshalJSON() ([]byte, error) { return json.Marshal(nonNil(p.Points)) }

func (p *Polyline) UnmarshalJSON(b []byte) error { return json.Unmarshal(b, &p.Points) }

type Polygon struct {
	Ring []LatLng
}

func (Polygon) Kind() Kind { return KindPolygon }

func (p Polygon) Validate() error {
	if len(p.Ring) < 3 {
		return fmt.Errorf("%w: polygon needs at least 3 points, got %d", ErrInvalidGeometry, len(p.Ring))
	}
	if closed(p.Ring) {
		return fmt.Errorf("%w: polygon ring is closed", ErrInvalidGeometry)
	}
	return checkPoints(p.Ring)
}

func (p Polygon) MarshalJSON() ([]byte, error) { return json.Marshal(nonNil(p.Ring)) }

func (p *Polygon) UnmarshalJSON(b []byte) error { return json.Unmarshal(b, &p.Ring) }

type Rectangle struct {
	Ring []LatLng
}

func (Rectangle) Kind() Kind { return KindRectangle }

func (r Rectangle) Validate() error {
	if len(r.Ring) != 4 {
		return fmt.Errorf("%w: rectangle needs exactly 4 points, got %d", ErrInvalidGeometry, len(r.Ring))
	}
	if closed(r.Ring) {
		return fmt.Errorf("%w: rectangle ring is closed", ErrInvalidGeometry)
	}
	if err := checkPoints(r.Ring); err != nil {
		return err
	}
	if ZeroArea(r.Ring) {
		return fmt.Errorf("%w: rectangle has zero width or height", ErrInvalidGeometry)
	}
	return nil
}

// ZeroArea reports whether the points span no width or no height.
func ZeroArea(ring []LatLng) bool {
	if len(ring) == 0 {
		return true
	}
	minLat, maxLat := ring[0].Lat, ring[0].Lat
	minLng, maxLng := ring[0].Lng, ring[0].Lng
	for _, p := range ring[1:] {
		minLat, maxLat = math.Min(minLat, p.Lat), math.Max(maxLat, p.Lat)
		minLng, maxLng = math.Min(minLng, p.Lng), math.Max(maxLng, p.Lng)
	}
	return minLat == maxLat || minLng == maxLng
}

func (r Rectangle) MarshalJSON() ([]byte, error) { return json.Marshal(nonNil(r.Ring)) }

func (r *Rectangle) UnmarshalJSON(b []byte) error { return json.Unmarshal(b, &r.Ring) }

// RectangleFromCorners returns the ring SW, NW, NE, SE spanned by two opposite corners.
func RectangleFromCorners(a, b LatLng) Rectangle {
	south, north := math.Min(a.Lat, b.Lat), math.Max(a.Lat, b.Lat)
	west, east := math.Min(a.Lng, b.Lng), math.Max(a.Lng, b.Lng)
	return Rectangle{Ring: []LatLng{
		{Lat: south, Lng: west},
		{Lat: north, Lng: west},
		{Lat: north, Lng: east},
		{Lat: south, Lng: east},
	}}
}

type Circle struct {
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Radius float64 `json:"radius"`
}

func (Circle) Kind() Kind { return KindCircle }

func (c Circle) Validate() error {
	if !(c.Radius > 0) || math.IsInf(c.Radius, 0) {
		return fmt.Errorf("%w: circle radius must be positive, got %v", ErrInvalidGeometry, c.Radius)
	}
	return checkPoint(LatLng{Lat: c.Lat, Lng: c.Lng})
}

// Unclose drops a trailing point that repeats the first one.
func Unclose(ring []LatLng) []LatLng {
	if closed(ring) {
		return ring[:len(ring)-1]
	}
	return ring
}

// UncloseRectangle drops the repeated fifth point of a closed rectangle ring.
// A 4-point ring is returned as is, even when a degenerate ring repeats its
// first corner.
func UncloseRectangle(ring []LatLng) []LatLng {
	if len(ring) == 5 && closed(ring) {
		return ring[:4]
	}
	return ring
}

func closed(ring []LatLng) bool {
	return len(ring) > 1 && ring[0] == ring[len(ring)-1]
}

func checkPoints(pts []LatLng) error {
	for _, p := range pts {
		if err := checkPoint(p); err != nil {
			return err
		}
	}
	return nil
}

func checkPoint(p LatLng) error {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lng, 0) {
		return fmt.Errorf("%w: coordinate is not finite", ErrInvalidGeometry)
	}
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range", ErrInvalidGeometry, p.Lat)
	}
	return nil
}

func nonNil(pts []LatLng) []LatLng {
	if pts == nil {
		return []LatLng{}
	}
	return pts
}
