package geom

import (
	"encoding/json"
	"errors"
	"fmt"
)

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Extend grows the box to include lon/lat. A zero box is seeded by the first point.
func (b *BBox) Extend(lon, lat float64, first bool) {
	if first {
		*b = BBox{MinX: lon, MinY: lat, MaxX: lon, MaxY: lat}
		return
	}
	if lon < b.MinX {
		b.MinX = lon
	}
	if lat < b.MinY {
		b.MinY = lat
	}
	if lon > b.MaxX {
		b.MaxX = lon
	}
	if lat > b.MaxY {
		b.MaxY = lat
	}
}

func (b BBox) Center() LatLng {
	return LatLng{Lat: (b.MinY + b.MaxY) / 2, Lng: (b.MinX + b.MaxX) / 2}
}

// LatLng is a WGS84 coordinate. It is stored as the JSON pair [lat, lng].
type LatLng struct {
	Lat float64
	Lng float64
}

func (p LatLng) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.Lat, p.Lng})
}

func (p *LatLng) UnmarshalJSON(b []byte) error {
	var pair []float64
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("latlng: want 2 values, got %d", len(pair))
	}
	p.Lat, p.Lng = pair[0], pair[1]
	return nil
}

// Kind is the type tag a drawing surface attaches to a live overlay.
type Kind int

const (
	KindUnknown Kind = iota
	KindMarker
	KindPolyline
	KindPolygon
	KindRectangle
	KindCircle
)

func (k Kind) String() string {
	switch k {
	case KindMarker:
		return "marker"
	case KindPolyline:
		return "polyline"
	case KindPolygon:
		return "polygon"
	case KindRectangle:
		return "rectangle"
	case KindCircle:
		return "circle"
	}
	return "unknown"
}

// Is reports whether an overlay of kind k also passes the shape test of base.
// Rectangles are polygons and polygons are polylines on the drawing surface.
func (k Kind) Is(base Kind) bool {
	if k == KindUnknown || base == KindUnknown {
		return false
	}
	if k == base {
		return true
	}
	switch k {
	case KindRectangle:
		return base == KindPolygon || base == KindPolyline
	case KindPolygon:
		return base == KindPolyline
	}
	return false
}

// Shape is the capability set classification needs from a live overlay.
type Shape interface {
	Kind() Kind
	Path() []LatLng
	Center() LatLng
	Radius() float64
	Label() (string, bool)
}

var (
	ErrUnsupportedShape = errors.New("geom: unsupported shape")
	ErrInvalidGeometry  = errors.New("geom: invalid geometry")
)
