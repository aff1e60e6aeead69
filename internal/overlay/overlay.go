// Package overlay models the live, editable shapes on the drawing surface.
package overlay

import (
	"slices"

	"github.com/google/uuid"

	"geosketch/internal/geom"
)

// Overlay is one live shape. It satisfies geom.Shape.
type Overlay struct {
	id       uuid.UUID
	kind     geom.Kind
	path     []geom.LatLng
	center   geom.LatLng
	radius   float64
	label    string
	hasLabel bool

	Style Style
}

func NewMarker(at geom.LatLng) *Overlay {
	return &Overlay{id: uuid.New(), kind: geom.KindMarker, center: at, Style: DefaultStyle(geom.KindMarker)}
}

func NewPolyline(points []geom.LatLng) *Overlay {
	return newPath(geom.KindPolyline, points)
}

func NewPolygon(ring []geom.LatLng) *Overlay {
	return newPath(geom.KindPolygon, ring)
}

func NewRectangle(ring []geom.LatLng) *Overlay {
	return newPath(geom.KindRectangle, ring)
}

func NewCircle(center geom.LatLng, radius float64) *Overlay {
	return &Overlay{id: uuid.New(), kind: geom.KindCircle, center: center, radius: radius, Style: DefaultStyle(geom.KindCircle)}
}

func newPath(k geom.Kind, pts []geom.LatLng) *Overlay {
	return &Overlay{id: uuid.New(), kind: k, path: slices.Clone(pts), Style: DefaultStyle(k)}
}

// FromRecord builds the overlay for a stored record with its default style.
// A marker name is bound as the overlay label.
func FromRecord(r geom.Record) *Overlay {
	switch v := r.(type) {
	case geom.Marker:
		o := NewMarker(geom.LatLng{Lat: v.Lat, Lng: v.Lng})
		if v.Name != "" {
			o.BindLabel(v.Name)
		}
		return o
	case geom.Polyline:
		return NewPolyline(v.Points)
	case geom.Polygon:
		return NewPolygon(v.Ring)
	case geom.Rectangle:
		return NewRectangle(v.Ring)
	case geom.Circle:
		return NewCircle(geom.LatLng{Lat: v.Lat, Lng: v.Lng}, v.Radius)
	}
	return nil
}

// ID identifies the overlay for the lifetime of the surface. It is not stored.
func (o *Overlay) ID() uuid.UUID { return o.id }

// ShortID is the first block of ID, for tables and logs.
func (o *Overlay) ShortID() string { return o.id.String()[:8] }

func (o *Overlay) Kind() geom.Kind { return o.kind }

// Path returns a copy of the vertices of a polyline, polygon or rectangle.
func (o *Overlay) Path() []geom.LatLng { return slices.Clone(o.path) }

func (o *Overlay) Center() geom.LatLng { return o.center }

func (o *Overlay) Radius() float64 { return o.radius }

func (o *Overlay) Label() (string, bool) { return o.label, o.hasLabel }

func (o *Overlay) BindLabel(text string) {
	o.label = text
	o.hasLabel = true
}

// Title is the label to display next to the overlay.
func (o *Overlay) Title() string {
	if o.kind == geom.KindMarker && (!o.hasLabel || o.label == "") {
		return geom.UnnamedLabel
	}
	return o.label
}

func (o *Overlay) SetRadius(r float64) { o.radius = r }

// Handles are the editable points: the vertices, or the centre for markers and circles.
func (o *Overlay) Handles() []geom.LatLng {
	if o.kind == geom.KindMarker || o.kind == geom.KindCircle {
		return []geom.LatLng{o.center}
	}
	return slices.Clone(o.path)
}

// MoveHandle moves handle i to p. Moving a rectangle corner keeps the shape
// axis-aligned by re-spanning it from the opposite corner; a move that would
// leave the rectangle with zero width or height is refused.
func (o *Overlay) MoveHandle(i int, p geom.LatLng) bool {
	switch o.kind {
	case geom.KindMarker, geom.KindCircle:
		if i != 0 {
			return false
		}
		o.center = p
		return true
	case geom.KindRectangle:
		if i < 0 || i >= len(o.path) || len(o.path) != 4 {
			return false
		}
		ring := geom.RectangleFromCorners(o.path[(i+2)%4], p).Ring
		if geom.ZeroArea(ring) {
			return false
		}
		o.path = ring
		return true
	}
	if i < 0 || i >= len(o.path) {
		return false
	}
	o.path[i] = p
	return true
}

// Outline is the vertex sequence to draw; circles are approximated with n points.
func (o *Overlay) Outline(n int) []geom.LatLng {
	switch o.kind {
	case geom.KindCircle:
		return geom.CircleRing(o.center, o.radius, n)
	case geom.KindMarker:
		return []geom.LatLng{o.center}
	}
	return slices.Clone(o.path)
}

// Closed reports whether the outline wraps back to its first vertex.
func (o *Overlay) Closed() bool {
	return o.kind.Is(geom.KindPolygon) || o.kind == geom.KindCircle
}
