package geom

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Document is the complete persisted snapshot of all records.
// The "rectangle" key is singular on the wire and holds a list of rings.
type Document struct {
	Markers    []Marker    `json:"markers"`
	Polygons   []Polygon   `json:"polygons"`
	Polylines  []Polyline  `json:"polylines"`
	Rectangles []Rectangle `json:"rectangle"`
	Circles    []Circle    `json:"circles"`
}

// NewDocument returns a document with all five sequences present and empty.
func NewDocument() Document {
	return Document{
		Markers:    []Marker{},
		Polygons:   []Polygon{},
		Polylines:  []Polyline{},
		Rectangles: []Rectangle{},
		Circles:    []Circle{},
	}
}

type plainDocument Document

func (d Document) MarshalJSON() ([]byte, error) {
	d.fill()
	return json.Marshal(plainDocument(d))
}

func (d *Document) UnmarshalJSON(b []byte) error {
	var p plainDocument
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*d = Document(p)
	d.fill()
	return nil
}

func (d *Document) fill() {
	if d.Markers == nil {
		d.Markers = []Marker{}
	}
	if d.Polygons == nil {
		d.Polygons = []Polygon{}
	}
	if d.Polylines == nil {
		d.Polylines = []Polyline{}
	}
	if d.Rectangles == nil {
		d.Rectangles = []Rectangle{}
	}
	if d.Circles == nil {
		d.Circles = []Circle{}
	}
}

// Append adds r to the end of its sequence. Closed rings are unclosed first
// and marker names are trimmed.
func (d *Document) Append(r Record) error {
	d.fill()
	switch v := r.(type) {
	case Marker:
		v.Name = strings.TrimSpace(v.Name)
		d.Markers = append(d.Markers, v)
	case Polyline:
		d.Polylines = append(d.Polylines, Polyline{Points: slices.Clone(v.Points)})
	case Polygon:
		d.Polygons = append(d.Polygons, Polygon{Ring: slices.Clone(Unclose(v.Ring))})
	case Rectangle:
		d.Rectangles = append(d.Rectangles, Rectangle{Ring: slices.Clone(UncloseRectangle(v.Ring))})
	case Circle:
		d.Circles = append(d.Circles, v)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedShape, r)
	}
	return nil
}

func (d Document) Len() int {
	return len(d.Markers) + len(d.Polygons) + len(d.Polylines) + len(d.Rectangles) + len(d.Circles)
}

// Clone returns a deep copy; the coordinate slices are not shared.
func (d Document) Clone() Document {
	out := NewDocument()
	out.Markers = append(out.Markers, d.Markers...)
	out.Circles = append(out.Circles, d.Circles...)
	for _, p := range d.Polygons {
		out.Polygons = append(out.Polygons, Polygon{Ring: slices.Clone(p.Ring)})
	}
	for _, p := range d.Polylines {
		out.Polylines = append(out.Polylines, Polyline{Points: slices.Clone(p.Points)})
	}
	for _, r := range d.Rectangles {
		out.Rectangles = append(out.Rectangles, Rectangle{Ring: slices.Clone(r.Ring)})
	}
	return out
}

// Bounds is the lon/lat box around every vertex and circle centre.
func (d Document) Bounds() (BBox, bool) {
	var b BBox
	n := 0
	add := func(p LatLng) {
		b.Extend(p.Lng, p.Lat, n == 0)
		n++
	}
	for _, m := range d.Markers {
		add(LatLng{Lat: m.Lat, Lng: m.Lng})
	}
	for _, c := range d.Circles {
		for _, p := range CircleRing(LatLng{Lat: c.Lat, Lng: c.Lng}, c.Radius, 16) {
			add(p)
		}
	}
	for _, p := range d.Polygons {
		for _, q := range p.Ring {
			add(q)
		}
	}
	for _, p := range d.Polylines {
		for _, q := range p.Points {
			add(q)
		}
	}
	for _, r := range d.Rectangles {
		for _, q := range r.Ring {
			add(q)
		}
	}
	return b, n > 0
}
