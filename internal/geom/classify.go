package geom

import (
	"fmt"
	"slices"
	"strings"
)

type rule struct {
	kind  Kind
	build func(Shape) Record
}

// Rectangle must precede Polygon: every rectangle also passes the polygon test.
var rules = []rule{
	{KindMarker, func(s Shape) Record {
		c := s.Center()
		m := Marker{Lat: c.Lat, Lng: c.Lng}
		if name, ok := s.Label(); ok {
			m.Name = strings.TrimSpace(name)
		}
		return m
	}},
	{KindRectangle, func(s Shape) Record { return Rectangle{Ring: slices.Clone(UncloseRectangle(s.Path()))} }},
	{KindPolygon, func(s Shape) Record { return Polygon{Ring: slices.Clone(Unclose(s.Path()))} }},
	{KindPolyline, func(s Shape) Record { return Polyline{Points: slices.Clone(s.Path())} }},
	{KindCircle, func(s Shape) Record {
		c := s.Center()
		return Circle{Lat: c.Lat, Lng: c.Lng, Radius: s.Radius()}
	}},
}

// ClassificationOrder lists the kinds in the order Classify tests them.
func ClassificationOrder() []Kind {
	out := make([]Kind, len(rules))
	for i, r := range rules {
		out[i] = r.kind
	}
	return out
}

// Classify maps a live overlay to its canonical record. The first kind in
// ClassificationOrder that the overlay satisfies wins.
func Classify(s Shape) (Record, error) {
	for _, r := range rules {
		if !s.Kind().Is(r.kind) {
			continue
		}
		rec := r.build(s)
		if err := rec.Validate(); err != nil {
			return nil, err
		}
		return rec, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedShape, s.Kind())
}
