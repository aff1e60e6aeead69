package annotate

import (
	"context"

	"geosketch/internal/geom"
	"geosketch/internal/overlay"
)

// Sink receives overlays built from a stored document.
type Sink interface {
	Add(o *overlay.Overlay)
}

// Materialize adds one overlay per record to sink, in the order markers,
// rectangles, polygons, polylines, circles. Points keep their stored order and
// rings are not re-closed. It returns the number of overlays added.
func Materialize(doc geom.Document, sink Sink) int {
	n := 0
	add := func(r geom.Record) {
		sink.Add(overlay.FromRecord(r))
		n++
	}
	for _, m := range doc.Markers {
		add(m)
	}
	for _, r := range doc.Rectangles {
		add(r)
	}
	for _, p := range doc.Polygons {
		add(p)
	}
	for _, p := range doc.Polylines {
		add(p)
	}
	for _, c := range doc.Circles {
		add(c)
	}
	return n
}

// LoadInto materializes the stored document into sink and returns it.
func (s *Service) LoadInto(ctx context.Context, sink Sink) geom.Document {
	doc := s.store.Load(ctx)
	Materialize(doc, sink)
	return doc
}
