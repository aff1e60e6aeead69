// Package annotate keeps the persisted geometry document in step with the
// overlays on the drawing surface.
//
// New shapes are appended with the Add* operations. After an edit or delete
// the surface is the source of truth and Rebuild replaces the stored
// document with one derived from the live overlays. On start-up LoadInto
// materializes the stored document back into overlays.
package annotate

import (
	"context"
	"fmt"
	"strings"

	"geosketch/internal/geom"
	"geosketch/internal/logging"
)

// DocumentStore loads and overwrites the whole document.
type DocumentStore interface {
	Load(ctx context.Context) geom.Document
	Save(ctx context.Context, doc geom.Document) error
}

type Service struct {
	store DocumentStore
}

func New(s DocumentStore) *Service {
	return &Service{store: s}
}

// AddMarker appends m; its name is stored trimmed.
func (s *Service) AddMarker(ctx context.Context, m geom.Marker) error {
	m.Name = strings.TrimSpace(m.Name)
	return s.add(ctx, m)
}

func (s *Service) AddPolygon(ctx context.Context, ring []geom.LatLng) error {
	return s.add(ctx, geom.Polygon{Ring: geom.Unclose(ring)})
}

func (s *Service) AddPolyline(ctx context.Context, points []geom.LatLng) error {
	return s.add(ctx, geom.Polyline{Points: points})
}

func (s *Service) AddRectangle(ctx context.Context, ring []geom.LatLng) error {
	return s.add(ctx, geom.Rectangle{Ring: geom.UncloseRectangle(ring)})
}

func (s *Service) AddCircle(ctx context.Context, lat, lng, radius float64) error {
	return s.add(ctx, geom.Circle{Lat: lat, Lng: lng, Radius: radius})
}

// AddShape classifies a newly drawn overlay and appends its record.
func (s *Service) AddShape(ctx context.Context, shape geom.Shape) (geom.Record, error) {
	rec, err := geom.Classify(shape)
	if err != nil {
		return nil, err
	}
	return rec, s.add(ctx, rec)
}

// add appends one record to its sequence; everything else in the stored
// document is written back untouched.
func (s *Service) add(ctx context.Context, rec geom.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	doc := s.store.Load(ctx)
	if err := doc.Append(rec); err != nil {
		return err
	}

	if err := s.store.Save(ctx, doc); err != nil {
		return fmt.Errorf("add %s: %w", rec.Kind(), err)
	}

	logging.GetFromContext(ctx).Debug("record appended", "kind", rec.Kind().String(), "records", doc.Len())
	return nil
}
