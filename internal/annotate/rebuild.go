package annotate

import (
	"context"
	"errors"
	"fmt"

	"geosketch/internal/geom"
	"geosketch/internal/logging"
	"geosketch/internal/overlay"
)

// Layers is the complete live overlay set.
type Layers interface {
	Each(fn func(o *overlay.Overlay))
}

// Skipped describes an overlay that could not be turned into a record.
type Skipped struct {
	Index int
	ID    string
	Kind  geom.Kind
	Err   error
}

// Report summarizes what a rebuild could not carry over.
type Report struct {
	Skipped []Skipped
	// Unnamed counts markers without a bound label; their name is left empty.
	Unnamed int
}

// Err joins the causes of every skipped overlay, or returns nil.
func (r Report) Err() error {
	if len(r.Skipped) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Skipped))
	for _, s := range r.Skipped {
		errs = append(errs, fmt.Errorf("overlay %d (%s): %w", s.Index, s.Kind, s.Err))
	}
	return errors.Join(errs...)
}

// Reconcile derives a fresh document from the live overlays. Overlays that
// cannot be classified are skipped and reported; the rest are kept.
func Reconcile(layers Layers) (geom.Document, Report) {
	doc := geom.NewDocument()
	var report Report

	i := 0
	layers.Each(func(o *overlay.Overlay) {
		defer func() { i++ }()

		rec, err := geom.Classify(o)
		if err != nil {
			report.Skipped = append(report.Skipped, Skipped{Index: i, ID: o.ShortID(), Kind: o.Kind(), Err: err})
			return
		}
		if m, ok := rec.(geom.Marker); ok && m.Name == "" {
			report.Unnamed++
		}
		if err := doc.Append(rec); err != nil {
			report.Skipped = append(report.Skipped, Skipped{Index: i, ID: o.ShortID(), Kind: o.Kind(), Err: err})
		}
	})

	return doc, report
}

// Rebuild reconciles the live overlays and replaces the stored document with
// the result. Records without a surviving overlay are dropped. The returned
// error is only ever a write failure; skipped overlays are in the Report.
func (s *Service) Rebuild(ctx context.Context, layers Layers) (geom.Document, Report, error) {
	log := logging.GetFromContext(ctx)

	doc, report := Reconcile(layers)
	for _, sk := range report.Skipped {
		log.Warn("overlay left out of rebuild", "index", sk.Index, "id", sk.ID, "kind", sk.Kind.String(), "err", sk.Err.Error())
	}

	if err := s.store.Save(ctx, doc); err != nil {
		return doc, report, fmt.Errorf("rebuild: %w", err)
	}

	log.Debug("document rebuilt", "records", doc.Len(), "skipped", len(report.Skipped), "unnamed", report.Unnamed)
	return doc, report, nil
}
