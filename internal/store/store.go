// Package store persists the whole geometry document under a single key of
// an opaque key-value backend.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"geosketch/internal/geom"
	"geosketch/internal/logging"
)

var (
	ErrNotFound      = errors.New("store: key not found")
	ErrQuotaExceeded = errors.New("store: quota exceeded")
)

// Backend is a synchronous get/set key-value surface.
// Get returns ErrNotFound when the key has never been written.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// WriteError reports that a document was not persisted.
type WriteError struct {
	Key string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("store: could not write %q: %s", e.Key, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Store loads and overwrites the document. It holds no lock: a load-modify-save
// cycle is not atomic with respect to other writers of the same key.
type Store struct {
	backend Backend
	key     string
}

func New(backend Backend, key string) *Store {
	return &Store{backend: backend, key: key}
}

func (s *Store) Key() string { return s.key }

// Load returns the persisted document. A missing, unreadable or corrupt value
// yields the empty document; Load never fails.
func (s *Store) Load(ctx context.Context) geom.Document {
	log := logging.GetFromContext(ctx)

	raw, err := s.backend.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			loads.WithLabelValues("empty").Inc()
			return geom.NewDocument()
		}
		log.Error("could not read document, starting empty", "key", s.key, "err", err.Error())
		loads.WithLabelValues("error").Inc()
		return geom.NewDocument()
	}
	if len(raw) == 0 {
		loads.WithLabelValues("empty").Inc()
		return geom.NewDocument()
	}

	doc, err := decode(raw)
	if err != nil {
		log.Warn("stored document is corrupt, starting empty", "key", s.key, "err", err.Error())
		loads.WithLabelValues("corrupt").Inc()
		return geom.NewDocument()
	}

	loads.WithLabelValues("ok").Inc()
	return doc
}

// Save serializes the full document and overwrites the stored value.
// Failures are returned as *WriteError.
func (s *Store) Save(ctx context.Context, doc geom.Document) error {
	log := logging.GetFromContext(ctx)

	b, err := json.Marshal(doc)
	if err != nil {
		saves.WithLabelValues("error").Inc()
		return &WriteError{Key: s.key, Err: err}
	}

	if err := s.backend.Set(ctx, s.key, b); err != nil {
		log.Error("could not write document", "key", s.key, "err", err.Error())
		saves.WithLabelValues("error").Inc()
		return &WriteError{Key: s.key, Err: err}
	}

	log.Debug("document saved", "key", s.key, "records", doc.Len(), "bytes", len(b))
	saves.WithLabelValues("ok").Inc()
	return nil
}

func decode(raw []byte) (doc geom.Document, err error) {
	// a value of the wrong shape must not take the caller down
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("decode panic: %v", r)
		}
	}()
	if err := json.Unmarshal(raw, &doc); err != nil {
		return geom.Document{}, err
	}
	return doc, nil
}
