package store

import (
	"context"
	"fmt"

	"geosketch/internal/config"
)

// Open builds the backend named by cfg.Backend. The returned close function
// is never nil.
func Open(ctx context.Context, cfg config.StorageConfig) (Backend, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Backend {
	case "memory":
		return NewMemoryBackend(), noop, nil
	case "file":
		b, err := NewFileBackend(cfg.Dir)
		if err != nil {
			return nil, noop, err
		}
		return b, noop, nil
	case "sqlite":
		b, err := OpenSQLite(cfg.SQLiteDSN)
		if err != nil {
			return nil, noop, err
		}
		return b, b.Close, nil
	case "valkey":
		b, err := NewValkeyBackend(cfg.ValkeyAddr)
		if err != nil {
			return nil, noop, err
		}
		return b, b.Close, nil
	case "postgres":
		b, err := NewPostgresBackend(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, noop, err
		}
		return b, b.Close, nil
	}
	return nil, noop, fmt.Errorf("store: unknown backend %q", cfg.Backend)
}
