package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresBackend keeps values in the geosketch_kv table.
type PostgresBackend struct {
	pool *pgxpool.Pool
}

func NewPostgresBackend(ctx context.Context, dsn string) (*PostgresBackend, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	ddl := `
	CREATE TABLE IF NOT EXISTS geosketch_kv (
		key         TEXT  NOT NULL PRIMARY KEY,
		value       BYTEA NOT NULL,
		modified_on timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := pool.Exec(ctx, ddl); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres schema: %w", err)
	}

	return &PostgresBackend{pool: pool}, nil
}

func (p *PostgresBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var v []byte
	err := p.pool.QueryRow(ctx, `SELECT value FROM geosketch_kv WHERE key = @key`, pgx.NamedArgs{"key": key}).Scan(&v)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (p *PostgresBackend) Set(ctx context.Context, key string, value []byte) error {
	upsert := `INSERT INTO geosketch_kv(key, value) VALUES (@key, @value)
			   ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, modified_on = CURRENT_TIMESTAMP;`
	_, err := p.pool.Exec(ctx, upsert, pgx.NamedArgs{"key": key, "value": value})
	return err
}

func (p *PostgresBackend) Close() error {
	p.pool.Close()
	return nil
}
