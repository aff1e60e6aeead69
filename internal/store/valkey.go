package store

import (
	"context"
	"fmt"

	"github.com/valkey-io/valkey-go"
)

// ValkeyBackend stores values in Valkey (Redis-compatible) without expiry.
type ValkeyBackend struct {
	client valkey.Client
}

func NewValkeyBackend(addr string) (*ValkeyBackend, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{addr},
	})
	if err != nil {
		return nil, fmt.Errorf("valkey connect: %w", err)
	}
	return &ValkeyBackend{client: client}, nil
}

func (v *ValkeyBackend) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := v.client.Do(ctx, v.client.B().Get().Key(key).Build()).AsBytes()
	if valkey.IsValkeyNil(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (v *ValkeyBackend) Set(ctx context.Context, key string, value []byte) error {
	return v.client.Do(ctx, v.client.B().Set().Key(key).Value(valkey.BinaryString(value)).Build()).Error()
}

func (v *ValkeyBackend) Close() error {
	v.client.Close()
	return nil
}
