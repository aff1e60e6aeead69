package store

import (
	"context"
	"slices"
	"sync"
)

// MemoryBackend keeps values in process. With Quota > 0 a write whose value
// exceeds Quota bytes fails with ErrQuotaExceeded, like browser storage.
type MemoryBackend struct {
	Quota int

	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: map[string][]byte{}}
}

func (m *MemoryBackend) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(v), nil
}

func (m *MemoryBackend) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Quota > 0 && len(value) > m.Quota {
		return ErrQuotaExceeded
	}
	if m.data == nil {
		m.data = map[string][]byte{}
	}
	m.data[key] = slices.Clone(value)
	return nil
}
