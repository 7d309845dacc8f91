package store

import (
	"context"
	"slices"
	"sync"
)

type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		snapshots: map[string][]byte{},
	}
}

func (m *MemoryStore) Save(ctx context.Context, code string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[code] = slices.Clone(data)
	return nil
}

func (m *MemoryStore) Load(ctx context.Context, code string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.snapshots[code]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(data), nil
}

func (m *MemoryStore) Delete(ctx context.Context, code string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snapshots, code)
	return nil
}

func (m *MemoryStore) Codes(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	codes := make([]string, 0, len(m.snapshots))
	for code := range m.snapshots {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes, nil
}

func (m *MemoryStore) Close() error { return nil }
