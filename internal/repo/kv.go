// Package repo contains all persistence logic for the event board.
// The event collection is stored as one serialized value under one key in a
// key-value backend; each backend has its own file implementing KVStore.
// No business logic lives here, only storage access and encoding.
package repo

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/pkordes/eventboard/internal/domain"
)

// KVStore is the durable local key-value storage the event collection is
// mirrored into. The service layer never sees it directly; EventRepo wraps it.
type KVStore interface {
	// Get returns the value stored under key.
	// Returns domain.ErrNotFound if the key has never been written.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put replaces the value stored under key.
	Put(ctx context.Context, key string, value []byte) error
}

// MemoryKV is an in-process KVStore. Values do not survive a restart; it
// backs tests and the "memory" storage driver.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryKV returns an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string][]byte)}
}

// Get returns a copy of the value stored under key.
func (m *MemoryKV) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return nil, fmt.Errorf("repo.MemoryKV.Get: %w", domain.ErrNotFound)
	}
	return slices.Clone(v), nil
}

// Put stores a copy of value under key.
func (m *MemoryKV) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = slices.Clone(value)
	return nil
}
