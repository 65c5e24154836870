// Package memory provides in-memory storage implementations used by tests
// and database-less development.
package memory

import (
	"context"
	"sync"

	"github.com/blissbakes/bakehouse/internal/kv"
)

var _ kv.Store = (*KV)(nil)

// KV is a mutex-guarded in-memory kv.Store.
type KV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewKV returns an empty in-memory store.
func NewKV() *KV {
	return &KV{data: make(map[string][]byte)}
}

// Get returns the value for key, or kv.ErrNotFound.
func (s *KV) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, kv.ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Set stores a copy of value under key.
func (s *KV) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	s.data[key] = v
	return nil
}

// Delete removes key; absent keys are a no-op.
func (s *KV) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}
