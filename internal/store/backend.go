package store

import (
	"context"
	"errors"
	"sync"
)

// DefaultKey is the fixed key the resume list is persisted under.
const DefaultKey = "career-pulse-resumes"

// ErrKeyNotFound is returned by Backend.Load when nothing is stored under the key.
var ErrKeyNotFound = errors.New("key not found")

// Backend is a durable key-value medium holding serialized documents.
type Backend interface {
	// Load returns the bytes stored under key, or ErrKeyNotFound.
	Load(ctx context.Context, key string) ([]byte, error)
	// Save replaces the bytes stored under key.
	Save(ctx context.Context, key string, value []byte) error
	// Close releases connections held by the backend.
	Close() error
}

// MemoryBackend keeps values in process memory. Used for tests and throwaway sessions.
type MemoryBackend struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string][]byte)}
}

func (m *MemoryBackend) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *MemoryBackend) Save(_ context.Context, key string, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)
	m.mu.Lock()
	m.values[key] = v
	m.mu.Unlock()
	return nil
}

func (m *MemoryBackend) Close() error { return nil }
