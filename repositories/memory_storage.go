package repositories

import (
	"context"
	"sync"
)

// MemoryStorage keeps everything in process memory. Used in tests and as
// the fallback driver when no database is configured.
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string][]byte)}
}

func (m *MemoryStorage) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (m *MemoryStorage) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store(key, value)
	return nil
}

func (m *MemoryStorage) SetMulti(_ context.Context, values map[string][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, value := range values {
		m.store(key, value)
	}
	return nil
}

func (m *MemoryStorage) store(key string, value []byte) {
	copied := make([]byte, len(value))
	copy(copied, value)
	m.data[key] = copied
}
