package repositories

import (
	"context"
	"sync"
)

// MemoryKVStore is an in-memory KVStore, used in tests and as the
// fallback when no database is configured.
type MemoryKVStore struct {
	mu   sync.RWMutex
	data map[string]map[string][]byte
}

func NewMemoryKVStore() *MemoryKVStore {
	return &MemoryKVStore{
		data: make(map[string]map[string][]byte),
	}
}

func (s *MemoryKVStore) Get(_ context.Context, namespace, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[namespace][key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	copied := make([]byte, len(value))
	copy(copied, value)
	return copied, nil
}

func (s *MemoryKVStore) Set(_ context.Context, namespace, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ns, ok := s.data[namespace]
	if !ok {
		ns = make(map[string][]byte)
		s.data[namespace] = ns
	}
	copied := make([]byte, len(value))
	copy(copied, value)
	ns[key] = copied
	return nil
}

func (s *MemoryKVStore) Delete(_ context.Context, namespace, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data[namespace], key)
	return nil
}

func (s *MemoryKVStore) ClearNamespace(_ context.Context, namespace string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, namespace)
	return nil
}
