package logic

import (
	"sync"

	"libcatalog/internal/domain"
)

// MemoryCollectionStore is an in-memory implementation of CollectionStore
type MemoryCollectionStore struct {
	mu         sync.RWMutex
	records    domain.Collection
	generation uint64
}

// NewMemoryCollectionStore creates an empty store at generation 0
func NewMemoryCollectionStore() *MemoryCollectionStore {
	return &MemoryCollectionStore{
		records: domain.Collection{},
	}
}

// Snapshot returns the current collection and its generation.
// The slice is shared and must be treated as read-only.
func (s *MemoryCollectionStore) Snapshot() (domain.Collection, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records, s.generation
}

// Replace atomically swaps in a copy of records and returns the new generation
func (s *MemoryCollectionStore) Replace(records domain.Collection) uint64 {
	owned := make(domain.Collection, len(records))
	copy(owned, records)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = owned
	s.generation++
	return s.generation
}

func (s *MemoryCollectionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
