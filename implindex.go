package implindex

import (
	"fmt"
	"sync"

	"github.com/docsmith/implindex/datastore"
)

// StoreSet manages the named datastores of record type T a sync process
// addresses, for example one per documentation site.
type StoreSet[T any] struct {
	mu     sync.RWMutex
	stores map[string]datastore.DataStore[T]
}

// NewStoreSet creates a new StoreSet for record type T.
func NewStoreSet[T any]() *StoreSet[T] {
	return &StoreSet[T]{
		stores: make(map[string]datastore.DataStore[T]),
	}
}

// Register adds a datastore under the given key.
func (s *StoreSet[T]) Register(key string, ds datastore.DataStore[T]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.stores[key]; exists {
		return fmt.Errorf("datastore with key %q already registered", key)
	}
	s.stores[key] = ds
	return nil
}

// Get retrieves a datastore by key.
func (s *StoreSet[T]) Get(key string) (datastore.DataStore[T], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ds, exists := s.stores[key]
	if !exists {
		return nil, fmt.Errorf("datastore with key %q not found", key)
	}
	return ds, nil
}

// Remove deletes a datastore by key.
func (s *StoreSet[T]) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.stores[key]; !exists {
		return fmt.Errorf("datastore with key %q not found", key)
	}
	delete(s.stores, key)
	return nil
}

// List returns all registered datastore keys.
func (s *StoreSet[T]) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.stores))
	for k := range s.stores {
		keys = append(keys, k)
	}
	return keys
}
