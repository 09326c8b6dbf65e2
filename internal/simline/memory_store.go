package simline

import (
	"context"
	"sync"
)

type memoryBindingStore struct {
	mu       sync.RWMutex
	bindings map[string]int
}

// NewMemoryBindingStore constructs an in-memory binding store for tests and
// database-less development runs.
func NewMemoryBindingStore() BindingStore {
	return &memoryBindingStore{bindings: make(map[string]int)}
}

func (s *memoryBindingStore) Get(_ context.Context, operatorID string) (int, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	subID, ok := s.bindings[operatorID]
	return subID, ok, nil
}

func (s *memoryBindingStore) Set(_ context.Context, operatorID string, subscriptionID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bindings[operatorID] = subscriptionID
	return nil
}
