package transaction

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

type memoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore creates a concurrency-safe in-memory record store useful for
// unit tests and database-less development runs.
func NewMemoryStore() Store {
	return &memoryStore{records: make(map[string]Record)}
}

func (s *memoryStore) Create(_ context.Context, r Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[r.TransactionID]; exists {
		return fmt.Errorf("%w: %s", ErrExists, r.TransactionID)
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	s.records[r.TransactionID] = r
	return nil
}

func (s *memoryStore) UpdateStatus(_ context.Context, transactionID string, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[transactionID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, transactionID)
	}
	rec.Status = status
	s.records[transactionID] = rec
	return nil
}

func (s *memoryStore) SetOutcome(_ context.Context, transactionID string, status Status, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[transactionID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, transactionID)
	}
	rec.Status = status
	rec.ResultMessage = message
	s.records[transactionID] = rec
	return nil
}

func (s *memoryStore) Get(_ context.Context, transactionID string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[transactionID]
	if !ok {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, transactionID)
	}
	return rec, nil
}

func (s *memoryStore) List(_ context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].TimestampMs > records[j].TimestampMs
	})
	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}
