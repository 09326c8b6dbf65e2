package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryStore struct {
	mu     sync.Mutex
	events []Event
}

// NewMemoryStore creates an in-memory event store for tests and
// database-less development runs.
func NewMemoryStore() Store {
	return &memoryStore{}
}

func (s *memoryStore) Log(_ context.Context, eventType string, details map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, Event{
		ID:         uuid.NewString(),
		EventType:  eventType,
		Details:    details,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

func (s *memoryStore) Unsynced(_ context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 100
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Event
	for _, ev := range s.events {
		if ev.Synced {
			continue
		}
		out = append(out, ev)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *memoryStore) MarkSynced(_ context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	marked := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		marked[id] = struct{}{}
	}
	for i := range s.events {
		if _, ok := marked[s.events[i].ID]; ok {
			s.events[i].Synced = true
		}
	}
	return nil
}

func (s *memoryStore) Purge(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.events[:0]
	var dropped int64
	for _, ev := range s.events {
		if ev.Synced && ev.OccurredAt.Before(before) {
			dropped++
			continue
		}
		kept = append(kept, ev)
	}
	s.events = kept
	return dropped, nil
}
