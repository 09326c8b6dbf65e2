package transaction

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Flight enforces single-flight semantics per transaction id: at most one
// lifecycle action may be in progress for a given id at a time.
type Flight interface {
	// Acquire reserves the id, returning a release function, or
	// ErrActionInFlight when another action holds the reservation.
	Acquire(ctx context.Context, transactionID string) (func(), error)
}

type memoryFlight struct {
	mu     sync.Mutex
	active map[string]struct{}
}

// NewMemoryFlight builds the in-process single-flight guard.
func NewMemoryFlight() Flight {
	return &memoryFlight{active: make(map[string]struct{})}
}

func (f *memoryFlight) Acquire(_ context.Context, transactionID string) (func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, busy := f.active[transactionID]; busy {
		return nil, ErrActionInFlight
	}
	f.active[transactionID] = struct{}{}
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.active, transactionID)
	}, nil
}

const (
	flightPrefix = "flight:v1:"
	flightTTL    = 2 * time.Minute
)

// RedisFlight reserves transaction ids in Redis with SET NX, so the guard
// also holds across daemon restarts while a reservation is live. The TTL
// bounds leakage if a holder dies without releasing.
type RedisFlight struct {
	client *redis.Client
}

// NewRedisFlight builds a Redis-backed single-flight guard.
func NewRedisFlight(client *redis.Client) *RedisFlight {
	return &RedisFlight{client: client}
}

// Acquire reserves the id via SET NX.
func (f *RedisFlight) Acquire(ctx context.Context, transactionID string) (func(), error) {
	key := flightPrefix + transactionID
	ok, err := f.client.SetNX(ctx, key, "1", flightTTL).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrActionInFlight
	}
	return func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		f.client.Del(cleanupCtx, key)
	}, nil
}
