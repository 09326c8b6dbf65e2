package transaction

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestMemoryFlight(t *testing.T) {
	f := NewMemoryFlight()
	ctx := context.Background()

	release, err := f.Acquire(ctx, "tx-1")
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if _, err := f.Acquire(ctx, "tx-1"); !errors.Is(err, ErrActionInFlight) {
		t.Fatalf("expected ErrActionInFlight, got %v", err)
	}

	// A different id is independent.
	release2, err := f.Acquire(ctx, "tx-2")
	if err != nil {
		t.Fatalf("acquire tx-2: %v", err)
	}
	release2()

	release()
	if release, err = f.Acquire(ctx, "tx-1"); err != nil {
		t.Fatalf("re-acquire after release: %v", err)
	}
	release()
}

func TestRedisFlight(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	f := NewRedisFlight(client)
	ctx := context.Background()

	release, err := f.Acquire(ctx, "tx-1")
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if _, err := f.Acquire(ctx, "tx-1"); !errors.Is(err, ErrActionInFlight) {
		t.Fatalf("expected ErrActionInFlight, got %v", err)
	}
	if !mr.Exists("flight:v1:tx-1") {
		t.Fatal("reservation key missing")
	}

	release()
	if mr.Exists("flight:v1:tx-1") {
		t.Fatal("release left the reservation behind")
	}
	if release, err = f.Acquire(ctx, "tx-1"); err != nil {
		t.Fatalf("re-acquire after release: %v", err)
	}
	release()
}

func TestRedisFlightReservationExpires(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	f := NewRedisFlight(client)
	ctx := context.Background()

	if _, err := f.Acquire(ctx, "tx-1"); err != nil {
		t.Fatalf("acquire: %v", err)
	}

	// A holder that dies without releasing is bounded by the TTL.
	mr.FastForward(flightTTL)
	release, err := f.Acquire(ctx, "tx-1")
	if err != nil {
		t.Fatalf("acquire after expiry: %v", err)
	}
	release()
}
