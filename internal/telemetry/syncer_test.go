package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sahel-pay/sahel_pay/internal/logging"
)

type capturePublisher struct {
	batches [][]Event
	fail    bool
}

func (p *capturePublisher) Publish(_ context.Context, events []Event) error {
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.batches = append(p.batches, events)
	return nil
}

func TestSyncOnceShipsAndMarks(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Log(ctx, "intent_created", map[string]any{"operator": "orange"}); err != nil {
		t.Fatalf("log: %v", err)
	}
	if err := store.Log(ctx, "ussd_dial_success", nil); err != nil {
		t.Fatalf("log: %v", err)
	}

	pub := &capturePublisher{}
	syncer := NewSyncer(store, pub, logging.Discard(), time.Minute)

	if err := syncer.SyncOnce(ctx); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if len(pub.batches) != 1 || len(pub.batches[0]) != 2 {
		t.Fatalf("unexpected batches: %+v", pub.batches)
	}

	// A second run has nothing left to ship.
	if err := syncer.SyncOnce(ctx); err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if len(pub.batches) != 1 {
		t.Fatalf("already-synced events shipped again: %d batches", len(pub.batches))
	}
}

func TestSyncOnceKeepsEventsOnPublishFailure(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Log(ctx, "intent_created", nil); err != nil {
		t.Fatalf("log: %v", err)
	}

	pub := &capturePublisher{fail: true}
	syncer := NewSyncer(store, pub, logging.Discard(), time.Minute)

	if err := syncer.SyncOnce(ctx); err == nil {
		t.Fatal("expected publish failure to surface")
	}

	// The event must still be there for the next run.
	events, err := store.Unsynced(ctx, 10)
	if err != nil {
		t.Fatalf("unsynced: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("event lost after failed publish: %d remain", len(events))
	}
}

func TestPurgeDropsOnlyOldSyncedEvents(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Log(ctx, "intent_created", nil); err != nil {
		t.Fatalf("log: %v", err)
	}
	events, _ := store.Unsynced(ctx, 10)
	if err := store.MarkSynced(ctx, []string{events[0].ID}); err != nil {
		t.Fatalf("mark: %v", err)
	}

	// Synced but within retention: kept.
	dropped, err := store.Purge(ctx, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if dropped != 0 {
		t.Fatalf("purged fresh event: %d", dropped)
	}

	// Synced and past the cutoff: dropped.
	dropped, err = store.Purge(ctx, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if dropped != 1 {
		t.Fatalf("expected one purged event, got %d", dropped)
	}
}
