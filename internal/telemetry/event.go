package telemetry

import (
	"context"
	"time"
)

// Event is one anonymized usage record kept locally until the background
// sync ships it. Details carry aggregate facts (operator, amount bucket,
// outcome) and never payload text, dial strings or PINs.
type Event struct {
	ID         string         `json:"id"`
	EventType  string         `json:"event_type"`
	Details    map[string]any `json:"details,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
	Synced     bool           `json:"-"`
}

// Store persists events between daemon restarts and tracks sync state.
type Store interface {
	Log(ctx context.Context, eventType string, details map[string]any) error
	Unsynced(ctx context.Context, limit int) ([]Event, error)
	MarkSynced(ctx context.Context, ids []string) error
	// Purge drops synced events older than the retention cutoff.
	Purge(ctx context.Context, before time.Time) (int64, error)
}
