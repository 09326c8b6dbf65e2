package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	syncBatchSize = 100
	retention     = 30 * 24 * time.Hour
)

// Syncer periodically ships unsynced events and purges old synced ones. A
// run that is still in progress when the next tick fires is skipped rather
// than overlapped.
type Syncer struct {
	store     Store
	publisher Publisher
	logger    *slog.Logger
	interval  time.Duration
	cron      *cron.Cron
}

// NewSyncer builds the background sync job.
func NewSyncer(store Store, publisher Publisher, logger *slog.Logger, interval time.Duration) *Syncer {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cronLogger),
		cron.Recover(cronLogger),
	))
	return &Syncer{store: store, publisher: publisher, logger: logger, interval: interval, cron: c}
}

// Start schedules the sync job and begins ticking.
func (s *Syncer) Start() error {
	spec := fmt.Sprintf("@every %s", s.interval)
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return fmt.Errorf("schedule telemetry sync: %w", err)
	}
	s.cron.Start()
	s.logger.Info("telemetry sync scheduled", "interval", s.interval.String())
	return nil
}

// Stop stops the scheduler and returns a context that is done once any
// in-flight run finishes.
func (s *Syncer) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Syncer) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()
	if err := s.SyncOnce(ctx); err != nil {
		s.logger.Warn("telemetry sync", "error", err)
	}
}

// SyncOnce ships one batch of unsynced events, marks them and purges old
// synced records. Events stay local until the publish succeeds.
func (s *Syncer) SyncOnce(ctx context.Context) error {
	events, err := s.store.Unsynced(ctx, syncBatchSize)
	if err != nil {
		return fmt.Errorf("load unsynced events: %w", err)
	}
	if len(events) > 0 {
		if err := s.publisher.Publish(ctx, events); err != nil {
			return fmt.Errorf("publish events: %w", err)
		}
		ids := make([]string, len(events))
		for i, ev := range events {
			ids[i] = ev.ID
		}
		if err := s.store.MarkSynced(ctx, ids); err != nil {
			return fmt.Errorf("mark events synced: %w", err)
		}
		s.logger.Info("telemetry synced", "events", len(events))
	}

	dropped, err := s.store.Purge(ctx, time.Now().Add(-retention))
	if err != nil {
		return fmt.Errorf("purge events: %w", err)
	}
	if dropped > 0 {
		s.logger.Info("telemetry purged", "events", dropped)
	}
	return nil
}
