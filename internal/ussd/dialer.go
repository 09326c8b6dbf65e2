package ussd

import (
	"context"
	"log/slog"
)

// Event is a telephony reply or failure delivered out of band, keyed to the
// most recent dial by call ordering.
type Event struct {
	Reply string
	Err   string
	Code  int
}

// Dialer is the telephony boundary: it issues a USSD dial on a subscription
// and reports the carrier's answer on the event channel.
type Dialer interface {
	Dial(ctx context.Context, dialString string, subscriptionID int) error
	Events() <-chan Event
}

// LoggerDialer is a stub for development runs without a telephony backend.
// Every dial is logged (with the dial string redacted) and answered with a
// carrier-unavailable failure event.
type LoggerDialer struct {
	logger *slog.Logger
	events chan Event
}

// NewLoggerDialer constructs the logging stub.
func NewLoggerDialer(logger *slog.Logger) *LoggerDialer {
	return &LoggerDialer{logger: logger, events: make(chan Event, 1)}
}

// Dial logs the attempt and queues a failure event.
func (d *LoggerDialer) Dial(_ context.Context, _ string, subscriptionID int) error {
	d.logger.Info("ussd dial issued", "subscription_id", subscriptionID)
	select {
	case d.events <- Event{Err: "telephony backend not attached", Code: -1}:
	default:
	}
	return nil
}

// Events returns the event channel.
func (d *LoggerDialer) Events() <-chan Event {
	return d.events
}
