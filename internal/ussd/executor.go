package ussd

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrDialTimeout indicates no carrier event arrived within the bounded wait.
// It is distinct from a carrier-reported failure.
var ErrDialTimeout = errors.New("dial timed out")

// CarrierError is a failure the carrier reported for a dial.
type CarrierError struct {
	Code    int
	Message string
}

func (e *CarrierError) Error() string {
	return fmt.Sprintf("carrier dial failure (code %d): %s", e.Code, e.Message)
}

// Outcome is the carrier's reply to a completed dial.
type Outcome struct {
	Reply string
}

// Executor issues dial requests and collects the asynchronous carrier answer.
// Executions are serialized: the event channel is keyed to the most recent
// dial by call ordering, so there is never more than one dial in flight.
type Executor struct {
	mu      sync.Mutex
	dialer  Dialer
	timeout time.Duration
}

// NewExecutor builds an executor over the given dialer. A non-positive
// timeout falls back to 30 seconds.
func NewExecutor(dialer Dialer, timeout time.Duration) *Executor {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Executor{dialer: dialer, timeout: timeout}
}

// Execute dials and waits for the next event, the bounded timeout, or
// context cancellation, whichever comes first.
func (e *Executor) Execute(ctx context.Context, dialString string, subscriptionID int) (Outcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	// Drop events left over from an earlier dial so they cannot be
	// misattributed to this one.
	e.drain()

	if err := e.dialer.Dial(ctx, dialString, subscriptionID); err != nil {
		return Outcome{}, &CarrierError{Code: -1, Message: err.Error()}
	}

	timer := time.NewTimer(e.timeout)
	defer timer.Stop()

	select {
	case ev := <-e.dialer.Events():
		if ev.Err != "" {
			return Outcome{}, &CarrierError{Code: ev.Code, Message: ev.Err}
		}
		return Outcome{Reply: ev.Reply}, nil
	case <-timer.C:
		return Outcome{}, ErrDialTimeout
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	}
}

func (e *Executor) drain() {
	for {
		select {
		case <-e.dialer.Events():
		default:
			return
		}
	}
}
