package transport

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrTransportFailure marks a handoff that did not reach the radio or
// renderer; the caller may retry with the same payload.
var ErrTransportFailure = errors.New("transport failure")

// Outbound hands an armored payload to the proximity channel. Success means
// handoff only; delivery is confirmed by the counterparty's acknowledgment.
type Outbound interface {
	Send(ctx context.Context, payload []byte) error
}

// Handler consumes raw inbound text. Implementations must tolerate junk;
// anything the codec rejects is logged and dropped, never fatal.
type Handler func(ctx context.Context, raw string)

// Listener arms inbound reception. At most one session is active per
// listener: arming a new one releases the prior one first.
type Listener interface {
	Listen(handler Handler) (*Session, error)
}

// Session is the handle for one armed reception window. Release is
// idempotent; only the first call has effect.
type Session struct {
	release sync.Once
	stop    func()
}

// NewSession wraps a stop function into a release-once handle.
func NewSession(stop func()) *Session {
	return &Session{stop: stop}
}

// Release tears the session down. Safe to call repeatedly.
func (s *Session) Release() {
	s.release.Do(func() {
		if s.stop != nil {
			s.stop()
		}
	})
}

// Loopback is an in-memory transport for tests and same-host development:
// what one side sends, the armed handler on the other side receives.
type Loopback struct {
	mu      sync.Mutex
	handler Handler
	session *Session

	// SendErr, when set, makes Send fail as a transport failure.
	SendErr error
}

// NewLoopback builds the in-memory transport.
func NewLoopback() *Loopback {
	return &Loopback{}
}

// Send delivers the payload to the currently armed handler, if any. Sending
// with no armed listener is a transport failure.
func (l *Loopback) Send(ctx context.Context, payload []byte) error {
	l.mu.Lock()
	handler := l.handler
	sendErr := l.SendErr
	l.mu.Unlock()

	if sendErr != nil {
		return fmt.Errorf("%w: %s", ErrTransportFailure, sendErr)
	}
	if handler == nil {
		return fmt.Errorf("%w: no armed listener", ErrTransportFailure)
	}
	handler(ctx, string(payload))
	return nil
}

// Listen arms reception. A previously armed session is released first so a
// stale handler can never observe traffic meant for the new one.
func (l *Loopback) Listen(handler Handler) (*Session, error) {
	l.mu.Lock()
	prior := l.session
	l.mu.Unlock()
	if prior != nil {
		prior.Release()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.handler = handler
	var session *Session
	session = NewSession(func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.session == session {
			l.handler = nil
			l.session = nil
		}
	})
	l.session = session
	return session, nil
}
