package transport

import (
	"context"
	"errors"
	"testing"
)

func TestLoopbackDeliversToArmedHandler(t *testing.T) {
	lb := NewLoopback()
	var got []string
	session, err := lb.Listen(func(_ context.Context, raw string) {
		got = append(got, raw)
	})
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer session.Release()

	if err := lb.Send(context.Background(), []byte("frame-1")); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(got) != 1 || got[0] != "frame-1" {
		t.Fatalf("handler saw %v", got)
	}
}

func TestSendWithoutListenerIsTransportFailure(t *testing.T) {
	lb := NewLoopback()
	err := lb.Send(context.Background(), []byte("frame"))
	if !errors.Is(err, ErrTransportFailure) {
		t.Fatalf("expected ErrTransportFailure, got %v", err)
	}
}

func TestListenReleasesPriorSession(t *testing.T) {
	lb := NewLoopback()
	var first, second int
	s1, err := lb.Listen(func(context.Context, string) { first++ })
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	s2, err := lb.Listen(func(context.Context, string) { second++ })
	if err != nil {
		t.Fatalf("second listen: %v", err)
	}
	defer s2.Release()

	if err := lb.Send(context.Background(), []byte("frame")); err != nil {
		t.Fatalf("send: %v", err)
	}
	if first != 0 || second != 1 {
		t.Fatalf("stale handler received traffic: first=%d second=%d", first, second)
	}

	// Releasing the stale session again must not tear down the active one.
	s1.Release()
	if err := lb.Send(context.Background(), []byte("frame")); err != nil {
		t.Fatalf("send after stale release: %v", err)
	}
	if second != 2 {
		t.Fatalf("active session lost after stale release: second=%d", second)
	}
}

func TestSessionReleaseIsIdempotent(t *testing.T) {
	var stops int
	s := NewSession(func() { stops++ })
	s.Release()
	s.Release()
	s.Release()
	if stops != 1 {
		t.Fatalf("stop ran %d times", stops)
	}
}

func TestSendAfterReleaseFails(t *testing.T) {
	lb := NewLoopback()
	session, err := lb.Listen(func(context.Context, string) {})
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	session.Release()

	if err := lb.Send(context.Background(), []byte("frame")); !errors.Is(err, ErrTransportFailure) {
		t.Fatalf("expected ErrTransportFailure after release, got %v", err)
	}
}
