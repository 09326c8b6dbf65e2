package simline

import (
	"context"
	"testing"
)

var (
	orangeLine = Line{SubscriptionID: 1, SlotIndex: 0, Carrier: "Orange"}
	moveLine   = Line{SubscriptionID: 2, SlotIndex: 1, Carrier: "Moov"}
)

func TestResolveSingleLineNoBinding(t *testing.T) {
	store := NewMemoryBindingStore()
	resolver := NewResolver(store)
	ctx := context.Background()

	choice, err := resolver.Resolve(ctx, "orange", []Line{orangeLine})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if choice.Kind != Resolved || choice.Line != orangeLine {
		t.Fatalf("expected resolved single line, got %+v", choice)
	}

	// Auto-selection must not create a binding.
	if _, ok, _ := store.Get(ctx, "orange"); ok {
		t.Fatal("single-line auto-selection persisted a binding")
	}
}

func TestResolveTwoUnboundLines(t *testing.T) {
	resolver := NewResolver(NewMemoryBindingStore())

	choice, err := resolver.Resolve(context.Background(), "orange", []Line{orangeLine, moveLine})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if choice.Kind != AmbiguousChoice {
		t.Fatalf("expected ambiguous choice, got %+v", choice)
	}
	if len(choice.Candidates) != 2 {
		t.Fatalf("expected both candidates listed, got %d", len(choice.Candidates))
	}
}

func TestResolveNoLines(t *testing.T) {
	resolver := NewResolver(NewMemoryBindingStore())

	choice, err := resolver.Resolve(context.Background(), "orange", nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if choice.Kind != NoLineAvailable {
		t.Fatalf("expected no line available, got %+v", choice)
	}
}

func TestResolveBindingWins(t *testing.T) {
	store := NewMemoryBindingStore()
	ctx := context.Background()
	if err := store.Set(ctx, "orange", moveLine.SubscriptionID); err != nil {
		t.Fatalf("seed binding: %v", err)
	}
	resolver := NewResolver(store)

	choice, err := resolver.Resolve(ctx, "orange", []Line{orangeLine, moveLine})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if choice.Kind != Resolved || choice.Line != moveLine {
		t.Fatalf("expected bound line, got %+v", choice)
	}
}

func TestResolveStaleBindingFallsBack(t *testing.T) {
	store := NewMemoryBindingStore()
	ctx := context.Background()
	if err := store.Set(ctx, "orange", 99); err != nil {
		t.Fatalf("seed binding: %v", err)
	}
	resolver := NewResolver(store)

	choice, err := resolver.Resolve(ctx, "orange", []Line{orangeLine})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if choice.Kind != Resolved || choice.Line != orangeLine {
		t.Fatalf("expected fallback to the only present line, got %+v", choice)
	}
}

func TestParseLines(t *testing.T) {
	lines, err := ParseLines("1:0:Orange, 2:1:Moov")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(lines) != 2 || lines[0] != orangeLine || lines[1] != moveLine {
		t.Fatalf("unexpected lines: %+v", lines)
	}

	if _, err := ParseLines("nonsense"); err == nil {
		t.Fatal("expected parse error")
	}

	empty, err := ParseLines("  ")
	if err != nil || empty != nil {
		t.Fatalf("expected empty source, got %+v err %v", empty, err)
	}
}
