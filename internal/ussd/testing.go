package ussd

import (
	"context"
	"sync"
)

// ScriptedDialer is a test dialer that answers each dial with the next
// scripted event. A nil event means stay silent (forces a timeout).
type ScriptedDialer struct {
	mu     sync.Mutex
	script []*Event
	events chan Event

	// Dials records every dial string and subscription id issued.
	Dials []struct {
		DialString     string
		SubscriptionID int
	}
}

// NewScriptedDialer builds a dialer that will play back the given events.
func NewScriptedDialer(script ...*Event) *ScriptedDialer {
	return &ScriptedDialer{script: script, events: make(chan Event, len(script)+1)}
}

// Dial records the call and emits the next scripted event, if any.
func (d *ScriptedDialer) Dial(_ context.Context, dialString string, subscriptionID int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Dials = append(d.Dials, struct {
		DialString     string
		SubscriptionID int
	}{dialString, subscriptionID})

	if len(d.script) == 0 {
		return nil
	}
	next := d.script[0]
	d.script = d.script[1:]
	if next != nil {
		d.events <- *next
	}
	return nil
}

// Events returns the scripted event channel.
func (d *ScriptedDialer) Events() <-chan Event {
	return d.events
}
