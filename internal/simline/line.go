package simline

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Line identifies a telephony subscription capable of dialing.
type Line struct {
	SubscriptionID int    `json:"subscription_id"`
	SlotIndex      int    `json:"slot_index"`
	Carrier        string `json:"carrier"`
}

// DisplayName renders a line the way the device UI labels SIMs.
func (l Line) DisplayName() string {
	return fmt.Sprintf("SIM %d (%s)", l.SlotIndex+1, l.Carrier)
}

// Source reports the telephony lines currently available on the device.
// The real implementation sits behind the telephony boundary.
type Source interface {
	Lines(ctx context.Context) ([]Line, error)
}

// StaticSource is a fixed line list, used in tests and for env-configured
// deployments without a live telephony backend.
type StaticSource []Line

// Lines returns the configured list.
func (s StaticSource) Lines(_ context.Context) ([]Line, error) {
	return []Line(s), nil
}

// ParseLines reads the TELEPHONY_LINES env format:
// "subID:slot:Carrier,subID:slot:Carrier". An empty value yields no lines.
func ParseLines(spec string) (StaticSource, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}

	var lines StaticSource
	for _, entry := range strings.Split(spec, ",") {
		parts := strings.SplitN(strings.TrimSpace(entry), ":", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid line entry %q", entry)
		}
		subID, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("invalid subscription id in %q: %w", entry, err)
		}
		slot, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid slot index in %q: %w", entry, err)
		}
		lines = append(lines, Line{SubscriptionID: subID, SlotIndex: slot, Carrier: parts[2]})
	}
	return lines, nil
}
