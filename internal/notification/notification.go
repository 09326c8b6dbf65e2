package notification

import (
	"context"
	"log/slog"
)

const (
	// KindTransferReceived signals a new incoming transfer intent awaiting acceptance.
	KindTransferReceived = "transfer_received"
	// KindTransferOutcome signals a terminal lifecycle status for a transaction.
	KindTransferOutcome = "transfer_outcome"
	// KindLineSelection asks the user to pick a telephony line.
	KindLineSelection = "line_selection_required"
)

// Message describes a notification payload.
type Message struct {
	Kind        string
	Destination string
	Body        string
}

// Notifier delivers notifications to the device surface (screen, tray).
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// LoggerNotifier is a stub implementation that writes notifications to the logger.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier stub.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the message to the structured logger.
func (n *LoggerNotifier) Send(_ context.Context, message Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Info("notification", "kind", message.Kind, "destination", message.Destination, "body", message.Body)
	return nil
}
