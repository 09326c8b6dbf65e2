package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher ships a batch of events to the operator-facing collector.
type Publisher interface {
	Publish(ctx context.Context, events []Event) error
}

// AMQPPublisher publishes event batches as persistent JSON messages on a
// topic exchange.
type AMQPPublisher struct {
	channel    *amqp.Channel
	exchange   string
	routingKey string
}

// NewAMQPPublisher builds a publisher over an open channel.
func NewAMQPPublisher(channel *amqp.Channel, exchange, routingKey string) *AMQPPublisher {
	return &AMQPPublisher{channel: channel, exchange: exchange, routingKey: routingKey}
}

func (p *AMQPPublisher) Publish(ctx context.Context, events []Event) error {
	if len(events) == 0 {
		return nil
	}
	body, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("marshal event batch: %w", err)
	}
	err = p.channel.PublishWithContext(ctx,
		p.exchange,
		p.routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publish event batch: %w", err)
	}
	return nil
}

// LoggerPublisher logs batches instead of shipping them; used when no
// broker is configured.
type LoggerPublisher struct {
	logger *slog.Logger
}

// NewLoggerPublisher builds the logging fallback publisher.
func NewLoggerPublisher(logger *slog.Logger) *LoggerPublisher {
	return &LoggerPublisher{logger: logger}
}

func (p *LoggerPublisher) Publish(_ context.Context, events []Event) error {
	for _, ev := range events {
		p.logger.Info("telemetry event", "id", ev.ID, "type", ev.EventType, "occurred_at", ev.OccurredAt)
	}
	return nil
}
