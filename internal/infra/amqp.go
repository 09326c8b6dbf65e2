package infra

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// NewAMQPChannel dials the broker and opens a channel with the telemetry
// exchange declared. The returned connection must outlive the channel.
func NewAMQPChannel(url, exchange string) (*amqp.Connection, *amqp.Channel, error) {
	if url == "" {
		return nil, nil, fmt.Errorf("amqp url is required")
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("connect amqp: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("open amqp channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return conn, ch, nil
}
