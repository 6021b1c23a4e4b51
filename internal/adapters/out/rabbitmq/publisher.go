// Package rabbitmq publishes committed order events to a RabbitMQ topic
// exchange. Downstream consumers (notifications, analytics, fulfillment) bind
// their own queues to the routing keys they care about.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/sparrow-trajon/order-processing-system/internal/core/ports"
)

const exchangeName = "order.events"

const (
	routingKeyCreated       = "order.created"
	routingKeyStatusChanged = "order.status_changed"
	routingKeyCancelled     = "order.cancelled"
)

// Publisher implements ports.EventPublisher over a RabbitMQ connection.
//
// Publishing is fire-and-forget: failures are logged and dropped, never
// surfaced to the business operation that triggered the event.
type Publisher struct {
	conn   *amqp.Connection
	logger *slog.Logger
}

// NewPublisher connects to RabbitMQ and declares the order events exchange.
func NewPublisher(url string, logger *slog.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(exchangeName, "topic", true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &Publisher{
		conn:   conn,
		logger: logger.With("component", "rabbitmq_publisher"),
	}, nil
}

// Close closes the underlying connection.
func (p *Publisher) Close() error {
	if p.conn != nil && !p.conn.IsClosed() {
		return p.conn.Close()
	}
	return nil
}

// PublishOrderCreated announces a freshly placed order.
func (p *Publisher) PublishOrderCreated(ctx context.Context, event ports.OrderCreatedEvent) {
	p.publish(ctx, routingKeyCreated, event)
}

// PublishOrderStatusChanged announces a committed status change.
func (p *Publisher) PublishOrderStatusChanged(ctx context.Context, event ports.OrderStatusChangedEvent) {
	p.publish(ctx, routingKeyStatusChanged, event)
}

// PublishOrderCancelled announces a committed cancellation.
func (p *Publisher) PublishOrderCancelled(ctx context.Context, event ports.OrderCancelledEvent) {
	p.publish(ctx, routingKeyCancelled, event)
}

func (p *Publisher) publish(ctx context.Context, routingKey string, event any) {
	body, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("failed to marshal event", "routing_key", routingKey, "error", err)
		return
	}

	ch, err := p.conn.Channel()
	if err != nil {
		p.logger.Error("failed to open channel", "routing_key", routingKey, "error", err)
		return
	}
	defer ch.Close()

	err = ch.PublishWithContext(ctx, exchangeName, routingKey, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Body:         body,
	})
	if err != nil {
		p.logger.Error("failed to publish event", "routing_key", routingKey, "error", err)
		return
	}

	p.logger.Debug("published event", "routing_key", routingKey)
}
