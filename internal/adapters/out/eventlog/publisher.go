// Package eventlog is the fallback event publisher: committed order events go
// to the structured log instead of a broker. Used when no RabbitMQ URL is
// configured, typically in local development.
package eventlog

import (
	"context"
	"log/slog"

	"github.com/sparrow-trajon/order-processing-system/internal/core/ports"
)

// Publisher implements ports.EventPublisher by logging each event.
type Publisher struct {
	logger *slog.Logger
}

// NewPublisher creates a log-backed event publisher.
func NewPublisher(logger *slog.Logger) *Publisher {
	return &Publisher{logger: logger.With("component", "event_log")}
}

func (p *Publisher) PublishOrderCreated(_ context.Context, event ports.OrderCreatedEvent) {
	p.logger.Info("order created",
		"order_id", event.OrderID,
		"order_number", event.OrderNumber,
		"status", event.Status,
		"final_amount", event.FinalAmount,
		"currency", event.Currency,
		"item_count", event.ItemCount,
	)
}

func (p *Publisher) PublishOrderStatusChanged(_ context.Context, event ports.OrderStatusChangedEvent) {
	p.logger.Info("order status changed",
		"order_id", event.OrderID,
		"order_number", event.OrderNumber,
		"from_status", event.FromStatus,
		"to_status", event.ToStatus,
		"changed_by", event.ChangedBy,
		"is_automatic", event.IsAutomatic,
	)
}

func (p *Publisher) PublishOrderCancelled(_ context.Context, event ports.OrderCancelledEvent) {
	p.logger.Info("order cancelled",
		"order_id", event.OrderID,
		"order_number", event.OrderNumber,
		"reason", event.Reason,
		"cancelled_by", event.CancelledBy,
	)
}
