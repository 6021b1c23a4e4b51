package ports

import (
	"context"
	"time"
)

// OrderCreatedEvent announces a freshly placed order.
type OrderCreatedEvent struct {
	OrderID       string    `json:"order_id"`
	OrderNumber   string    `json:"order_number"`
	CustomerEmail string    `json:"customer_email"`
	CustomerClass string    `json:"customer_class"`
	Status        string    `json:"status"`
	FinalAmount   string    `json:"final_amount"`
	Currency      string    `json:"currency"`
	ItemCount     int       `json:"item_count"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// OrderStatusChangedEvent announces a committed status change.
type OrderStatusChangedEvent struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	FromStatus  string    `json:"from_status"`
	ToStatus    string    `json:"to_status"`
	ChangedBy   string    `json:"changed_by"`
	Reason      string    `json:"reason,omitempty"`
	IsAutomatic bool      `json:"is_automatic"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// OrderCancelledEvent announces a committed cancellation.
type OrderCancelledEvent struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Reason      string    `json:"reason"`
	CancelledBy string    `json:"cancelled_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// EventPublisher hands committed domain changes to the outside world.
//
// Publishing is fire-and-forget from the caller's perspective: it happens
// after the transaction commits, and a publish failure never rolls back or
// fails the business operation. Implementations log and drop on error.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, event OrderCreatedEvent)
	PublishOrderStatusChanged(ctx context.Context, event OrderStatusChangedEvent)
	PublishOrderCancelled(ctx context.Context, event OrderCancelledEvent)
}
