// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/status"
	"github.com/sparrow-trajon/order-processing-system/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// PaymentRepoFactory provides access to the payment repository within a transaction.
	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	// StatusRepoFactory provides access to the status catalog repository within a transaction.
	StatusRepoFactory interface {
		StatusRepository() ports.StatusRepository
	}

	// TransitionRepoFactory provides access to the transition repository within a transaction.
	TransitionRepoFactory interface {
		TransitionRepository() ports.TransitionRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used when commands only modify order aggregates.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// OrderPaymentUoW manages transactions that read or write payments next to
	// an order, such as the payment guard of a status change.
	OrderPaymentUoW interface {
		TxManager
		OrderRepoFactory
		PaymentRepoFactory
	}

	// OrderPaymentUoWFactory creates new order and payment unit of work instances.
	OrderPaymentUoWFactory interface {
		Create() OrderPaymentUoW
	}

	// WorkflowUoW manages transactions for status catalog administration.
	// Used for commands that change statuses or the edges between them.
	WorkflowUoW interface {
		TxManager
		StatusRepoFactory
		TransitionRepoFactory
	}

	// WorkflowUoWFactory creates new workflow unit of work instances.
	WorkflowUoWFactory interface {
		Create() WorkflowUoW
	}
)

// StatusCatalog is the cached read side of the workflow catalog. Order
// commands resolve statuses and edges through it instead of hitting the
// repositories on every call.
type StatusCatalog interface {
	StatusByCode(ctx context.Context, code string) (*status.Status, error)
	DefaultStatus(ctx context.Context) (*status.Status, error)
	CancellationStatus(ctx context.Context) (*status.Status, error)
	Edge(ctx context.Context, fromCode string, toCode string) (*status.Transition, error)
	IsTransitionAllowed(ctx context.Context, fromCode string, toCode string) (bool, error)
}

// CatalogInvalidator drops cached catalog entries. Admin commands call it
// after committing so the next workflow check sees the change.
type CatalogInvalidator interface {
	InvalidateStatus(code string)
	InvalidateTransition(fromCode string, toCode string)
}

// OrderLimits supplies the runtime caps enforced when composing orders.
type OrderLimits interface {
	MaxItemsPerOrder(ctx context.Context) int
	MaxQuantityPerItem(ctx context.Context) int
}
