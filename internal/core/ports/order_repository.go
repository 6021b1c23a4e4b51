// Package ports defines the contracts between the application core and
// infrastructure. These interfaces establish boundaries for persistence,
// messaging and payment lookups, enabling dependency inversion and testability.
package ports

import (
	"context"

	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/kernel"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// with their items and status history.
type OrderRepository interface {
	// Add persists a new order aggregate to storage, including its items
	// and the birth history entry.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate under the
	// optimistic concurrency check: the row is matched by id AND the version
	// the aggregate was loaded with, and the stored version is incremented.
	// A concurrent writer having bumped the version first surfaces as
	// errs.ErrOptimisticConflict; callers retry the whole operation.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with items, history and current status.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order aggregate by its human-facing number.
	GetByNumber(ctx context.Context, number kernel.OrderNumber) (*order.Order, error)

	// GetAllInStatus retrieves all orders currently sitting in the given
	// status, ordered by creation time.
	GetAllInStatus(ctx context.Context, statusCode string) ([]*order.Order, error)

	// AdvanceAllInStatus moves every order in fromCode to toCode in one bulk
	// statement and returns the number of orders moved.
	//
	// The sweep is atomic but deliberately blunt: it performs no per-order
	// version checks, does not bump versions, and appends no history entries.
	// An operator update committed between an order's read and the sweep is
	// silently overtaken.
	AdvanceAllInStatus(ctx context.Context, fromCode string, toCode string) (int64, error)
}
