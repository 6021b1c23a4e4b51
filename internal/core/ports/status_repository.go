package ports

import (
	"context"

	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/status"
)

// StatusRepository defines the persistence contract for the status catalog.
type StatusRepository interface {
	// Add persists a new status definition.
	// A duplicate code surfaces as errs.ErrObjectAlreadyExists.
	Add(ctx context.Context, s *status.Status) error

	// Update persists changes to an existing status definition.
	// The code never changes; the row is matched by it.
	Update(ctx context.Context, s *status.Status) error

	// GetByCode retrieves a status definition by its code, active or not.
	// A missing code surfaces as errs.ErrObjectNotFound.
	GetByCode(ctx context.Context, code string) (*status.Status, error)

	// GetAll retrieves every status definition ordered by display order.
	GetAll(ctx context.Context) ([]*status.Status, error)

	// GetAllActive retrieves the active status definitions ordered by
	// display order.
	GetAllActive(ctx context.Context) ([]*status.Status, error)
}
