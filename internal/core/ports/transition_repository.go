package ports

import (
	"context"

	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/status"
)

// TransitionRepository defines the persistence contract for the transition
// catalog, the edges of the workflow graph.
type TransitionRepository interface {
	// Add persists a new transition.
	// A duplicate (from, to) pair surfaces as errs.ErrObjectAlreadyExists.
	Add(ctx context.Context, t *status.Transition) error

	// Get retrieves the transition for a status pair, allowed or not.
	// A missing pair surfaces as errs.ErrObjectNotFound.
	Get(ctx context.Context, fromCode string, toCode string) (*status.Transition, error)

	// GetAllFrom retrieves the allowed transitions leaving the given status,
	// ordered by display order.
	GetAllFrom(ctx context.Context, fromCode string) ([]*status.Transition, error)

	// GetAll retrieves every transition ordered by source, then display order.
	GetAll(ctx context.Context) ([]*status.Transition, error)
}
