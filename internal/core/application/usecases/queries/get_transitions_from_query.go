package queries

import (
	"errors"

	"github.com/sparrow-trajon/order-processing-system/internal/pkg/errs"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/guard"
)

var ErrGetTransitionsFromQueryIsNotConstructed = errors.New(
	"GetTransitionsFromQuery must be created via NewGetTransitionsFromQuery constructor",
)

// GetTransitionsFromQuery lists the allowed outbound edges of a status in
// display order. This is what a UI renders as the action buttons for an order
// sitting in that status.
type GetTransitionsFromQuery struct {
	fromCode string

	guard guard.ConstructorGuard
}

// NewGetTransitionsFromQuery creates a query listing outbound edges.
func NewGetTransitionsFromQuery(fromCode string) (GetTransitionsFromQuery, error) {
	if fromCode == "" {
		return GetTransitionsFromQuery{}, errs.NewValueIsRequiredError("fromCode")
	}

	return GetTransitionsFromQuery{
		fromCode: fromCode,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTransitionsFromQuery) Validate() error {
	return q.guard.Validate(ErrGetTransitionsFromQueryIsNotConstructed)
}

// FromCode returns the source status code.
func (q GetTransitionsFromQuery) FromCode() string {
	return q.fromCode
}

// GetTransitionsFromQueryResponse is one allowed workflow edge.
type GetTransitionsFromQueryResponse struct {
	FromStatus             string
	ToStatus               string
	DisplayOrder           int
	Description            string
	RequiresApproval       bool
	RequiresPayment        bool
	RequiresInventoryCheck bool
	RequiresReason         bool
}
