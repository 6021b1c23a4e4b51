package queries

import (
	"errors"

	"github.com/sparrow-trajon/order-processing-system/internal/pkg/guard"
)

var ErrGetAllStatusesQueryIsNotConstructed = errors.New(
	"GetAllStatusesQuery must be created via NewGetAllStatusesQuery constructor",
)

// GetAllStatusesQuery lists the workflow status catalog in display order.
// By default only active statuses are returned; includeInactive widens the
// listing to retired definitions for admin screens.
type GetAllStatusesQuery struct {
	includeInactive bool

	guard guard.ConstructorGuard
}

// NewGetAllStatusesQuery creates a query listing the status catalog.
func NewGetAllStatusesQuery(includeInactive bool) GetAllStatusesQuery {
	return GetAllStatusesQuery{
		includeInactive: includeInactive,
		guard:           guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q GetAllStatusesQuery) Validate() error {
	return q.guard.Validate(ErrGetAllStatusesQueryIsNotConstructed)
}

// IncludeInactive reports whether retired statuses are part of the listing.
func (q GetAllStatusesQuery) IncludeInactive() bool {
	return q.includeInactive
}

// GetAllStatusesQueryResponse is one status definition row.
type GetAllStatusesQueryResponse struct {
	Code                         string
	Name                         string
	Description                  string
	DisplayOrder                 int
	IsFinal                      bool
	IsCancellable                bool
	IsModifiable                 bool
	TriggersPayment              bool
	TriggersInventoryReservation bool
	TriggersShipping             bool
	SendsNotification            bool
	IsActive                     bool
}
