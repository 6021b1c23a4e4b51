package queries

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/kernel"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/guard"
)

var (
	ErrGetOrdersByStatusQueryIsNotConstructed = errors.New(
		"GetOrdersByStatusQuery must be created via NewGetOrdersByStatusQuery constructor",
	)
	ErrStatusCodeFilterIsRequired = errors.New("status code filter is required")
)

// GetOrdersByStatusQuery lists the orders currently sitting in one workflow
// status, oldest first.
type GetOrdersByStatusQuery struct {
	statusCode string

	guard guard.ConstructorGuard
}

// NewGetOrdersByStatusQuery creates a query listing orders in the given
// status. The code is normalized to upper case.
func NewGetOrdersByStatusQuery(statusCode string) (GetOrdersByStatusQuery, error) {
	normalized := strings.ToUpper(strings.TrimSpace(statusCode))
	if normalized == "" {
		return GetOrdersByStatusQuery{}, ErrStatusCodeFilterIsRequired
	}

	return GetOrdersByStatusQuery{
		statusCode: normalized,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersByStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersByStatusQueryIsNotConstructed)
}

// StatusCode returns the normalized status filter.
func (q GetOrdersByStatusQuery) StatusCode() string {
	return q.statusCode
}

// GetOrdersByStatusQueryResponse is one order row of the status listing.
type GetOrdersByStatusQueryResponse struct {
	ID            kernel.UUID
	OrderNumber   string
	CustomerName  string
	CustomerClass string
	IsPriority    bool
	Currency      string
	StatusCode    string
	FinalAmount   decimal.Decimal
	ItemCount     int
	CreatedAt     time.Time
}
