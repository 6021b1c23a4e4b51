// Package queries contains the read side of the application: thin handlers
// that bypass the domain model and read the store directly, returning plain
// response structs shaped for the API.
package queries

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/kernel"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its line items and full status
// history.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	detail, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // no such order
//	}
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for a single order by its identifier.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order identifier.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is the full read model of one order.
type GetOrderQueryResponse struct {
	ID                 kernel.UUID
	OrderNumber        string
	CustomerName       string
	CustomerEmail      string
	CustomerClass      string
	IsPriority         bool
	Notes              string
	Currency           string
	StatusCode         string
	Subtotal           decimal.Decimal
	DiscountAmount     decimal.Decimal
	TaxAmount          decimal.Decimal
	ShippingCost       decimal.Decimal
	FinalAmount        decimal.Decimal
	CancelledAt        *time.Time
	CancelledBy        string
	CancellationReason string
	Version            int64
	CreatedBy          string
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Items   []OrderItemResponse
	History []OrderHistoryResponse
}

// OrderItemResponse is one line item of an order read model.
type OrderItemResponse struct {
	ID             kernel.UUID
	ProductCode    string
	ProductName    string
	Quantity       int
	UnitPrice      decimal.Decimal
	TotalPrice     decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	FinalAmount    decimal.Decimal
}

// OrderHistoryResponse is one audit trail entry of an order read model.
// DurationSeconds stays nil for the entry the order currently sits in.
type OrderHistoryResponse struct {
	ID              kernel.UUID
	Sequence        int
	FromStatus      string
	ToStatus        string
	ChangedBy       string
	Reason          string
	IsAutomatic     bool
	ChangedAt       time.Time
	DurationSeconds *int64
}
