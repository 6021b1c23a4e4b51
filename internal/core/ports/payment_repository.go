package ports

import (
	"context"

	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/kernel"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/payment"
)

// PaymentProvider is the narrow payment view the workflow needs: the summed
// successful payments for an order. Transition rules requiring payment compare
// this figure against the order's final amount.
type PaymentProvider interface {
	// TotalPaidForOrder sums the successful payments recorded for the order,
	// in the given currency. No payments yields zero, not an error; a payment
	// recorded in a different currency surfaces as errs.ErrCurrencyMismatch.
	TotalPaidForOrder(ctx context.Context, orderID kernel.UUID, currency string) (kernel.Money, error)
}

// PaymentRepository defines the persistence contract for payment records.
type PaymentRepository interface {
	PaymentProvider

	// Add persists a new payment record.
	Add(ctx context.Context, p *payment.Payment) error

	// GetAllForOrder retrieves every payment recorded for the order,
	// newest first.
	GetAllForOrder(ctx context.Context, orderID kernel.UUID) ([]*payment.Payment, error)
}
