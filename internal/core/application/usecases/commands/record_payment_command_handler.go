package commands

import (
	"context"
	"time"

	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/kernel"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/payment"
)

// RecordPaymentCommandHandler records a payment against an order.
// The payment amount is bound to the order currency, so a mismatched payment
// is rejected before it is stored.
type RecordPaymentCommandHandler struct {
	uowFactory OrderPaymentUoWFactory
}

// NewRecordPaymentCommandHandler creates a handler for payment recording.
func NewRecordPaymentCommandHandler(uowFactory OrderPaymentUoWFactory) RecordPaymentCommandHandler {
	return RecordPaymentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the payment recording command.
// Verifies the order exists and stores the payment row in one transaction.
func (h RecordPaymentCommandHandler) Handle(ctx context.Context, cmd RecordPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	amount, err := kernel.NewMoney(cmd.Amount(), o.Currency())
	if err != nil {
		return err
	}

	p, err := payment.NewPayment(
		cmd.PaymentID(), o.ID(), amount, cmd.Method(), cmd.Status(), cmd.TransactionID(), time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err = uow.PaymentRepository().Add(ctx, p); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
