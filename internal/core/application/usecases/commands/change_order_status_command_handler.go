package commands

import (
	"context"
	"time"

	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/kernel"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/services"
	"github.com/sparrow-trajon/order-processing-system/internal/core/ports"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/errs"
)

// ChangeOrderStatusCommandHandler orchestrates a manual order status change.
// Resolves the target status and the configured edge from the catalog,
// enforces the approval gate, gathers the paid total when the edge demands
// payment, and lets the transition executor apply the move. Publishes a
// status changed event after the commit.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderPaymentUoWFactory
	catalog    StatusCatalog
	executor   services.TransitionExecutor
	publisher  ports.EventPublisher
}

// NewChangeOrderStatusCommandHandler creates a handler for status change operations.
func NewChangeOrderStatusCommandHandler(
	uowFactory OrderPaymentUoWFactory, catalog StatusCatalog, publisher ports.EventPublisher,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		executor:   services.NewTransitionExecutor(),
		publisher:  publisher,
	}
}

// Handle processes the status change command.
// Returns errs.ErrApprovalRequired when the edge is approval-gated and the
// command does not carry an approval, errs.ErrPaymentRequired when payments
// do not cover the final amount, and errs.ErrIllegalTransition when the
// workflow forbids the move.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
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

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	fromCode := o.Status().Code()

	target, err := h.catalog.StatusByCode(ctx, cmd.TargetStatusCode())
	if err != nil {
		return err
	}

	edge, err := h.catalog.Edge(ctx, fromCode, target.Code())
	if err != nil {
		return err
	}
	if edge != nil && edge.RequiresApproval() && !cmd.IsApproved() {
		return errs.NewApprovalRequiredError(fromCode, target.Code())
	}

	var paid *kernel.Money
	if edge != nil && edge.RequiresPayment() {
		total, err := uow.PaymentRepository().TotalPaidForOrder(ctx, o.ID(), o.Currency())
		if err != nil {
			return err
		}
		paid = &total
	}

	changedAt := time.Now().UTC()
	err = h.executor.Execute(o, services.TransitionRequest{
		Target:    target,
		Edge:      edge,
		Reason:    cmd.Reason(),
		ChangedBy: cmd.ChangedBy(),
		ChangedAt: changedAt,
		Paid:      paid,
	})
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.PublishOrderStatusChanged(ctx, ports.OrderStatusChangedEvent{
		OrderID:     o.ID().String(),
		OrderNumber: o.OrderNumber().Value(),
		FromStatus:  fromCode,
		ToStatus:    target.Code(),
		ChangedBy:   cmd.ChangedBy(),
		Reason:      cmd.Reason(),
		OccurredAt:  changedAt,
	})

	return nil
}
