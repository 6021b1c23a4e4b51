package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/order"
	"github.com/sparrow-trajon/order-processing-system/internal/core/ports"
)

// CancelOrderCommandHandler cancels an order.
// Cancellation bypasses the edge catalog on purpose: the cancellable flag of
// the current status alone decides, so a misconfigured graph can never trap
// an order that the business promised customers they could cancel. The
// aggregate safety net still refuses to leave a final status.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    StatusCatalog
	publisher  ports.EventPublisher
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory, catalog StatusCatalog, publisher ports.EventPublisher,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		publisher:  publisher,
	}
}

// Handle processes the cancellation command.
// Moves the order to the cancellation status, records who cancelled it and
// why, and publishes an order cancelled event after the commit.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	if !o.CanBeCancelled() {
		return fmt.Errorf("%w: current status is %s", order.ErrOrderNotCancellable, o.Status().Code())
	}

	cancellationStatus, err := h.catalog.CancellationStatus(ctx)
	if err != nil {
		return err
	}

	cancelledAt := time.Now().UTC()
	if err = o.ChangeStatus(cancellationStatus, cmd.CancelledBy(), cancelledAt, cmd.Reason(), false); err != nil {
		return err
	}
	if err = o.MarkCancelled(cmd.Reason(), cmd.CancelledBy(), cancelledAt); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.PublishOrderCancelled(ctx, ports.OrderCancelledEvent{
		OrderID:     o.ID().String(),
		OrderNumber: o.OrderNumber().Value(),
		Reason:      cmd.Reason(),
		CancelledBy: cmd.CancelledBy(),
		OccurredAt:  cancelledAt,
	})

	return nil
}
