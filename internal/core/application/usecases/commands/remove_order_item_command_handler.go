package commands

import (
	"context"

	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/services"
)

// RemoveOrderItemCommandHandler removes a line from an order and reprices it.
type RemoveOrderItemCommandHandler struct {
	uowFactory OrderUoWFactory
	pricing    *services.PricingEngine
}

// NewRemoveOrderItemCommandHandler creates a handler for removing order lines.
func NewRemoveOrderItemCommandHandler(
	uowFactory OrderUoWFactory, pricing *services.PricingEngine,
) RemoveOrderItemCommandHandler {
	return RemoveOrderItemCommandHandler{
		uowFactory: uowFactory,
		pricing:    pricing,
	}
}

// Handle processes the remove item command.
// The aggregate refuses to drop the last line and any change in a status
// that does not allow modification.
func (h RemoveOrderItemCommandHandler) Handle(ctx context.Context, cmd RemoveOrderItemCommand) error {
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

	if err = o.RemoveItem(cmd.ItemID()); err != nil {
		return err
	}

	figures, err := h.pricing.Price(ctx, o)
	if err != nil {
		return err
	}
	if err = o.ApplyPricing(figures); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
