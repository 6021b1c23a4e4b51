package commands

import (
	"context"

	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/kernel"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/order"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/services"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/errs"
)

// AddOrderItemCommandHandler adds a line to an order and reprices it.
// The optimistic version check on the update protects against concurrent
// modifications of the same order.
type AddOrderItemCommandHandler struct {
	uowFactory OrderUoWFactory
	pricing    *services.PricingEngine
	limits     OrderLimits
}

// NewAddOrderItemCommandHandler creates a handler for adding order lines.
func NewAddOrderItemCommandHandler(
	uowFactory OrderUoWFactory, pricing *services.PricingEngine, limits OrderLimits,
) AddOrderItemCommandHandler {
	return AddOrderItemCommandHandler{
		uowFactory: uowFactory,
		pricing:    pricing,
		limits:     limits,
	}
}

// Handle processes the add item command.
// Loads the order, appends or merges the line, recomputes all totals and
// persists the result in one transaction.
func (h AddOrderItemCommandHandler) Handle(ctx context.Context, cmd AddOrderItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if maxQuantity := h.limits.MaxQuantityPerItem(ctx); cmd.Quantity() > maxQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", cmd.Quantity(), 1, maxQuantity)
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

	quantity, err := kernel.NewQuantity(cmd.Quantity())
	if err != nil {
		return err
	}
	unitPrice, err := kernel.NewMoney(cmd.UnitPrice(), o.Currency())
	if err != nil {
		return err
	}
	item, err := order.NewItem(kernel.NewUUID(), cmd.ProductCode(), cmd.ProductName(), quantity, unitPrice)
	if err != nil {
		return err
	}

	if err = o.AddItem(item); err != nil {
		return err
	}
	if maxItems := h.limits.MaxItemsPerOrder(ctx); len(o.Items()) > maxItems {
		return errs.NewValueIsOutOfRangeError("items", len(o.Items()), 1, maxItems)
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
