package commands

import (
	"context"
	"time"

	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/kernel"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/order"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/services"
	"github.com/sparrow-trajon/order-processing-system/internal/core/ports"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Resolves the workflow entry status, builds the order aggregate, prices it
// and persists everything in one transaction. Publishes an order created
// event after the commit.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    StatusCatalog
	pricing    *services.PricingEngine
	limits     OrderLimits
	publisher  ports.EventPublisher
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	catalog StatusCatalog,
	pricing *services.PricingEngine,
	limits OrderLimits,
	publisher ports.EventPublisher,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		pricing:    pricing,
		limits:     limits,
		publisher:  publisher,
	}
}

// Handle processes the order creation command.
// The order is born into the workflow default status with freshly computed
// totals. Runtime limits cap the number of lines and the quantity per line.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	inputs := cmd.Items()
	if maxItems := h.limits.MaxItemsPerOrder(ctx); len(inputs) > maxItems {
		return errs.NewValueIsOutOfRangeError("items", len(inputs), 1, maxItems)
	}
	maxQuantity := h.limits.MaxQuantityPerItem(ctx)
	for _, input := range inputs {
		if input.Quantity > maxQuantity {
			return errs.NewValueIsOutOfRangeError("quantity", input.Quantity, 1, maxQuantity)
		}
	}

	initialStatus, err := h.catalog.DefaultStatus(ctx)
	if err != nil {
		return err
	}

	items, err := buildItems(inputs, cmd.Currency())
	if err != nil {
		return err
	}

	newOrder, err := order.NewOrder(order.NewOrderParams{
		ID:            cmd.OrderID(),
		OrderNumber:   cmd.OrderNumber(),
		CustomerName:  cmd.CustomerName(),
		CustomerEmail: cmd.CustomerEmail(),
		CustomerClass: cmd.CustomerClass(),
		IsPriority:    cmd.IsPriority(),
		Notes:         cmd.Notes(),
		Currency:      cmd.Currency(),
		InitialStatus: initialStatus,
		Items:         items,
		CreatedBy:     cmd.CreatedBy(),
		CreatedAt:     time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	figures, err := h.pricing.Price(ctx, newOrder)
	if err != nil {
		return err
	}
	if err = newOrder.ApplyPricing(figures); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.PublishOrderCreated(ctx, ports.OrderCreatedEvent{
		OrderID:       newOrder.ID().String(),
		OrderNumber:   newOrder.OrderNumber().Value(),
		CustomerEmail: newOrder.CustomerEmail().Value(),
		CustomerClass: newOrder.CustomerClass().String(),
		Status:        newOrder.Status().Code(),
		FinalAmount:   newOrder.FinalAmount().Amount().StringFixed(kernel.MoneyScale),
		Currency:      newOrder.Currency(),
		ItemCount:     len(newOrder.Items()),
		OccurredAt:    time.Now().UTC(),
	})

	return nil
}

// buildItems turns requested lines into validated domain items priced in the
// order currency.
func buildItems(inputs []ItemInput, currency string) ([]*order.Item, error) {
	items := make([]*order.Item, 0, len(inputs))
	for _, input := range inputs {
		quantity, err := kernel.NewQuantity(input.Quantity)
		if err != nil {
			return nil, err
		}

		unitPrice, err := kernel.NewMoney(input.UnitPrice, currency)
		if err != nil {
			return nil, err
		}

		item, err := order.NewItem(kernel.NewUUID(), input.ProductCode, input.ProductName, quantity, unitPrice)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, nil
}
