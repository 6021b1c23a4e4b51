package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/kernel"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/order"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/errs"
)

// PricingConfigSource supplies the tunable pricing figures. Implementations
// read the runtime settings store and fall back to seeded defaults, so the
// getters never fail; the engine re-reads them on every run, so settings
// changes apply to the next pricing without a restart.
type PricingConfigSource interface {
	// ClassDiscountPercent returns the discount percentage for a customer class.
	ClassDiscountPercent(ctx context.Context, class order.CustomerClass) float64

	// BulkDiscountThreshold returns the total quantity from which the bulk
	// discount applies.
	BulkDiscountThreshold(ctx context.Context) int

	// BulkDiscountPercent returns the additional discount percentage granted
	// at or above the bulk threshold.
	BulkDiscountPercent(ctx context.Context) float64

	// TaxRatePercent returns the tax percentage applied to the discounted amount.
	TaxRatePercent(ctx context.Context) float64

	// FreeShippingThreshold returns the post-discount amount from which
	// shipping is free.
	FreeShippingThreshold(ctx context.Context) decimal.Decimal

	// StandardShippingCost returns the shipping cost for regular orders.
	StandardShippingCost(ctx context.Context) decimal.Decimal

	// ExpressShippingCost returns the shipping cost for priority orders.
	ExpressShippingCost(ctx context.Context) decimal.Decimal
}

// PricingEngine is a domain service that computes a complete totals snapshot
// for an order. It never mutates the order; callers install the snapshot
// through Order.ApplyPricing.
//
// The engine runs two independent passes:
//   - a per-item pass producing informative discount/tax figures on each line
//   - an order-level pass producing the authoritative totals
//
// The two passes intentionally do not reconcile: item figures answer "what
// does this line contribute roughly", order totals are what the customer pays.
//
// Order-level algorithm:
//  1. subtotal = sum of line totals
//  2. discount = subtotal x class percent, plus subtotal x bulk percent when
//     the total quantity reaches the bulk threshold
//  3. tax = (subtotal - discount) x tax rate
//  4. shipping = 0 when (subtotal - discount) reaches the free threshold,
//     otherwise the express cost for priority orders and the standard cost
//     for the rest
//  5. finalAmount = subtotal - discount + tax + shipping
//
// Every intermediate amount is rounded to cents half-up on construction.
type PricingEngine struct {
	config PricingConfigSource
}

// NewPricingEngine creates a PricingEngine reading its figures from config.
func NewPricingEngine(config PricingConfigSource) (*PricingEngine, error) {
	if config == nil {
		return nil, errs.NewValueIsRequiredError("config")
	}

	return &PricingEngine{config: config}, nil
}

// Price computes the totals snapshot for the order at the current settings.
//
// The same order priced twice without intervening changes yields identical
// figures. A discount configuration pushing the discount above the subtotal
// fails rather than producing a negative amount.
func (e *PricingEngine) Price(ctx context.Context, o *order.Order) (order.Pricing, error) {
	if err := o.Validate(); err != nil {
		return order.Pricing{}, err
	}

	classPercent := e.config.ClassDiscountPercent(ctx, o.CustomerClass())
	taxRate := e.config.TaxRatePercent(ctx)

	subtotal, err := kernel.NewZeroMoney(o.Currency())
	if err != nil {
		return order.Pricing{}, err
	}

	itemFigures := make([]order.ItemPricing, 0, len(o.Items()))
	for _, item := range o.Items() {
		figures, err := e.priceItem(item, classPercent, taxRate)
		if err != nil {
			return order.Pricing{}, err
		}
		itemFigures = append(itemFigures, figures)

		subtotal, err = subtotal.Add(item.TotalPrice())
		if err != nil {
			return order.Pricing{}, err
		}
	}

	discount, err := e.orderDiscount(ctx, o, subtotal, classPercent)
	if err != nil {
		return order.Pricing{}, err
	}

	afterDiscount, err := subtotal.Subtract(discount)
	if err != nil {
		return order.Pricing{}, errs.NewValueIsInvalidErrorWithCause("discount", err)
	}

	tax, err := afterDiscount.Percent(taxRate)
	if err != nil {
		return order.Pricing{}, err
	}

	shipping, err := e.shippingCost(ctx, o, afterDiscount)
	if err != nil {
		return order.Pricing{}, err
	}

	withTax, err := afterDiscount.Add(tax)
	if err != nil {
		return order.Pricing{}, err
	}
	finalAmount, err := withTax.Add(shipping)
	if err != nil {
		return order.Pricing{}, err
	}

	return order.Pricing{
		Items:       itemFigures,
		Subtotal:    subtotal,
		Discount:    discount,
		Tax:         tax,
		Shipping:    shipping,
		FinalAmount: finalAmount,
	}, nil
}

// priceItem computes the informative per-line figures: discount from the class
// percent, tax on the discounted amount, and the resulting line final amount.
func (e *PricingEngine) priceItem(item *order.Item, classPercent float64, taxRate float64) (order.ItemPricing, error) {
	lineTotal := item.TotalPrice()

	discount, err := lineTotal.Percent(classPercent)
	if err != nil {
		return order.ItemPricing{}, err
	}

	afterDiscount, err := lineTotal.Subtract(discount)
	if err != nil {
		return order.ItemPricing{}, errs.NewValueIsInvalidErrorWithCause("discount", err)
	}

	tax, err := afterDiscount.Percent(taxRate)
	if err != nil {
		return order.ItemPricing{}, err
	}

	finalAmount, err := afterDiscount.Add(tax)
	if err != nil {
		return order.ItemPricing{}, err
	}

	return order.ItemPricing{
		ItemID:      item.ID(),
		Discount:    discount,
		Tax:         tax,
		FinalAmount: finalAmount,
	}, nil
}

// orderDiscount applies the class percent to the subtotal and adds the bulk
// percent on top when the total quantity reaches the threshold. The two
// contributions are additive, not compounded.
func (e *PricingEngine) orderDiscount(
	ctx context.Context,
	o *order.Order,
	subtotal kernel.Money,
	classPercent float64,
) (kernel.Money, error) {
	discount, err := subtotal.Percent(classPercent)
	if err != nil {
		return kernel.Money{}, err
	}

	if o.TotalQuantity() < e.config.BulkDiscountThreshold(ctx) {
		return discount, nil
	}

	bulk, err := subtotal.Percent(e.config.BulkDiscountPercent(ctx))
	if err != nil {
		return kernel.Money{}, err
	}

	return discount.Add(bulk)
}

func (e *PricingEngine) shippingCost(
	ctx context.Context,
	o *order.Order,
	afterDiscount kernel.Money,
) (kernel.Money, error) {
	freeFrom, err := kernel.NewMoney(e.config.FreeShippingThreshold(ctx), o.Currency())
	if err != nil {
		return kernel.Money{}, err
	}

	free, err := afterDiscount.GreaterThanOrEqual(freeFrom)
	if err != nil {
		return kernel.Money{}, err
	}
	if free {
		return kernel.NewZeroMoney(o.Currency())
	}

	if o.IsPriority() {
		return kernel.NewMoney(e.config.ExpressShippingCost(ctx), o.Currency())
	}
	return kernel.NewMoney(e.config.StandardShippingCost(ctx), o.Currency())
}
