package settings

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/order"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/errs"
)

// PricingConfig feeds the pricing engine from runtime settings. Each read
// falls back to the compiled default for its key, so pricing keeps working
// even with an empty settings table.
type PricingConfig struct {
	settings *Service
}

func NewPricingConfig(settings *Service) (*PricingConfig, error) {
	if settings == nil {
		return nil, errs.NewValueIsRequiredError("settings")
	}
	return &PricingConfig{settings: settings}, nil
}

func (c *PricingConfig) ClassDiscountPercent(ctx context.Context, class order.CustomerClass) float64 {
	return c.settings.GetFloat(ctx, ClassDiscountKey(class), class.DefaultDiscountPercent())
}

func (c *PricingConfig) BulkDiscountThreshold(ctx context.Context) int {
	return c.settings.GetInt(ctx, KeyBulkDiscountThreshold, DefaultBulkDiscountThreshold)
}

func (c *PricingConfig) BulkDiscountPercent(ctx context.Context) float64 {
	return c.settings.GetFloat(ctx, KeyBulkDiscountPercent, DefaultBulkDiscountPercent)
}

func (c *PricingConfig) TaxRatePercent(ctx context.Context) float64 {
	return c.settings.GetFloat(ctx, KeyTaxRatePercent, DefaultTaxRatePercent)
}

func (c *PricingConfig) FreeShippingThreshold(ctx context.Context) decimal.Decimal {
	return c.settings.GetDecimal(ctx, KeyShippingFreeThreshold, DefaultShippingFreeThreshold)
}

func (c *PricingConfig) StandardShippingCost(ctx context.Context) decimal.Decimal {
	return c.settings.GetDecimal(ctx, KeyShippingStandardCost, DefaultShippingStandardCost)
}

func (c *PricingConfig) ExpressShippingCost(ctx context.Context) decimal.Decimal {
	return c.settings.GetDecimal(ctx, KeyShippingExpressCost, DefaultShippingExpressCost)
}
