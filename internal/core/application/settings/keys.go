package settings

import (
	"github.com/shopspring/decimal"

	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/order"
)

// Canonical runtime setting keys. The seed writes one row per key on first
// start; typed readers fall back to the compiled defaults below when a row is
// missing, inactive or unparsable.
const (
	KeyOrderMaxItems           = "order.max.items"
	KeyOrderMaxQuantityPerItem = "order.max.quantity.per.item"
	KeyOrderAutoCancelHours    = "order.auto.cancel.hours"

	KeyShippingFreeThreshold = "shipping.free.threshold"
	KeyShippingStandardCost  = "shipping.standard.cost"
	KeyShippingExpressCost   = "shipping.express.cost"

	KeyDiscountRetailPercent    = "discount.retail.percent"
	KeyDiscountWholesalePercent = "discount.wholesale.percent"
	KeyDiscountVIPPercent       = "discount.vip.percent"
	KeyDiscountCorporatePercent = "discount.corporate.percent"
	KeyBulkDiscountThreshold    = "order.bulk.discount.threshold"
	KeyBulkDiscountPercent      = "order.bulk.discount.percent"

	KeyTaxRatePercent = "tax.rate.percent"

	KeyAdvanceSourceStatus = "order.advance.source.status"
	KeyAdvanceTargetStatus = "order.advance.target.status"
)

// Compiled defaults for the keys above.
const (
	DefaultOrderMaxItems           = 100
	DefaultOrderMaxQuantityPerItem = 10000
	DefaultOrderAutoCancelHours    = 24

	DefaultBulkDiscountThreshold = 10
	DefaultBulkDiscountPercent   = 5.0
	DefaultTaxRatePercent        = 10.0

	DefaultAdvanceSourceStatus = "PENDING"
	DefaultAdvanceTargetStatus = "PROCESSING"
)

var (
	DefaultShippingFreeThreshold = decimal.RequireFromString("100.00")
	DefaultShippingStandardCost  = decimal.RequireFromString("10.00")
	DefaultShippingExpressCost   = decimal.RequireFromString("25.00")
)

// ClassDiscountKey maps a customer class to its discount setting key.
func ClassDiscountKey(class order.CustomerClass) string {
	switch class {
	case order.CustomerClassWholesale:
		return KeyDiscountWholesalePercent
	case order.CustomerClassVIP:
		return KeyDiscountVIPPercent
	case order.CustomerClassCorporate:
		return KeyDiscountCorporatePercent
	default:
		return KeyDiscountRetailPercent
	}
}
