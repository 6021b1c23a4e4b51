package settings

import (
	"context"

	"github.com/sparrow-trajon/order-processing-system/internal/pkg/errs"
)

// Limits exposes the runtime caps enforced when composing orders.
type Limits struct {
	settings *Service
}

func NewLimits(settings *Service) (*Limits, error) {
	if settings == nil {
		return nil, errs.NewValueIsRequiredError("settings")
	}
	return &Limits{settings: settings}, nil
}

func (l *Limits) MaxItemsPerOrder(ctx context.Context) int {
	return l.settings.GetInt(ctx, KeyOrderMaxItems, DefaultOrderMaxItems)
}

func (l *Limits) MaxQuantityPerItem(ctx context.Context) int {
	return l.settings.GetInt(ctx, KeyOrderMaxQuantityPerItem, DefaultOrderMaxQuantityPerItem)
}
