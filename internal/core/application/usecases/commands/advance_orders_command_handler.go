package commands

import (
	"context"
	"errors"
	"time"

	"github.com/sparrow-trajon/order-processing-system/internal/pkg/errs"
)

const (
	advanceMaxAttempts = 3
	advanceBaseBackoff = time.Second
	advanceMaxBackoff  = 5 * time.Second
)

// AdvanceOrdersCommandHandler sweeps orders from one status to another in
// bulk. The sweep is deliberately blunt: one statement moves every matching
// order without per-order version checks or history entries, trading audit
// detail for throughput. Transient store failures are retried with a growing
// backoff before the run is given up.
type AdvanceOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    StatusCatalog
}

// NewAdvanceOrdersCommandHandler creates a handler for bulk order advancement.
func NewAdvanceOrdersCommandHandler(uowFactory OrderUoWFactory, catalog StatusCatalog) AdvanceOrdersCommandHandler {
	return AdvanceOrdersCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
	}
}

// Handle processes the bulk advancement command and returns how many orders
// moved. The configured pair must form an allowed workflow move; otherwise
// errs.ErrIllegalTransition is returned and nothing is touched.
func (h AdvanceOrdersCommandHandler) Handle(ctx context.Context, cmd AdvanceOrdersCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	allowed, err := h.catalog.IsTransitionAllowed(ctx, cmd.FromCode(), cmd.ToCode())
	if err != nil {
		return 0, err
	}
	if !allowed {
		return 0, errs.NewIllegalTransitionError(cmd.FromCode(), cmd.ToCode())
	}

	for attempt := 1; ; attempt++ {
		moved, err := h.advanceOnce(ctx, cmd)
		if err == nil {
			return moved, nil
		}
		if !errors.Is(err, errs.ErrTransientStoreFailure) || attempt >= advanceMaxAttempts {
			return 0, err
		}

		backoff := min(time.Duration(attempt)*advanceBaseBackoff, advanceMaxBackoff)
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

func (h AdvanceOrdersCommandHandler) advanceOnce(ctx context.Context, cmd AdvanceOrdersCommand) (int64, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	moved, err := uow.OrderRepository().AdvanceAllInStatus(ctx, cmd.FromCode(), cmd.ToCode())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return moved, nil
}
