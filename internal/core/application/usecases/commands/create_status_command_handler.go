package commands

import (
	"context"

	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/status"
)

// CreateStatusCommandHandler registers a new status in the workflow catalog.
type CreateStatusCommandHandler struct {
	uowFactory  WorkflowUoWFactory
	invalidator CatalogInvalidator
}

// NewCreateStatusCommandHandler creates a handler for status registration.
func NewCreateStatusCommandHandler(
	uowFactory WorkflowUoWFactory, invalidator CatalogInvalidator,
) CreateStatusCommandHandler {
	return CreateStatusCommandHandler{
		uowFactory:  uowFactory,
		invalidator: invalidator,
	}
}

// Handle processes the status creation command.
// A duplicate code surfaces as errs.ErrObjectAlreadyExists. The catalog
// cache entry for the code is dropped after the commit.
func (h CreateStatusCommandHandler) Handle(ctx context.Context, cmd CreateStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	s, err := status.NewStatus(cmd.Code(), cmd.Name(), cmd.Description(), cmd.DisplayOrder(), cmd.Flags())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.StatusRepository().Add(ctx, s); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.invalidator.InvalidateStatus(s.Code())

	return nil
}
