package commands

import (
	"context"
)

// UpdateStatusCommandHandler redefines an existing catalog status.
// Orders already sitting in the status keep it; deactivation only stops new
// arrivals. The domain refuses to deactivate entry-point statuses.
type UpdateStatusCommandHandler struct {
	uowFactory  WorkflowUoWFactory
	invalidator CatalogInvalidator
}

// NewUpdateStatusCommandHandler creates a handler for status redefinition.
func NewUpdateStatusCommandHandler(
	uowFactory WorkflowUoWFactory, invalidator CatalogInvalidator,
) UpdateStatusCommandHandler {
	return UpdateStatusCommandHandler{
		uowFactory:  uowFactory,
		invalidator: invalidator,
	}
}

// Handle processes the status redefinition command.
// Loads the current definition, applies the new attributes and activation
// state, and persists the result. The catalog cache entry is dropped after
// the commit so workflow checks see the change immediately.
func (h UpdateStatusCommandHandler) Handle(ctx context.Context, cmd UpdateStatusCommand) error {
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

	statusRepo := uow.StatusRepository()

	s, err := statusRepo.GetByCode(ctx, cmd.Code())
	if err != nil {
		return err
	}

	if err = s.Update(cmd.Name(), cmd.Description(), cmd.DisplayOrder(), cmd.Flags()); err != nil {
		return err
	}
	if cmd.IsActive() {
		err = s.Activate()
	} else {
		err = s.Deactivate()
	}
	if err != nil {
		return err
	}

	if err = statusRepo.Update(ctx, s); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.invalidator.InvalidateStatus(s.Code())

	return nil
}
