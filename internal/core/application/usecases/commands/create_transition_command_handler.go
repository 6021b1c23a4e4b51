package commands

import (
	"context"

	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/status"
)

// CreateTransitionCommandHandler wires a new edge into the workflow graph.
type CreateTransitionCommandHandler struct {
	uowFactory  WorkflowUoWFactory
	invalidator CatalogInvalidator
}

// NewCreateTransitionCommandHandler creates a handler for edge creation.
func NewCreateTransitionCommandHandler(
	uowFactory WorkflowUoWFactory, invalidator CatalogInvalidator,
) CreateTransitionCommandHandler {
	return CreateTransitionCommandHandler{
		uowFactory:  uowFactory,
		invalidator: invalidator,
	}
}

// Handle processes the edge creation command.
// Both endpoints must exist in the catalog; a missing one surfaces as
// errs.ErrObjectNotFound and a duplicate pair as errs.ErrObjectAlreadyExists.
// The cached edge and outbound listing are dropped after the commit.
func (h CreateTransitionCommandHandler) Handle(ctx context.Context, cmd CreateTransitionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	edge, err := status.NewTransition(
		cmd.FromCode(), cmd.ToCode(), cmd.DisplayOrder(), cmd.Description(), cmd.Rules(),
	)
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

	statusRepo := uow.StatusRepository()
	if _, err = statusRepo.GetByCode(ctx, cmd.FromCode()); err != nil {
		return err
	}
	if _, err = statusRepo.GetByCode(ctx, cmd.ToCode()); err != nil {
		return err
	}

	if err = uow.TransitionRepository().Add(ctx, edge); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.invalidator.InvalidateTransition(edge.FromCode(), edge.ToCode())

	return nil
}
