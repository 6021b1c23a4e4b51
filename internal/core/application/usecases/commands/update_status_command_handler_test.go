package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sparrow-trajon/order-processing-system/internal/core/application/usecases/commands"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/status"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/errs"
)

func TestUpdateStatusCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	existing := pendingStatus(t)
	cmd, err := commands.NewUpdateStatusCommand(
		"PENDING", "Awaiting Confirmation", "Order received", 1,
		status.Flags{IsCancellable: true, IsModifiable: true, SendsNotification: true}, true,
	)
	require.NoError(t, err)

	statusRepo := &MockStatusRepository{}
	uow := &MockWorkflowUoW{}
	uowFactory := &MockWorkflowUoWFactory{}
	invalidator := &MockCatalogInvalidator{}

	uowFactory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("StatusRepository").Return(statusRepo)
	statusRepo.On("GetByCode", ctx, "PENDING").Return(existing, nil).Once()
	statusRepo.On("Update", ctx, existing).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	invalidator.On("InvalidateStatus", "PENDING").Return().Once()

	handler := commands.NewUpdateStatusCommandHandler(uowFactory, invalidator)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Awaiting Confirmation", existing.Name())
	assert.Equal(t, "Order received", existing.Description())
	assert.True(t, existing.Flags().SendsNotification)
	assert.True(t, existing.IsActive())
	statusRepo.AssertExpectations(t)
	invalidator.AssertExpectations(t)
}

func TestUpdateStatusCommandHandler_Handle_StatusNotFound(t *testing.T) {
	// Arrange
	ctx := t.Context()
	cmd, err := commands.NewUpdateStatusCommand("GHOST", "Ghost", "", 1, status.Flags{}, true)
	require.NoError(t, err)

	statusRepo := &MockStatusRepository{}
	uow := &MockWorkflowUoW{}
	uowFactory := &MockWorkflowUoWFactory{}
	invalidator := &MockCatalogInvalidator{}

	uowFactory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("StatusRepository").Return(statusRepo)
	statusRepo.On("GetByCode", ctx, "GHOST").
		Return(nil, errs.NewObjectNotFoundError("code", "GHOST")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewUpdateStatusCommandHandler(uowFactory, invalidator)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	statusRepo.AssertNotCalled(t, "Update")
	invalidator.AssertNotCalled(t, "InvalidateStatus")
}

func TestUpdateStatusCommandHandler_Handle_EntryPointCannotBeDeactivated(t *testing.T) {
	// Arrange
	ctx := t.Context()
	existing := pendingStatus(t)
	cmd, err := commands.NewUpdateStatusCommand("PENDING", "Pending", "", 1,
		status.Flags{IsCancellable: true, IsModifiable: true}, false)
	require.NoError(t, err)

	statusRepo := &MockStatusRepository{}
	uow := &MockWorkflowUoW{}
	uowFactory := &MockWorkflowUoWFactory{}
	invalidator := &MockCatalogInvalidator{}

	uowFactory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("StatusRepository").Return(statusRepo)
	statusRepo.On("GetByCode", ctx, "PENDING").Return(existing, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewUpdateStatusCommandHandler(uowFactory, invalidator)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.Error(t, err)
	assert.True(t, existing.IsActive())
	statusRepo.AssertNotCalled(t, "Update")
	uow.AssertNotCalled(t, "Commit")
	invalidator.AssertNotCalled(t, "InvalidateStatus")
}
