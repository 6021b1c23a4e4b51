package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sparrow-trajon/order-processing-system/internal/core/application/usecases/commands"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/status"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/errs"
)

func TestNewCreateTransitionCommand_ValidInput(t *testing.T) {
	// Act
	cmd, err := commands.NewCreateTransitionCommand(
		"pending", "confirmed", 1, "Confirm the order",
		status.Rules{RequiresPayment: true},
	)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "PENDING", cmd.FromCode())
	assert.Equal(t, "CONFIRMED", cmd.ToCode())
	assert.Equal(t, 1, cmd.DisplayOrder())
	assert.Equal(t, "Confirm the order", cmd.Description())
	assert.True(t, cmd.Rules().RequiresPayment)
}

func TestNewCreateTransitionCommand_SelfLoopRefused(t *testing.T) {
	// Act
	_, err := commands.NewCreateTransitionCommand("PENDING", "pending", 1, "", status.Rules{})

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrStatusCodesMustDiffer)
}

func TestCreateTransitionCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	cmd, err := commands.NewCreateTransitionCommand("PENDING", "PROCESSING", 1, "", status.Rules{RequiresApproval: true})
	require.NoError(t, err)

	statusRepo := &MockStatusRepository{}
	transitionRepo := &MockTransitionRepository{}
	uow := &MockWorkflowUoW{}
	uowFactory := &MockWorkflowUoWFactory{}
	invalidator := &MockCatalogInvalidator{}

	var added *status.Transition
	uowFactory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("StatusRepository").Return(statusRepo)
	uow.On("TransitionRepository").Return(transitionRepo)
	fromCall := statusRepo.On("GetByCode", ctx, "PENDING").Return(pendingStatus(t), nil).Once()
	toCall := statusRepo.On("GetByCode", ctx, "PROCESSING").Return(processingStatus(t), nil).Once()
	addCall := transitionRepo.On("Add", ctx, mock.AnythingOfType("*status.Transition")).
		Run(func(args mock.Arguments) {
			added = args.Get(1).(*status.Transition)
		}).
		Return(nil).Once()
	commitCall := uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	invalidateCall := invalidator.On("InvalidateTransition", "PENDING", "PROCESSING").Return().Once()

	mock.InOrder(fromCall, toCall, addCall, commitCall, invalidateCall)

	handler := commands.NewCreateTransitionCommandHandler(uowFactory, invalidator)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, added)
	assert.Equal(t, "PENDING", added.FromCode())
	assert.Equal(t, "PROCESSING", added.ToCode())
	assert.True(t, added.RequiresApproval())
	assert.True(t, added.IsAllowed())
	transitionRepo.AssertExpectations(t)
	statusRepo.AssertExpectations(t)
	invalidator.AssertExpectations(t)
}

func TestCreateTransitionCommandHandler_Handle_MissingEndpoint(t *testing.T) {
	// Arrange
	ctx := t.Context()
	cmd, err := commands.NewCreateTransitionCommand("PENDING", "GHOST", 1, "", status.Rules{})
	require.NoError(t, err)

	statusRepo := &MockStatusRepository{}
	transitionRepo := &MockTransitionRepository{}
	uow := &MockWorkflowUoW{}
	uowFactory := &MockWorkflowUoWFactory{}
	invalidator := &MockCatalogInvalidator{}

	uowFactory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("StatusRepository").Return(statusRepo)
	statusRepo.On("GetByCode", ctx, "PENDING").Return(pendingStatus(t), nil).Once()
	statusRepo.On("GetByCode", ctx, "GHOST").
		Return(nil, errs.NewObjectNotFoundError("code", "GHOST")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewCreateTransitionCommandHandler(uowFactory, invalidator)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	transitionRepo.AssertNotCalled(t, "Add")
	invalidator.AssertNotCalled(t, "InvalidateTransition")
}

func TestCreateTransitionCommandHandler_Handle_DuplicatePair(t *testing.T) {
	// Arrange
	ctx := t.Context()
	cmd, err := commands.NewCreateTransitionCommand("PENDING", "PROCESSING", 1, "", status.Rules{})
	require.NoError(t, err)

	statusRepo := &MockStatusRepository{}
	transitionRepo := &MockTransitionRepository{}
	uow := &MockWorkflowUoW{}
	uowFactory := &MockWorkflowUoWFactory{}
	invalidator := &MockCatalogInvalidator{}

	uowFactory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("StatusRepository").Return(statusRepo)
	uow.On("TransitionRepository").Return(transitionRepo)
	statusRepo.On("GetByCode", ctx, "PENDING").Return(pendingStatus(t), nil).Once()
	statusRepo.On("GetByCode", ctx, "PROCESSING").Return(processingStatus(t), nil).Once()
	transitionRepo.On("Add", ctx, mock.AnythingOfType("*status.Transition")).
		Return(errs.NewObjectAlreadyExistsError("transition", "PENDING->PROCESSING")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewCreateTransitionCommandHandler(uowFactory, invalidator)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectAlreadyExists)
	uow.AssertNotCalled(t, "Commit")
	invalidator.AssertNotCalled(t, "InvalidateTransition")
}
