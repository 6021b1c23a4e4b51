package commands_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sparrow-trajon/order-processing-system/internal/core/application/usecases/commands"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/kernel"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/order"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/errs"
)

func TestNewAddOrderItemCommand_ValidInput(t *testing.T) {
	// Arrange
	orderID := kernel.NewUUID()

	// Act
	cmd, err := commands.NewAddOrderItemCommand(orderID, "SKU-9", "Keyboard", 3, decimal.RequireFromString("79.90"))

	// Assert
	require.NoError(t, err)
	assert.True(t, cmd.OrderID().IsEqual(orderID))
	assert.Equal(t, "SKU-9", cmd.ProductCode())
	assert.Equal(t, "Keyboard", cmd.ProductName())
	assert.Equal(t, 3, cmd.Quantity())
	assert.True(t, cmd.UnitPrice().Equal(decimal.RequireFromString("79.90")))
}

func TestNewAddOrderItemCommand_InvalidInput(t *testing.T) {
	testCases := []struct {
		name      string
		code      string
		quantity  int
		unitPrice decimal.Decimal
		expected  error
	}{
		{
			name:      "blank product code",
			code:      "  ",
			quantity:  1,
			unitPrice: decimal.NewFromInt(10),
			expected:  commands.ErrProductCodeIsRequired,
		},
		{
			name:      "zero quantity",
			code:      "SKU-9",
			quantity:  0,
			unitPrice: decimal.NewFromInt(10),
			expected:  commands.ErrQuantityIsInvalid,
		},
		{
			name:      "negative unit price",
			code:      "SKU-9",
			quantity:  1,
			unitPrice: decimal.NewFromInt(-5),
			expected:  commands.ErrUnitPriceIsInvalid,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			_, err := commands.NewAddOrderItemCommand(kernel.NewUUID(), tc.code, "Keyboard", tc.quantity, tc.unitPrice)

			// Assert
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}

func TestAddOrderItemCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	o := pricedOrder(t, pendingStatus(t))
	subtotalBefore := o.Subtotal()
	cmd, err := commands.NewAddOrderItemCommand(o.ID(), "SKU-9", "Keyboard", 1, decimal.RequireFromString("79.90"))
	require.NoError(t, err)

	orderRepo := &MockOrderRepository{}
	uow := &MockOrderUoW{}
	uowFactory := &MockOrderUoWFactory{}

	uowFactory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	orderRepo.On("Update", ctx, o).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewAddOrderItemCommandHandler(uowFactory, testPricingEngine(t), defaultLimits())

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Len(t, o.Items(), 2)
	assert.True(t, o.Subtotal().Amount().GreaterThan(subtotalBefore.Amount()))
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAddOrderItemCommandHandler_Handle_MergesSameProductCode(t *testing.T) {
	// Arrange
	ctx := t.Context()
	o := pricedOrder(t, pendingStatus(t))
	cmd, err := commands.NewAddOrderItemCommand(o.ID(), "SKU-1", "Wireless Mouse", 3, decimal.RequireFromString("49.99"))
	require.NoError(t, err)

	orderRepo := &MockOrderRepository{}
	uow := &MockOrderUoW{}
	uowFactory := &MockOrderUoWFactory{}

	uowFactory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	orderRepo.On("Update", ctx, o).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewAddOrderItemCommandHandler(uowFactory, testPricingEngine(t), defaultLimits())

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	require.Len(t, o.Items(), 1)
	assert.Equal(t, 5, o.Items()[0].Quantity().Value())
	orderRepo.AssertExpectations(t)
}

func TestAddOrderItemCommandHandler_Handle_OrderNotModifiable(t *testing.T) {
	// Arrange
	ctx := t.Context()
	o := pricedOrder(t, shippedStatus(t))
	cmd, err := commands.NewAddOrderItemCommand(o.ID(), "SKU-9", "Keyboard", 1, decimal.RequireFromString("79.90"))
	require.NoError(t, err)

	orderRepo := &MockOrderRepository{}
	uow := &MockOrderUoW{}
	uowFactory := &MockOrderUoWFactory{}

	uowFactory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewAddOrderItemCommandHandler(uowFactory, testPricingEngine(t), defaultLimits())

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrOrderNotModifiable)
	assert.Len(t, o.Items(), 1)
	orderRepo.AssertNotCalled(t, "Update")
}

func TestAddOrderItemCommandHandler_Handle_QuantityOverLimit(t *testing.T) {
	// Arrange
	ctx := t.Context()
	cmd, err := commands.NewAddOrderItemCommand(kernel.NewUUID(), "SKU-9", "Keyboard", 6, decimal.RequireFromString("79.90"))
	require.NoError(t, err)

	uowFactory := &MockOrderUoWFactory{}
	limits := stubOrderLimits{maxItems: 100, maxQuantity: 5}

	handler := commands.NewAddOrderItemCommandHandler(uowFactory, testPricingEngine(t), limits)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	uowFactory.AssertNotCalled(t, "Create")
}

func TestRemoveOrderItemCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	o := pricedOrder(t, pendingStatus(t))

	extra, err := commands.NewAddOrderItemCommand(o.ID(), "SKU-9", "Keyboard", 1, decimal.RequireFromString("79.90"))
	require.NoError(t, err)

	orderRepo := &MockOrderRepository{}
	uow := &MockOrderUoW{}
	uowFactory := &MockOrderUoWFactory{}

	uowFactory.On("Create").Return(uow).Twice()
	uow.On("Begin", mock.Anything).Return(nil).Twice()
	uow.On("OrderRepository").Return(orderRepo)
	orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Twice()
	orderRepo.On("Update", mock.Anything, o).Return(nil).Twice()
	uow.On("Commit", mock.Anything).Return(nil).Twice()
	uow.On("Rollback", mock.Anything).Return(nil).Twice()

	addHandler := commands.NewAddOrderItemCommandHandler(uowFactory, testPricingEngine(t), defaultLimits())
	require.NoError(t, addHandler.Handle(ctx, extra))
	require.Len(t, o.Items(), 2)
	itemID := o.Items()[1].ID()

	cmd, err := commands.NewRemoveOrderItemCommand(o.ID(), itemID)
	require.NoError(t, err)

	handler := commands.NewRemoveOrderItemCommandHandler(uowFactory, testPricingEngine(t))

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Len(t, o.Items(), 1)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRemoveOrderItemCommandHandler_Handle_LastItemRefused(t *testing.T) {
	// Arrange
	ctx := t.Context()
	o := pricedOrder(t, pendingStatus(t))
	cmd, err := commands.NewRemoveOrderItemCommand(o.ID(), o.Items()[0].ID())
	require.NoError(t, err)

	orderRepo := &MockOrderRepository{}
	uow := &MockOrderUoW{}
	uowFactory := &MockOrderUoWFactory{}

	uowFactory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewRemoveOrderItemCommandHandler(uowFactory, testPricingEngine(t))

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Len(t, o.Items(), 1)
	orderRepo.AssertNotCalled(t, "Update")
}

func TestRemoveOrderItemCommandHandler_Handle_ItemNotFound(t *testing.T) {
	// Arrange
	ctx := t.Context()
	o := pricedOrder(t, pendingStatus(t))
	cmd, err := commands.NewRemoveOrderItemCommand(o.ID(), kernel.NewUUID())
	require.NoError(t, err)

	orderRepo := &MockOrderRepository{}
	uow := &MockOrderUoW{}
	uowFactory := &MockOrderUoWFactory{}

	uowFactory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewRemoveOrderItemCommandHandler(uowFactory, testPricingEngine(t))

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	orderRepo.AssertNotCalled(t, "Update")
}
