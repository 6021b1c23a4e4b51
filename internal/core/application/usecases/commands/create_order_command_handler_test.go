package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sparrow-trajon/order-processing-system/internal/core/application/usecases/commands"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/kernel"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/order"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/status"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/services"
	"github.com/sparrow-trajon/order-processing-system/internal/core/ports"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/errs"
)

// MockOrderRepository is a mock implementation of ports.OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByNumber(_ context.Context, _ kernel.OrderNumber) (*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockOrderRepository) GetAllInStatus(_ context.Context, _ string) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockOrderRepository) AdvanceAllInStatus(ctx context.Context, fromCode string, toCode string) (int64, error) {
	args := m.Called(ctx, fromCode, toCode)
	return args.Get(0).(int64), args.Error(1)
}

// MockOrderUoW is a mock implementation of commands.OrderUoW.
type MockOrderUoW struct {
	mock.Mock
}

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

// MockOrderUoWFactory is a mock implementation of commands.OrderUoWFactory.
type MockOrderUoWFactory struct {
	mock.Mock
}

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

// MockStatusCatalog is a mock implementation of commands.StatusCatalog.
type MockStatusCatalog struct {
	mock.Mock
}

func (m *MockStatusCatalog) StatusByCode(ctx context.Context, code string) (*status.Status, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*status.Status), args.Error(1)
}

func (m *MockStatusCatalog) DefaultStatus(ctx context.Context) (*status.Status, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*status.Status), args.Error(1)
}

func (m *MockStatusCatalog) CancellationStatus(ctx context.Context) (*status.Status, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*status.Status), args.Error(1)
}

func (m *MockStatusCatalog) Edge(ctx context.Context, fromCode string, toCode string) (*status.Transition, error) {
	args := m.Called(ctx, fromCode, toCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*status.Transition), args.Error(1)
}

func (m *MockStatusCatalog) IsTransitionAllowed(ctx context.Context, fromCode string, toCode string) (bool, error) {
	args := m.Called(ctx, fromCode, toCode)
	return args.Bool(0), args.Error(1)
}

// MockEventPublisher is a mock implementation of ports.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishOrderCreated(ctx context.Context, event ports.OrderCreatedEvent) {
	m.Called(ctx, event)
}

func (m *MockEventPublisher) PublishOrderStatusChanged(ctx context.Context, event ports.OrderStatusChangedEvent) {
	m.Called(ctx, event)
}

func (m *MockEventPublisher) PublishOrderCancelled(ctx context.Context, event ports.OrderCancelledEvent) {
	m.Called(ctx, event)
}

// stubOrderLimits implements commands.OrderLimits with fixed figures.
type stubOrderLimits struct {
	maxItems    int
	maxQuantity int
}

func (s stubOrderLimits) MaxItemsPerOrder(_ context.Context) int { return s.maxItems }

func (s stubOrderLimits) MaxQuantityPerItem(_ context.Context) int { return s.maxQuantity }

func defaultLimits() stubOrderLimits {
	return stubOrderLimits{maxItems: 100, maxQuantity: 10000}
}

// stubPricingSource implements services.PricingConfigSource with the seeded
// defaults so handler tests run the real pricing engine.
type stubPricingSource struct{}

func (stubPricingSource) ClassDiscountPercent(_ context.Context, class order.CustomerClass) float64 {
	return class.DefaultDiscountPercent()
}

func (stubPricingSource) BulkDiscountThreshold(_ context.Context) int { return 10 }

func (stubPricingSource) BulkDiscountPercent(_ context.Context) float64 { return 5 }

func (stubPricingSource) TaxRatePercent(_ context.Context) float64 { return 10 }

func (stubPricingSource) FreeShippingThreshold(_ context.Context) decimal.Decimal {
	return decimal.RequireFromString("100.00")
}

func (stubPricingSource) StandardShippingCost(_ context.Context) decimal.Decimal {
	return decimal.RequireFromString("10.00")
}

func (stubPricingSource) ExpressShippingCost(_ context.Context) decimal.Decimal {
	return decimal.RequireFromString("25.00")
}

func testPricingEngine(t *testing.T) *services.PricingEngine {
	t.Helper()

	engine, err := services.NewPricingEngine(stubPricingSource{})
	require.NoError(t, err)

	return engine
}

func pendingStatus(t *testing.T) *status.Status {
	t.Helper()

	s, err := status.NewStatus("PENDING", "Pending", "Awaiting processing", 1,
		status.Flags{IsCancellable: true, IsModifiable: true})
	require.NoError(t, err)

	return s
}

func mustCreateOrderCommand(t *testing.T) commands.CreateOrderCommand {
	t.Helper()

	cmd, err := commands.NewCreateOrderCommand(
		"Alice Johnson", "alice@example.com", "RETAIL", "USD", validItemInputs(), false, "", "alice",
	)
	require.NoError(t, err)

	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	cmd := mustCreateOrderCommand(t)

	orderRepo := &MockOrderRepository{}
	uow := &MockOrderUoW{}
	uowFactory := &MockOrderUoWFactory{}
	catalog := &MockStatusCatalog{}
	publisher := &MockEventPublisher{}

	var added *order.Order
	catalogCall := catalog.On("DefaultStatus", ctx).Return(pendingStatus(t), nil).Once()
	createCall := uowFactory.On("Create").Return(uow).Once()
	beginCall := uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	addCall := orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) {
			added = args.Get(1).(*order.Order)
		}).
		Return(nil).Once()
	commitCall := uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	publishCall := publisher.On("PublishOrderCreated", ctx, mock.AnythingOfType("ports.OrderCreatedEvent")).
		Return().Once()

	mock.InOrder(catalogCall, createCall, beginCall, addCall, commitCall, publishCall)

	handler := commands.NewCreateOrderCommandHandler(uowFactory, catalog, testPricingEngine(t), defaultLimits(), publisher)

	// Act
	err := handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, added)
	assert.True(t, added.ID().IsEqual(cmd.OrderID()))
	assert.Equal(t, "PENDING", added.Status().Code())
	assert.Len(t, added.Items(), 2)
	// 2 x 49.99 + 1 x 19.99, retail class, under the bulk threshold.
	assert.Equal(t, "119.97", added.Subtotal().Amount().StringFixed(kernel.MoneyScale))
	assert.Equal(t, "0.00", added.Discount().Amount().StringFixed(kernel.MoneyScale))
	// Subtotal clears the free shipping threshold.
	assert.Equal(t, "0.00", added.Shipping().Amount().StringFixed(kernel.MoneyScale))
	assert.True(t, added.FinalAmount().Amount().IsPositive())

	event := publisher.Calls[0].Arguments.Get(1).(ports.OrderCreatedEvent)
	assert.Equal(t, added.ID().String(), event.OrderID)
	assert.Equal(t, "PENDING", event.Status)
	assert.Equal(t, 2, event.ItemCount)

	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	uowFactory.AssertExpectations(t)
	catalog.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	// Arrange
	ctx := t.Context()
	uowFactory := &MockOrderUoWFactory{}
	catalog := &MockStatusCatalog{}
	publisher := &MockEventPublisher{}

	handler := commands.NewCreateOrderCommandHandler(uowFactory, catalog, testPricingEngine(t), defaultLimits(), publisher)

	var cmd commands.CreateOrderCommand

	// Act
	err := handler.Handle(ctx, cmd)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	uowFactory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_TooManyItems(t *testing.T) {
	// Arrange
	ctx := t.Context()
	cmd := mustCreateOrderCommand(t)

	uowFactory := &MockOrderUoWFactory{}
	catalog := &MockStatusCatalog{}
	publisher := &MockEventPublisher{}
	limits := stubOrderLimits{maxItems: 1, maxQuantity: 10000}

	handler := commands.NewCreateOrderCommandHandler(uowFactory, catalog, testPricingEngine(t), limits, publisher)

	// Act
	err := handler.Handle(ctx, cmd)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	uowFactory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_QuantityOverLimit(t *testing.T) {
	// Arrange
	ctx := t.Context()
	cmd := mustCreateOrderCommand(t)

	uowFactory := &MockOrderUoWFactory{}
	catalog := &MockStatusCatalog{}
	publisher := &MockEventPublisher{}
	limits := stubOrderLimits{maxItems: 100, maxQuantity: 1}

	handler := commands.NewCreateOrderCommandHandler(uowFactory, catalog, testPricingEngine(t), limits, publisher)

	// Act
	err := handler.Handle(ctx, cmd)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	uowFactory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_DefaultStatusError(t *testing.T) {
	// Arrange
	ctx := t.Context()
	cmd := mustCreateOrderCommand(t)

	uowFactory := &MockOrderUoWFactory{}
	catalog := &MockStatusCatalog{}
	publisher := &MockEventPublisher{}

	expectedErr := errs.NewObjectNotFoundError("code", "PENDING")
	catalog.On("DefaultStatus", ctx).Return(nil, expectedErr).Once()

	handler := commands.NewCreateOrderCommandHandler(uowFactory, catalog, testPricingEngine(t), defaultLimits(), publisher)

	// Act
	err := handler.Handle(ctx, cmd)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	uowFactory.AssertNotCalled(t, "Create")
	catalog.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	// Arrange
	ctx := t.Context()
	cmd := mustCreateOrderCommand(t)

	orderRepo := &MockOrderRepository{}
	uow := &MockOrderUoW{}
	uowFactory := &MockOrderUoWFactory{}
	catalog := &MockStatusCatalog{}
	publisher := &MockEventPublisher{}

	catalog.On("DefaultStatus", ctx).Return(pendingStatus(t), nil).Once()
	uowFactory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(errors.New("connection refused")).Once()

	handler := commands.NewCreateOrderCommandHandler(uowFactory, catalog, testPricingEngine(t), defaultLimits(), publisher)

	// Act
	err := handler.Handle(ctx, cmd)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	orderRepo.AssertNotCalled(t, "Add")
	uow.AssertNotCalled(t, "Rollback")
	publisher.AssertNotCalled(t, "PublishOrderCreated")
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	// Arrange
	ctx := t.Context()
	cmd := mustCreateOrderCommand(t)

	orderRepo := &MockOrderRepository{}
	uow := &MockOrderUoW{}
	uowFactory := &MockOrderUoWFactory{}
	catalog := &MockStatusCatalog{}
	publisher := &MockEventPublisher{}

	catalog.On("DefaultStatus", ctx).Return(pendingStatus(t), nil).Once()
	uowFactory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
		Return(errs.NewObjectAlreadyExistsError("id", cmd.OrderID().String())).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewCreateOrderCommandHandler(uowFactory, catalog, testPricingEngine(t), defaultLimits(), publisher)

	// Act
	err := handler.Handle(ctx, cmd)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectAlreadyExists)
	uow.AssertNotCalled(t, "Commit")
	publisher.AssertNotCalled(t, "PublishOrderCreated")
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	// Arrange
	ctx := t.Context()
	cmd := mustCreateOrderCommand(t)

	orderRepo := &MockOrderRepository{}
	uow := &MockOrderUoW{}
	uowFactory := &MockOrderUoWFactory{}
	catalog := &MockStatusCatalog{}
	publisher := &MockEventPublisher{}

	catalog.On("DefaultStatus", ctx).Return(pendingStatus(t), nil).Once()
	uowFactory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	uow.On("Commit", ctx).Return(errors.New("commit failed")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewCreateOrderCommandHandler(uowFactory, catalog, testPricingEngine(t), defaultLimits(), publisher)

	// Act
	err := handler.Handle(ctx, cmd)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "commit failed")
	publisher.AssertNotCalled(t, "PublishOrderCreated")
	uow.AssertExpectations(t)
}
