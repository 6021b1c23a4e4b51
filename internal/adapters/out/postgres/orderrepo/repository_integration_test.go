package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sparrow-trajon/order-processing-system/internal/adapters/out/postgres/orderrepo"
	"github.com/sparrow-trajon/order-processing-system/internal/adapters/out/postgres/statusrepo"
	"github.com/sparrow-trajon/order-processing-system/internal/adapters/out/postgres/transitionrepo"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/kernel"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/order"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/status"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/errs"
)

// OrderRepositoryIntegrationTestSuite provides integration tests for
// OrderRepository using PostgreSQL containers to verify persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository

	pending    *status.Status
	processing *status.Status
	cancelled  *status.Status
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&statusrepo.StatusDTO{},
		&transitionrepo.TransitionDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.HistoryDTO{},
	))

	// The catalog is static across tests; only order rows get truncated.
	suite.pending = suite.createStatus("PENDING", 1, status.Flags{IsCancellable: true, IsModifiable: true})
	suite.processing = suite.createStatus("PROCESSING", 2, status.Flags{IsCancellable: true})
	suite.cancelled = suite.createStatus("CANCELLED", 8, status.Flags{IsFinal: true})

	statuses := statusrepo.NewGormStatusRepository(db)
	for _, s := range []*status.Status{suite.pending, suite.processing, suite.cancelled} {
		suite.Require().NoError(statuses.Add(ctx, s))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(
		suite.db.Exec("TRUNCATE TABLE orders, order_items, order_status_history CASCADE").Error)

	suite.repository = orderrepo.NewGormOrderRepository(
		suite.db, statusrepo.NewGormStatusRepository(suite.db))
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.True(testOrder.ID().IsEqual(retrieved.ID()))
	suite.Equal(testOrder.OrderNumber().Value(), retrieved.OrderNumber().Value())
	suite.Equal("PENDING", retrieved.Status().Code())
	suite.Equal(int64(1), retrieved.Version())
	suite.Len(retrieved.Items(), 1)
	suite.Len(retrieved.History(), 1)
	suite.Equal("", retrieved.History()[0].FromCode())
	suite.Equal("PENDING", retrieved.History()[0].ToCode())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateOrderNumber_ReturnsAlreadyExists() {
	ctx := context.Background()

	first := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, first))

	second := suite.createTestOrderWithNumber(first.OrderNumber())

	err := suite.repository.Add(ctx, second)
	suite.Require().Error(err)

	var alreadyExists *errs.ObjectAlreadyExistsError
	suite.Require().ErrorAs(err, &alreadyExists)
	suite.assertOrderCount(1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFound *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByNumber_ExistingOrder_ReturnsOrder() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	retrieved, err := suite.repository.GetByNumber(ctx, testOrder.OrderNumber())
	suite.Require().NoError(err)
	suite.True(testOrder.ID().IsEqual(retrieved.ID()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StatusChange_AppendsHistoryAndBumpsVersion() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	err := testOrder.ChangeStatus(suite.processing, "operator", time.Now().UTC(), "", false)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal("PROCESSING", retrieved.Status().Code())
	suite.Equal(int64(2), retrieved.Version())
	suite.Require().Len(retrieved.History(), 2)
	suite.Equal("PENDING", retrieved.History()[1].FromCode())
	suite.Equal("PROCESSING", retrieved.History()[1].ToCode())
	suite.NotNil(retrieved.History()[0].DurationInStatus())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsOptimisticConflict() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// Two actors load the same version.
	first, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.ChangeStatus(suite.processing, "operator-a", time.Now().UTC(), "", false))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.ChangeStatus(suite.cancelled, "operator-b", time.Now().UTC(), "changed mind", false))
	err = suite.repository.Update(ctx, second)
	suite.Require().Error(err)

	var conflict *errs.OptimisticConflictError
	suite.Require().ErrorAs(err, &conflict)

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal("PROCESSING", retrieved.Status().Code())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsOptimisticConflict() {
	ctx := context.Background()

	missing := suite.createTestOrder()

	err := suite.repository.Update(ctx, missing)
	suite.Require().Error(err)

	var conflict *errs.OptimisticConflictError
	suite.Require().ErrorAs(err, &conflict)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllInStatus_ReturnsOnlyMatching() {
	ctx := context.Background()

	pendingOne := suite.createTestOrder()
	pendingTwo := suite.createTestOrder()
	moved := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, pendingOne))
	suite.Require().NoError(suite.repository.Add(ctx, pendingTwo))
	suite.Require().NoError(suite.repository.Add(ctx, moved))

	suite.Require().NoError(moved.ChangeStatus(suite.processing, "operator", time.Now().UTC(), "", false))
	suite.Require().NoError(suite.repository.Update(ctx, moved))

	orders, err := suite.repository.GetAllInStatus(ctx, "PENDING")
	suite.Require().NoError(err)
	suite.Len(orders, 2)
	for _, o := range orders {
		suite.Equal("PENDING", o.Status().Code())
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdvanceAllInStatus_MovesMatchingOrders() {
	ctx := context.Background()

	pendingOne := suite.createTestOrder()
	pendingTwo := suite.createTestOrder()
	moved := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, pendingOne))
	suite.Require().NoError(suite.repository.Add(ctx, pendingTwo))
	suite.Require().NoError(suite.repository.Add(ctx, moved))

	suite.Require().NoError(moved.ChangeStatus(suite.processing, "operator", time.Now().UTC(), "", false))
	suite.Require().NoError(suite.repository.Update(ctx, moved))

	count, err := suite.repository.AdvanceAllInStatus(ctx, "PENDING", "PROCESSING")
	suite.Require().NoError(err)
	suite.Equal(int64(2), count)

	remaining, err := suite.repository.GetAllInStatus(ctx, "PENDING")
	suite.Require().NoError(err)
	suite.Empty(remaining)

	// The sweep leaves versions and history untouched.
	retrieved, err := suite.repository.Get(ctx, pendingOne.ID())
	suite.Require().NoError(err)
	suite.Equal("PROCESSING", retrieved.Status().Code())
	suite.Equal(int64(1), retrieved.Version())
	suite.Len(retrieved.History(), 1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdvanceAllInStatus_NoMatches_ReturnsZero() {
	ctx := context.Background()

	count, err := suite.repository.AdvanceAllInStatus(ctx, "PENDING", "PROCESSING")
	suite.Require().NoError(err)
	suite.Equal(int64(0), count)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdvanceAllInStatus_OvertakenByStaleOperatorWrite() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// Operator loads the order before the sweep runs.
	stale, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	count, err := suite.repository.AdvanceAllInStatus(ctx, "PENDING", "PROCESSING")
	suite.Require().NoError(err)
	suite.Equal(int64(1), count)

	// The sweep did not bump the version, so the stale write still matches
	// and silently wins. Last write takes the row.
	suite.Require().NoError(stale.ChangeStatus(suite.cancelled, "operator", time.Now().UTC(), "changed mind", false))
	suite.Require().NoError(suite.repository.Update(ctx, stale))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal("CANCELLED", retrieved.Status().Code())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_RemovedLine_PrunedFromDatabase() {
	ctx := context.Background()

	widget := suite.createTestItem("WIDGET", "Widget", 2, "19.99")
	gadget := suite.createTestItem("GADGET", "Gadget", 1, "5.00")
	testOrder := suite.createTestOrderWithItems(widget, gadget)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.RemoveItem(gadget.ID()))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().Len(retrieved.Items(), 1)
	suite.Equal("WIDGET", retrieved.Items()[0].ProductCode())

	var lineCount int64
	suite.Require().NoError(suite.db.Model(&orderrepo.ItemDTO{}).Count(&lineCount).Error)
	suite.Equal(int64(1), lineCount)
}

func (suite *OrderRepositoryIntegrationTestSuite) createStatus(
	code string, displayOrder int, flags status.Flags,
) *status.Status {
	s, err := status.NewStatus(code, code, "", displayOrder, flags)
	suite.Require().NoError(err)
	return s
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestItem(
	code string, name string, quantity int, unitPrice string,
) *order.Item {
	qty, err := kernel.NewQuantity(quantity)
	suite.Require().NoError(err)
	price, err := kernel.NewMoneyFromString(unitPrice, kernel.DefaultCurrency)
	suite.Require().NoError(err)
	item, err := order.NewItem(kernel.NewUUID(), code, name, qty, price)
	suite.Require().NoError(err)
	return item
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	return suite.createTestOrderWithNumber(kernel.GenerateOrderNumber(time.Now().UTC()))
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrderWithNumber(
	number kernel.OrderNumber,
) *order.Order {
	email, err := kernel.NewEmail("jane@example.com")
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(order.NewOrderParams{
		ID:            kernel.NewUUID(),
		OrderNumber:   number,
		CustomerName:  "Jane Doe",
		CustomerEmail: email,
		CustomerClass: order.CustomerClassRetail,
		Currency:      kernel.DefaultCurrency,
		InitialStatus: suite.pending,
		Items:         []*order.Item{suite.createTestItem("WIDGET", "Widget", 2, "19.99")},
		CreatedAt:     time.Now().UTC(),
	})
	suite.Require().NoError(err)
	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrderWithItems(items ...*order.Item) *order.Order {
	email, err := kernel.NewEmail("jane@example.com")
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(order.NewOrderParams{
		ID:            kernel.NewUUID(),
		OrderNumber:   kernel.GenerateOrderNumber(time.Now().UTC()),
		CustomerName:  "Jane Doe",
		CustomerEmail: email,
		CustomerClass: order.CustomerClassRetail,
		Currency:      kernel.DefaultCurrency,
		InitialStatus: suite.pending,
		Items:         items,
		CreatedAt:     time.Now().UTC(),
	})
	suite.Require().NoError(err)
	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
