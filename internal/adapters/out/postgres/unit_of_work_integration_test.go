package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sparrow-trajon/order-processing-system/internal/adapters/out/postgres"
	"github.com/sparrow-trajon/order-processing-system/internal/adapters/out/postgres/orderrepo"
	"github.com/sparrow-trajon/order-processing-system/internal/adapters/out/postgres/paymentrepo"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/kernel"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/order"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/payment"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/status"
)

// UnitOfWorkIntegrationTestSuite verifies that repositories obtained from one
// unit of work share a transaction: all writes land on commit, none on
// rollback.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory

	pending *status.Status
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
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

	suite.Require().NoError(postgres.Migrate(db))

	pending, err := status.NewStatus("PENDING", "Pending", "", 1,
		status.Flags{IsCancellable: true, IsModifiable: true})
	suite.Require().NoError(err)
	suite.pending = pending

	uow := postgres.NewGormUnitOfWorkFactory(db).Create()
	suite.Require().NoError(uow.StatusRepository().Add(ctx, pending))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(
		suite.db.Exec("TRUNCATE TABLE orders, order_items, order_status_history, payments CASCADE").Error)
	suite.factory = postgres.NewGormUnitOfWorkFactory(suite.db)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsAcrossRepositories() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	testPayment := suite.createTestPayment(testOrder.ID())

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.PaymentRepository().Add(ctx, testPayment))
	suite.Require().NoError(uow.Commit(ctx))

	suite.assertCount(&orderrepo.OrderDTO{}, 1)
	suite.assertCount(&paymentrepo.PaymentDTO{}, 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsAllWrites() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	testPayment := suite.createTestPayment(testOrder.ID())

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.PaymentRepository().Add(ctx, testPayment))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.assertCount(&orderrepo.OrderDTO{}, 0)
	suite.assertCount(&paymentrepo.PaymentDTO{}, 0)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestBegin_Twice_IsIdempotent() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.OrderRepository().Add(ctx, suite.createTestOrder()))
	suite.Require().NoError(uow.Commit(ctx))

	suite.assertCount(&orderrepo.OrderDTO{}, 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutBegin_ReturnsError() {
	uow := suite.factory.Create()
	suite.ErrorIs(uow.Commit(context.Background()), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_WithoutBegin_ReturnsError() {
	uow := suite.factory.Create()
	suite.ErrorIs(uow.Rollback(context.Background()), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRepositories_WithoutBegin_RunAgainstPool() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, suite.createTestOrder()))

	suite.assertCount(&orderrepo.OrderDTO{}, 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestOrder() *order.Order {
	email, err := kernel.NewEmail("jane@example.com")
	suite.Require().NoError(err)
	qty, err := kernel.NewQuantity(1)
	suite.Require().NoError(err)
	price, err := kernel.NewMoneyFromString("19.99", kernel.DefaultCurrency)
	suite.Require().NoError(err)
	item, err := order.NewItem(kernel.NewUUID(), "WIDGET", "Widget", qty, price)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(order.NewOrderParams{
		ID:            kernel.NewUUID(),
		OrderNumber:   kernel.GenerateOrderNumber(time.Now().UTC()),
		CustomerName:  "Jane Doe",
		CustomerEmail: email,
		CustomerClass: order.CustomerClassRetail,
		Currency:      kernel.DefaultCurrency,
		InitialStatus: suite.pending,
		Items:         []*order.Item{item},
		CreatedAt:     time.Now().UTC(),
	})
	suite.Require().NoError(err)
	return testOrder
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestPayment(orderID kernel.UUID) *payment.Payment {
	amount, err := kernel.NewMoneyFromString("19.99", kernel.DefaultCurrency)
	suite.Require().NoError(err)

	p, err := payment.NewPayment(
		kernel.NewUUID(), orderID, amount,
		payment.MethodCreditCard, payment.StatusCaptured,
		"txn-123", time.Now().UTC(),
	)
	suite.Require().NoError(err)
	return p
}

func (suite *UnitOfWorkIntegrationTestSuite) assertCount(model any, expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(model).Count(&count).Error)
	suite.Equal(expected, count)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
