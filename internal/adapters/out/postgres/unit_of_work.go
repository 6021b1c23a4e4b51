// Package postgres provides the GORM-based implementation of the Unit of Work
// pattern. A unit of work spans one business operation: repositories obtained
// from it share the same transaction, so an order update, its payment check
// and its history append either all land or none do.
//
// Basic usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//
//	if err := uow.OrderRepository().Update(ctx, order); err != nil {
//	    uow.Rollback(ctx)
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each business operation gets a fresh instance; instances are not safe for
// concurrent use. Keep transactions short: the workflow tables are hot.
package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/sparrow-trajon/order-processing-system/internal/adapters/out/postgres/orderrepo"
	"github.com/sparrow-trajon/order-processing-system/internal/adapters/out/postgres/paymentrepo"
	"github.com/sparrow-trajon/order-processing-system/internal/adapters/out/postgres/pgerrors"
	"github.com/sparrow-trajon/order-processing-system/internal/adapters/out/postgres/settingsrepo"
	"github.com/sparrow-trajon/order-processing-system/internal/adapters/out/postgres/statusrepo"
	"github.com/sparrow-trajon/order-processing-system/internal/adapters/out/postgres/transitionrepo"
	"github.com/sparrow-trajon/order-processing-system/internal/core/ports"
)

// GormUnitOfWorkFactory creates UnitOfWork instances over a shared GORM
// connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork ready for one business transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates a database transaction across the workflow
// repositories. Repositories obtained before Begin run against the pool;
// after Begin they run inside the transaction.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin initiates a new database transaction. Calling Begin again on an
// instance with an open transaction is a no-op rather than a nested
// transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return pgerrors.Classify("transaction begin", tx.Error)
	}

	uow.tx = tx
	return nil
}

// Commit finalizes all changes made within the current transaction. After
// commit the transaction is closed and the instance must not be reused.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return pgerrors.Classify("transaction commit", err)
	}
	return nil
}

// Rollback discards all changes made within the current transaction.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// OrderRepository returns the order repository bound to the current
// transaction. The status repository it needs for restoring aggregates is
// bound to the same connection.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	db := uow.conn()
	return orderrepo.NewGormOrderRepository(db, statusrepo.NewGormStatusRepository(db))
}

// StatusRepository returns the status catalog repository bound to the current
// transaction.
func (uow *GormUnitOfWork) StatusRepository() ports.StatusRepository {
	return statusrepo.NewGormStatusRepository(uow.conn())
}

// TransitionRepository returns the transition catalog repository bound to the
// current transaction.
func (uow *GormUnitOfWork) TransitionRepository() ports.TransitionRepository {
	return transitionrepo.NewGormTransitionRepository(uow.conn())
}

// PaymentRepository returns the payment repository bound to the current
// transaction.
func (uow *GormUnitOfWork) PaymentRepository() ports.PaymentRepository {
	return paymentrepo.NewGormPaymentRepository(uow.conn())
}

// SettingsRepository returns the runtime settings repository bound to the
// current transaction.
func (uow *GormUnitOfWork) SettingsRepository() ports.SettingsRepository {
	return settingsrepo.NewGormSettingsRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
