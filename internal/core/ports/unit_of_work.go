package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and repositories bound to the transaction.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository instance bound to the current transaction.
	// Repository will use the transaction started by Begin().
	OrderRepository() OrderRepository

	// StatusRepository returns a StatusRepository instance bound to the current transaction.
	StatusRepository() StatusRepository

	// TransitionRepository returns a TransitionRepository instance bound to the current transaction.
	TransitionRepository() TransitionRepository

	// PaymentRepository returns a PaymentRepository instance bound to the current transaction.
	PaymentRepository() PaymentRepository

	// SettingsRepository returns a SettingsRepository instance bound to the current transaction.
	SettingsRepository() SettingsRepository
}
