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
// It provides transaction control and tracks aggregate changes.
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

	// ParcelEventRepository returns a ParcelEventRepository bound to the
	// current transaction.
	ParcelEventRepository() ParcelEventRepository

	// WarehouseRepository returns a WarehouseRepository bound to the current
	// transaction.
	WarehouseRepository() WarehouseRepository

	// VehicleRepository returns a VehicleRepository bound to the current
	// transaction.
	VehicleRepository() VehicleRepository

	// OrderRepository returns an OrderRepository bound to the current
	// transaction.
	OrderRepository() OrderRepository

	// JobRepository returns a JobRepository bound to the current transaction.
	JobRepository() JobRepository

	// BuyerRepository returns a BuyerRepository bound to the current
	// transaction.
	BuyerRepository() BuyerRepository
}
