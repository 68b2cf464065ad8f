// Package postgres implements the persistence ports on PostgreSQL via GORM.
//
// The package exposes a Unit of Work that owns the transaction boundary for
// one business operation. Handlers obtain repositories from the unit of work
// so every read and write of the operation runs inside the same transaction.
// The unit of work also tracks aggregates modified during the transaction,
// which keeps post-commit processing (event publishing, progress tracking)
// decoupled from the repositories themselves.
package postgres

import (
	"context"

	"parcelflow/internal/adapters/out/postgres/buyerrepo"
	"parcelflow/internal/adapters/out/postgres/jobrepo"
	"parcelflow/internal/adapters/out/postgres/orderrepo"
	"parcelflow/internal/adapters/out/postgres/parcelrepo"
	"parcelflow/internal/adapters/out/postgres/vehiclerepo"
	"parcelflow/internal/adapters/out/postgres/warehouserepo"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate pairs an aggregate with its identifier for post-commit
// processing.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates unit of work instances sharing one database
// connection pool. Each Create call returns an independent unit of work, so
// concurrent operations never share transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory bound to the given database.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new unit of work ready for one business transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork implements ports.UnitOfWork on a GORM transaction. The
// repositories it hands out run against the active transaction while one is
// open, or against the main connection otherwise.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts a database transaction. Calling Begin while a transaction is
// already open is a no-op; nested transactions are never created.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes the current transaction. Returns
// gorm.ErrInvalidTransaction when no transaction is open.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the current transaction. Returns
// gorm.ErrInvalidTransaction when no transaction is open.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// ParcelEventRepository returns the event stream repository bound to the
// current transaction.
func (uow *GormUnitOfWork) ParcelEventRepository() ports.ParcelEventRepository {
	return parcelrepo.NewGormParcelEventRepository(uow.conn())
}

// WarehouseRepository returns the warehouse repository bound to the current
// transaction.
func (uow *GormUnitOfWork) WarehouseRepository() ports.WarehouseRepository {
	return warehouserepo.NewGormWarehouseRepository(uow.conn(), uow)
}

// VehicleRepository returns the vehicle repository bound to the current
// transaction.
func (uow *GormUnitOfWork) VehicleRepository() ports.VehicleRepository {
	return vehiclerepo.NewGormVehicleRepository(uow.conn(), uow)
}

// OrderRepository returns the order repository bound to the current
// transaction.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// JobRepository returns the job repository bound to the current transaction.
func (uow *GormUnitOfWork) JobRepository() ports.JobRepository {
	return jobrepo.NewGormJobRepository(uow.conn(), uow)
}

// BuyerRepository returns the buyer repository bound to the current
// transaction.
func (uow *GormUnitOfWork) BuyerRepository() ports.BuyerRepository {
	return buyerrepo.NewGormBuyerRepository(uow.conn(), uow)
}

// TrackAggregate registers an aggregate as modified within this unit of work.
// Repository implementations call it on Add and Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// GetTrackedAggregates returns every aggregate modified during the unit of
// work, in modification order.
func (uow *GormUnitOfWork) GetTrackedAggregates() []trackedAggregate {
	return uow.trackedAggregates
}
