// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ParcelEventRepoFactory provides access to the parcel event store within a transaction.
	ParcelEventRepoFactory interface {
		ParcelEventRepository() ports.ParcelEventRepository
	}

	// WarehouseRepoFactory provides access to the warehouse repository within a transaction.
	WarehouseRepoFactory interface {
		WarehouseRepository() ports.WarehouseRepository
	}

	// VehicleRepoFactory provides access to the vehicle repository within a transaction.
	VehicleRepoFactory interface {
		VehicleRepository() ports.VehicleRepository
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// JobRepoFactory provides access to the job repository within a transaction.
	JobRepoFactory interface {
		JobRepository() ports.JobRepository
	}

	// BuyerRepoFactory provides access to the buyer repository within a transaction.
	BuyerRepoFactory interface {
		BuyerRepository() ports.BuyerRepository
	}

	// ParcelUoW manages transactions for parcel registration: the event
	// stream, the warehouse catalog, pending orders and buyer accounts.
	ParcelUoW interface {
		TxManager
		ParcelEventRepoFactory
		WarehouseRepoFactory
		OrderRepoFactory
		BuyerRepoFactory
	}

	// ParcelUoWFactory creates new parcel unit of work instances.
	ParcelUoWFactory interface {
		Create() ParcelUoW
	}

	// RoutingUoW manages transactions for event recording and arrival
	// routing: the event stream plus the orders and transfer jobs an
	// arrival may spawn.
	RoutingUoW interface {
		TxManager
		ParcelEventRepoFactory
		WarehouseRepoFactory
		OrderRepoFactory
		JobRepoFactory
	}

	// RoutingUoWFactory creates new routing unit of work instances.
	RoutingUoWFactory interface {
		Create() RoutingUoW
	}

	// BatchingUoW manages transactions for job batching: consuming orders,
	// decrementing vehicle capacity and inserting the produced jobs.
	BatchingUoW interface {
		TxManager
		OrderRepoFactory
		VehicleRepoFactory
		JobRepoFactory
		WarehouseRepoFactory
	}

	// BatchingUoWFactory creates new batching unit of work instances.
	BatchingUoWFactory interface {
		Create() BatchingUoW
	}

	// ProgressUoW manages transactions for the progress generator's job
	// updates.
	ProgressUoW interface {
		TxManager
		JobRepoFactory
		WarehouseRepoFactory
	}

	// ProgressUoWFactory creates new progress unit of work instances.
	ProgressUoWFactory interface {
		Create() ProgressUoW
	}

	// VehicleUoW manages transactions for vehicle-only operations.
	VehicleUoW interface {
		TxManager
		VehicleRepoFactory
	}

	// VehicleUoWFactory creates new vehicle unit of work instances.
	VehicleUoWFactory interface {
		Create() VehicleUoW
	}
)

// ParcelEventRecorder validates, persists and publishes one parcel lifecycle
// event. The progress generator uses it to emit the events its sweep
// produces through the same path as externally reported events.
type ParcelEventRecorder interface {
	Record(ctx context.Context, event parcel.Event) error
}
