package ports

import (
	"context"
	"time"

	"parcelflow/internal/core/domain/model/buyer"
	"parcelflow/internal/core/domain/model/job"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/order"
	"parcelflow/internal/core/domain/model/vehicle"
	"parcelflow/internal/core/domain/model/warehouse"
)

// WarehouseRepository defines the persistence contract for warehouses.
type WarehouseRepository interface {
	// Add persists a new warehouse.
	Add(ctx context.Context, aggregate *warehouse.Warehouse) error

	// Get retrieves a warehouse by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*warehouse.Warehouse, error)

	// GetAll retrieves every registered warehouse.
	GetAll(ctx context.Context) ([]*warehouse.Warehouse, error)
}

// VehicleRepository defines the persistence contract for vehicles.
type VehicleRepository interface {
	// Add persists a new vehicle.
	Add(ctx context.Context, aggregate *vehicle.Vehicle) error

	// Update persists changes to an existing vehicle.
	Update(ctx context.Context, aggregate *vehicle.Vehicle) error

	// Get retrieves a vehicle by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error)

	// GetByWarehouseAndKind retrieves the warehouse's vehicles of one kind
	// whose remaining capacity is strictly above the floor.
	GetByWarehouseAndKind(ctx context.Context, warehouseID kernel.UUID, kind vehicle.Kind, capacityFloor int) ([]*vehicle.Vehicle, error)

	// GetAll retrieves every registered vehicle.
	GetAll(ctx context.Context) ([]*vehicle.Vehicle, error)
}

// OrderRepository defines the persistence contract for pending pickup and
// delivery orders. Orders are deleted once consumed by job batching.
type OrderRepository interface {
	// Add persists a new order.
	Add(ctx context.Context, aggregate *order.Order) error

	// GetPage retrieves up to limit orders for one warehouse, day and kind.
	GetPage(ctx context.Context, warehouseID kernel.UUID, date time.Time, kind vehicle.Kind, limit int) ([]*order.Order, error)

	// Remove deletes orders by their identifiers.
	Remove(ctx context.Context, ids []kernel.UUID) error

	// RemoveByParcel deletes all pending orders of a parcel. Used by saga
	// compensation.
	RemoveByParcel(ctx context.Context, parcelID kernel.UUID) error
}

// JobRepository defines the persistence contract for vehicle jobs and
// warehouse transfer jobs.
type JobRepository interface {
	// AddJobs persists a batch of new vehicle jobs.
	AddJobs(ctx context.Context, jobs []*job.Job) error

	// UpdateJob persists progress changes to an existing job.
	UpdateJob(ctx context.Context, aggregate *job.Job) error

	// GetJob retrieves a job by its unique identifier.
	GetJob(ctx context.Context, id kernel.UUID) (*job.Job, error)

	// GetActiveJobsByVehicle retrieves a vehicle's pending and in-progress
	// jobs, in-progress first, then by ascending creation order.
	GetActiveJobsByVehicle(ctx context.Context, vehicleID kernel.UUID) ([]*job.Job, error)

	// AddTransferJob persists a new transfer job.
	AddTransferJob(ctx context.Context, aggregate *job.TransferJob) error

	// UpdateTransferJob persists changes to an existing transfer job.
	UpdateTransferJob(ctx context.Context, aggregate *job.TransferJob) error

	// GetTransferJob retrieves a transfer job by its unique identifier.
	GetTransferJob(ctx context.Context, id kernel.UUID) (*job.TransferJob, error)

	// GetPendingTransferJob retrieves the pending transfer job of one
	// warehouse connection and night, if any.
	GetPendingTransferJob(ctx context.Context, connectionKey string, date time.Time) (*job.TransferJob, error)
}

// BuyerRepository defines the persistence contract for buyer accounts.
type BuyerRepository interface {
	// Add persists a new buyer.
	Add(ctx context.Context, aggregate *buyer.Buyer) error

	// Update persists changes to an existing buyer.
	Update(ctx context.Context, aggregate *buyer.Buyer) error

	// Get retrieves a buyer by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*buyer.Buyer, error)
}
