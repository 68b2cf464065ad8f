package warehouserepo

import (
	"context"
	"errors"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/warehouse"
	"parcelflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormWarehouseRepository implements WarehouseRepository using GORM.
type GormWarehouseRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormWarehouseRepository creates a new GORM warehouse repository.
func NewGormWarehouseRepository(db *gorm.DB, tracker aggregateTracker) *GormWarehouseRepository {
	return &GormWarehouseRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new warehouse to the database.
func (r *GormWarehouseRepository) Add(ctx context.Context, aggregate *warehouse.Warehouse) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a warehouse by ID.
func (r *GormWarehouseRepository) Get(ctx context.Context, id kernel.UUID) (*warehouse.Warehouse, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto WarehouseDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("warehouse", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves every registered warehouse.
func (r *GormWarehouseRepository) GetAll(ctx context.Context) ([]*warehouse.Warehouse, error) {
	var dtos []WarehouseDTO
	if err := r.db.WithContext(ctx).Find(&dtos).Error; err != nil {
		return nil, err
	}

	warehouses := make([]*warehouse.Warehouse, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		warehouses = append(warehouses, aggregate)
	}

	return warehouses, nil
}
