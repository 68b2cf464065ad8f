package vehiclerepo

import (
	"context"
	"errors"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/vehicle"
	"parcelflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormVehicleRepository implements VehicleRepository using GORM.
type GormVehicleRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormVehicleRepository creates a new GORM vehicle repository.
func NewGormVehicleRepository(db *gorm.DB, tracker aggregateTracker) *GormVehicleRepository {
	return &GormVehicleRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new vehicle to the database.
func (r *GormVehicleRepository) Add(ctx context.Context, aggregate *vehicle.Vehicle) error {
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

// Update saves an existing vehicle to the database.
func (r *GormVehicleRepository) Update(ctx context.Context, aggregate *vehicle.Vehicle) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&VehicleDTO{}).
		Where("id = ?", dto.ID).
		Select("warehouse_id", "kind", "capacity_seconds").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("vehicle", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a vehicle by ID.
func (r *GormVehicleRepository) Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto VehicleDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("vehicle", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByWarehouseAndKind retrieves the warehouse's vehicles of one kind whose
// remaining capacity is strictly above the floor.
func (r *GormVehicleRepository) GetByWarehouseAndKind(
	ctx context.Context,
	warehouseID kernel.UUID,
	kind vehicle.Kind,
	capacityFloor int,
) ([]*vehicle.Vehicle, error) {
	if err := errors.Join(warehouseID.Validate(), kind.Validate()); err != nil {
		return nil, err
	}

	var dtos []VehicleDTO
	err := r.db.WithContext(ctx).
		Where("warehouse_id = ? AND kind = ? AND capacity_seconds > ?",
			warehouseID.Bytes(), int(kind), capacityFloor).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetAll retrieves every registered vehicle.
func (r *GormVehicleRepository) GetAll(ctx context.Context) ([]*vehicle.Vehicle, error) {
	var dtos []VehicleDTO
	if err := r.db.WithContext(ctx).Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

func toDomainAll(dtos []VehicleDTO) ([]*vehicle.Vehicle, error) {
	vehicles := make([]*vehicle.Vehicle, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, aggregate)
	}

	return vehicles, nil
}
