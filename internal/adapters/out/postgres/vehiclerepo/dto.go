// Package vehiclerepo persists vehicle aggregates and their remaining daily
// capacity.
package vehiclerepo

import (
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/vehicle"

	"github.com/google/uuid"
)

// VehicleDTO represents the database structure for vehicle aggregates.
// Indexed by warehouse and kind because batching always selects a single
// warehouse's fleet of one kind.
type VehicleDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	WarehouseID     uuid.UUID `gorm:"type:uuid;index:idx_vehicles_warehouse_kind"`
	Kind            int       `gorm:"index:idx_vehicles_warehouse_kind"`
	CapacitySeconds int
}

// TableName overrides GORM's default naming convention.
func (VehicleDTO) TableName() string {
	return "vehicles"
}

func fromDomain(aggregate *vehicle.Vehicle) VehicleDTO {
	return VehicleDTO{
		ID:              aggregate.ID().Bytes(),
		WarehouseID:     aggregate.WarehouseID().Bytes(),
		Kind:            int(aggregate.Kind()),
		CapacitySeconds: aggregate.CapacitySeconds(),
	}
}

func toDomain(dto VehicleDTO) (*vehicle.Vehicle, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	warehouseID, err := kernel.UUIDFromBytes(dto.WarehouseID[:])
	if err != nil {
		return nil, err
	}

	return vehicle.RestoreVehicle(id, warehouseID, vehicle.Kind(dto.Kind), dto.CapacitySeconds)
}
