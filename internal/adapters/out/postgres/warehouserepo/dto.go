// Package warehouserepo persists warehouse reference data.
package warehouserepo

import (
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/warehouse"

	"github.com/google/uuid"
)

// WarehouseDTO represents the database structure for warehouse aggregates.
type WarehouseDTO struct {
	ID             uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Location       LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
	CityCodename   string      `gorm:"index"`
	ServiceRangeKm float64
	Status         int
}

// TableName overrides GORM's default naming convention.
func (WarehouseDTO) TableName() string {
	return "warehouses"
}

// LocationDTO stores geographic coordinates embedded in the owning row.
type LocationDTO struct {
	Latitude  float64 `gorm:"type:double precision"`
	Longitude float64 `gorm:"type:double precision"`
}

func fromDomain(aggregate *warehouse.Warehouse) WarehouseDTO {
	return WarehouseDTO{
		ID: aggregate.ID().Bytes(),
		Location: LocationDTO{
			Latitude:  aggregate.Location().Latitude(),
			Longitude: aggregate.Location().Longitude(),
		},
		CityCodename:   aggregate.CityCodename(),
		ServiceRangeKm: aggregate.ServiceRangeKm(),
		Status:         int(aggregate.Status()),
	}
}

func toDomain(dto WarehouseDTO) (*warehouse.Warehouse, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewLocation(dto.Location.Latitude, dto.Location.Longitude)
	if err != nil {
		return nil, err
	}

	return warehouse.RestoreWarehouse(id, location, dto.CityCodename,
		dto.ServiceRangeKm, warehouse.Status(dto.Status))
}
