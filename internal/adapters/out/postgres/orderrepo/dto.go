// Package orderrepo persists pending pickup and delivery orders. Orders are
// short-lived rows: batching reads a page, folds it into vehicle jobs and
// deletes the consumed rows in the same transaction.
package orderrepo

import (
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/order"
	"parcelflow/internal/core/domain/model/vehicle"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for order aggregates. Indexed by
// warehouse, kind and date because batching pages over exactly that triple.
type OrderDTO struct {
	ID                uuid.UUID   `gorm:"type:uuid;primaryKey"`
	ParcelID          uuid.UUID   `gorm:"type:uuid;index"`
	WarehouseID       uuid.UUID   `gorm:"type:uuid;index:idx_orders_batch"`
	Kind              int         `gorm:"index:idx_orders_batch"`
	Date              time.Time   `gorm:"index:idx_orders_batch"`
	Location          LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
	WarehouseLocation LocationDTO `gorm:"embedded;embeddedPrefix:warehouse_location_"`
}

// TableName overrides GORM's default naming convention.
func (OrderDTO) TableName() string {
	return "orders"
}

// LocationDTO stores geographic coordinates embedded in the owning row.
type LocationDTO struct {
	Latitude  float64 `gorm:"type:double precision"`
	Longitude float64 `gorm:"type:double precision"`
}

func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:          aggregate.ID().Bytes(),
		ParcelID:    aggregate.ParcelID().Bytes(),
		WarehouseID: aggregate.WarehouseID().Bytes(),
		Kind:        int(aggregate.Kind()),
		Date:        aggregate.Date(),
		Location: LocationDTO{
			Latitude:  aggregate.Location().Latitude(),
			Longitude: aggregate.Location().Longitude(),
		},
		WarehouseLocation: LocationDTO{
			Latitude:  aggregate.WarehouseLocation().Latitude(),
			Longitude: aggregate.WarehouseLocation().Longitude(),
		},
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	parcelID, err := kernel.UUIDFromBytes(dto.ParcelID[:])
	if err != nil {
		return nil, err
	}

	warehouseID, err := kernel.UUIDFromBytes(dto.WarehouseID[:])
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewLocation(dto.Location.Latitude, dto.Location.Longitude)
	if err != nil {
		return nil, err
	}

	warehouseLocation, err := kernel.NewLocation(
		dto.WarehouseLocation.Latitude, dto.WarehouseLocation.Longitude)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, parcelID, warehouseID,
		vehicle.Kind(dto.Kind), dto.Date, location, warehouseLocation)
}
