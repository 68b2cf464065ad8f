// Package parcelrepo persists parcel event streams. Events are stored
// append-only as one row per event, keyed by (parcel_id, seq); the composite
// primary key makes concurrent appends at the same position fail on insert,
// which is the optimistic concurrency control for the whole parcel aggregate.
package parcelrepo

import (
	"encoding/json"
	"fmt"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelEventDTO is one stored parcel event. The event-specific attributes
// live in the JSON payload; the columns carry only what every event shares
// plus what queries filter on.
type ParcelEventDTO struct {
	ParcelID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq        int       `gorm:"primaryKey;autoIncrement:false"`
	Name       string    `gorm:"index"`
	OccurredAt time.Time
	Payload    string `gorm:"type:jsonb"`
}

// TableName overrides GORM's default naming convention.
func (ParcelEventDTO) TableName() string {
	return "parcel_events"
}

type locationPayload struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type registeredPayload struct {
	PickupDate        time.Time       `json:"pickup_date"`
	DeliveryDate      time.Time       `json:"delivery_date"`
	PickupLocation    locationPayload `json:"pickup_location"`
	DeliveryLocation  locationPayload `json:"delivery_location"`
	TransitWarehouses []string        `json:"transit_warehouses"`
}

type vehiclePayload struct {
	Vehicle string `json:"vehicle"`
}

type warehousePayload struct {
	Warehouse string `json:"warehouse"`
}

func toLocationPayload(l kernel.Location) locationPayload {
	return locationPayload{Latitude: l.Latitude(), Longitude: l.Longitude()}
}

func fromLocationPayload(p locationPayload) (kernel.Location, error) {
	return kernel.NewLocation(p.Latitude, p.Longitude)
}

// fromDomain converts a parcel event to its stored representation, placing it
// at the given stream position.
func fromDomain(event parcel.Event, seq int) (ParcelEventDTO, error) {
	var payload any

	switch e := event.(type) {
	case parcel.Registered:
		warehouses := make([]string, 0, len(e.TransitWarehouses))
		for _, id := range e.TransitWarehouses {
			warehouses = append(warehouses, id.String())
		}
		payload = registeredPayload{
			PickupDate:        e.PickupDate,
			DeliveryDate:      e.DeliveryDate,
			PickupLocation:    toLocationPayload(e.PickupLocation),
			DeliveryLocation:  toLocationPayload(e.DeliveryLocation),
			TransitWarehouses: warehouses,
		}
	case parcel.PickedUp:
		payload = vehiclePayload{Vehicle: e.Vehicle.String()}
	case parcel.DeliveredToWarehouse:
		payload = warehousePayload{Warehouse: e.Warehouse.String()}
	case parcel.TransferStarted:
		payload = struct{}{}
	case parcel.TransferCompleted:
		payload = warehousePayload{Warehouse: e.Warehouse.String()}
	case parcel.DeliveryStarted:
		payload = vehiclePayload{Vehicle: e.Vehicle.String()}
	case parcel.Delivered:
		payload = struct{}{}
	default:
		return ParcelEventDTO{}, fmt.Errorf("unsupported parcel event %q", event.Name())
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return ParcelEventDTO{}, err
	}

	return ParcelEventDTO{
		ParcelID:   event.ParcelID().Bytes(),
		Seq:        seq,
		Name:       event.Name(),
		OccurredAt: event.OccurredAt(),
		Payload:    string(raw),
	}, nil
}

// toDomain reconstructs a parcel event from its stored representation.
func toDomain(dto ParcelEventDTO) (parcel.Event, error) {
	parcelID, err := kernel.UUIDFromBytes(dto.ParcelID[:])
	if err != nil {
		return nil, err
	}

	switch dto.Name {
	case parcel.EventNameRegistered:
		var p registeredPayload
		if err := json.Unmarshal([]byte(dto.Payload), &p); err != nil {
			return nil, err
		}

		pickupLocation, err := fromLocationPayload(p.PickupLocation)
		if err != nil {
			return nil, err
		}
		deliveryLocation, err := fromLocationPayload(p.DeliveryLocation)
		if err != nil {
			return nil, err
		}

		warehouses := make([]kernel.UUID, 0, len(p.TransitWarehouses))
		for _, raw := range p.TransitWarehouses {
			id, err := kernel.UUIDFromString(raw)
			if err != nil {
				return nil, err
			}
			warehouses = append(warehouses, id)
		}

		return parcel.Registered{
			Parcel:            parcelID,
			At:                dto.OccurredAt,
			PickupDate:        p.PickupDate,
			DeliveryDate:      p.DeliveryDate,
			PickupLocation:    pickupLocation,
			DeliveryLocation:  deliveryLocation,
			TransitWarehouses: warehouses,
		}, nil

	case parcel.EventNamePickedUp:
		var p vehiclePayload
		if err := json.Unmarshal([]byte(dto.Payload), &p); err != nil {
			return nil, err
		}
		vehicleID, err := kernel.UUIDFromString(p.Vehicle)
		if err != nil {
			return nil, err
		}
		return parcel.PickedUp{Parcel: parcelID, At: dto.OccurredAt, Vehicle: vehicleID}, nil

	case parcel.EventNameDeliveredToWarehouse:
		var p warehousePayload
		if err := json.Unmarshal([]byte(dto.Payload), &p); err != nil {
			return nil, err
		}
		warehouseID, err := kernel.UUIDFromString(p.Warehouse)
		if err != nil {
			return nil, err
		}
		return parcel.DeliveredToWarehouse{Parcel: parcelID, At: dto.OccurredAt, Warehouse: warehouseID}, nil

	case parcel.EventNameTransferStarted:
		return parcel.TransferStarted{Parcel: parcelID, At: dto.OccurredAt}, nil

	case parcel.EventNameTransferCompleted:
		var p warehousePayload
		if err := json.Unmarshal([]byte(dto.Payload), &p); err != nil {
			return nil, err
		}
		warehouseID, err := kernel.UUIDFromString(p.Warehouse)
		if err != nil {
			return nil, err
		}
		return parcel.TransferCompleted{Parcel: parcelID, At: dto.OccurredAt, Warehouse: warehouseID}, nil

	case parcel.EventNameDeliveryStarted:
		var p vehiclePayload
		if err := json.Unmarshal([]byte(dto.Payload), &p); err != nil {
			return nil, err
		}
		vehicleID, err := kernel.UUIDFromString(p.Vehicle)
		if err != nil {
			return nil, err
		}
		return parcel.DeliveryStarted{Parcel: parcelID, At: dto.OccurredAt, Vehicle: vehicleID}, nil

	case parcel.EventNameDelivered:
		return parcel.Delivered{Parcel: parcelID, At: dto.OccurredAt}, nil

	default:
		return nil, fmt.Errorf("unsupported parcel event %q", dto.Name)
	}
}
