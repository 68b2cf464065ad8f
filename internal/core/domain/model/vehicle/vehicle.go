// Package vehicle models the fleet units that execute pickup and delivery
// routes. A vehicle belongs to one warehouse and spends a daily budget of
// route-seconds; the budget is decremented as jobs are assigned and reset
// by the new-day trigger.
package vehicle

import (
	"errors"
	"fmt"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/errs"
)

// ErrVehicleIsNotConstructed is returned when a Vehicle instance was not
// created through the NewVehicle or RestoreVehicle factory methods.
var ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle constructor")

// DailyCapacitySeconds is the route-second budget a vehicle starts each day with.
const DailyCapacitySeconds = 8 * 60 * 60

// Kind distinguishes the two fleet types. Pickup vehicles collect parcels
// from customers, delivery vehicles bring them to customers; orders are only
// batched onto vehicles of the matching kind.
type Kind int

const (
	// KindUnknown represents an invalid or undefined kind.
	KindUnknown Kind = iota

	// KindPickup marks vehicles running customer pickup routes.
	KindPickup

	// KindDelivery marks vehicles running customer delivery routes.
	KindDelivery
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindPickup:
		return "PICKUP"
	case KindDelivery:
		return "DELIVERY"
	default:
		return "Unknown"
	}
}

// Validate checks if the Kind value is valid.
func (k Kind) Validate() error {
	if k != KindPickup && k != KindDelivery {
		return errs.NewValueIsInvalidErrorWithCause("kind is invalid",
			fmt.Errorf("%d is not a valid vehicle kind", k))
	}
	return nil
}

// Vehicle is one fleet unit with its remaining daily route-second capacity.
//
// Capacity is decremented by the job batching transaction and is trusted to
// stay non-negative because the route optimizer enforces the capacity
// constraint; it is not re-validated here.
type Vehicle struct {
	id              kernel.UUID
	warehouseID     kernel.UUID
	kind            Kind
	capacitySeconds int

	isConstructed bool
}

// NewVehicle creates a vehicle with a full daily capacity budget.
func NewVehicle(id, warehouseID kernel.UUID, kind Kind) (*Vehicle, error) {
	return RestoreVehicle(id, warehouseID, kind, DailyCapacitySeconds)
}

// RestoreVehicle reconstructs a vehicle from persistence.
func RestoreVehicle(id, warehouseID kernel.UUID, kind Kind, capacitySeconds int) (*Vehicle, error) {
	v := &Vehicle{isConstructed: true}

	if err := errors.Join(
		v.setID(id),
		v.setWarehouseID(warehouseID),
		v.setKind(kind),
	); err != nil {
		return nil, err
	}

	v.capacitySeconds = capacitySeconds
	return v, nil
}

// Validate ensures the Vehicle was created through a constructor.
func (v *Vehicle) Validate() error {
	if v == nil || !v.isConstructed {
		return ErrVehicleIsNotConstructed
	}
	return nil
}

// ID returns the vehicle's unique identifier.
func (v *Vehicle) ID() kernel.UUID {
	return v.id
}

// WarehouseID returns the warehouse the vehicle is based at.
func (v *Vehicle) WarehouseID() kernel.UUID {
	return v.warehouseID
}

// Kind returns the fleet type.
func (v *Vehicle) Kind() Kind {
	return v.kind
}

// CapacitySeconds returns the remaining route-second budget for the day.
func (v *Vehicle) CapacitySeconds() int {
	return v.capacitySeconds
}

// HasCapacityAbove reports whether the remaining budget exceeds floor.
func (v *Vehicle) HasCapacityAbove(floor int) bool {
	return v.capacitySeconds > floor
}

// ConsumeCapacity subtracts an assigned job's duration from the daily budget.
func (v *Vehicle) ConsumeCapacity(seconds int) error {
	if err := v.Validate(); err != nil {
		return err
	}
	if seconds < 0 {
		return errs.NewValueIsInvalidErrorWithCause("seconds",
			fmt.Errorf("%d is negative", seconds))
	}

	v.capacitySeconds -= seconds
	return nil
}

// ResetCapacity restores the full daily budget. Invoked by the new-day trigger.
func (v *Vehicle) ResetCapacity() error {
	if err := v.Validate(); err != nil {
		return err
	}

	v.capacitySeconds = DailyCapacitySeconds
	return nil
}

func (v *Vehicle) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	v.id = id
	return nil
}

func (v *Vehicle) setWarehouseID(warehouseID kernel.UUID) error {
	if err := warehouseID.Validate(); err != nil {
		return err
	}
	v.warehouseID = warehouseID
	return nil
}

func (v *Vehicle) setKind(kind Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	v.kind = kind
	return nil
}
