// Package order models the ephemeral pickup/delivery orders that feed job
// batching. An order is created when a parcel needs its next hop scheduled
// and deleted once it is folded into a vehicle job.
package order

import (
	"errors"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/vehicle"
	"parcelflow/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder or RestoreOrder factory methods.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Order is one pending stop waiting to be batched into a vehicle route:
// either a customer pickup toward a warehouse or a delivery from one.
// The warehouse location is denormalized onto the order so the route
// optimizer input does not need a warehouse lookup per order.
type Order struct {
	id                kernel.UUID
	parcelID          kernel.UUID
	warehouseID       kernel.UUID
	kind              vehicle.Kind
	date              time.Time
	location          kernel.Location
	warehouseLocation kernel.Location

	isConstructed bool
}

// NewOrder creates a pending order for a parcel's next hop.
//
// Parameters:
//   - id: unique identifier
//   - parcelID: the parcel this stop serves
//   - warehouseID: the warehouse the route departs from (delivery) or ends at (pickup)
//   - kind: pickup or delivery, matched against vehicle kind at batching time
//   - date: the calendar day the stop is scheduled for
//   - location: the customer's pickup or delivery point
//   - warehouseLocation: denormalized warehouse position
func NewOrder(
	id, parcelID, warehouseID kernel.UUID,
	kind vehicle.Kind,
	date time.Time,
	location, warehouseLocation kernel.Location,
) (*Order, error) {
	return RestoreOrder(id, parcelID, warehouseID, kind, date, location, warehouseLocation)
}

// RestoreOrder reconstructs an order from persistence.
func RestoreOrder(
	id, parcelID, warehouseID kernel.UUID,
	kind vehicle.Kind,
	date time.Time,
	location, warehouseLocation kernel.Location,
) (*Order, error) {
	o := &Order{isConstructed: true, date: date}

	if err := errors.Join(
		o.setID(id),
		o.setParcelID(parcelID),
		o.setWarehouseID(warehouseID),
		o.setKind(kind),
		o.setLocations(location, warehouseLocation),
	); err != nil {
		return nil, err
	}

	if date.IsZero() {
		return nil, errs.NewValueIsRequiredError("date")
	}

	return o, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// ParcelID returns the parcel this order serves.
func (o *Order) ParcelID() kernel.UUID {
	return o.parcelID
}

// WarehouseID returns the warehouse anchoring the route.
func (o *Order) WarehouseID() kernel.UUID {
	return o.warehouseID
}

// Kind returns whether this is a pickup or delivery stop.
func (o *Order) Kind() vehicle.Kind {
	return o.kind
}

// Date returns the calendar day the stop is scheduled for.
func (o *Order) Date() time.Time {
	return o.date
}

// Location returns the customer stop position.
func (o *Order) Location() kernel.Location {
	return o.location
}

// WarehouseLocation returns the denormalized warehouse position.
func (o *Order) WarehouseLocation() kernel.Location {
	return o.warehouseLocation
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}
	o.parcelID = parcelID
	return nil
}

func (o *Order) setWarehouseID(warehouseID kernel.UUID) error {
	if err := warehouseID.Validate(); err != nil {
		return err
	}
	o.warehouseID = warehouseID
	return nil
}

func (o *Order) setKind(kind vehicle.Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	o.kind = kind
	return nil
}

func (o *Order) setLocations(location, warehouseLocation kernel.Location) error {
	if err := errors.Join(location.Validate(), warehouseLocation.Validate()); err != nil {
		return err
	}
	o.location = location
	o.warehouseLocation = warehouseLocation
	return nil
}
