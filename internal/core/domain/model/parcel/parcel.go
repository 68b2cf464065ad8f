package parcel

import (
	"errors"
	"fmt"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/errs"
)

var (
	// ErrParcelIsNotConstructed is returned when a Parcel was not produced by replaying events.
	ErrParcelIsNotConstructed = errors.New("Parcel must be derived from its event stream via Replay or Next")

	// ErrInvalidTransition is returned when an event is presented against a
	// parcel status that does not accept it. The event must be rejected and
	// the stream left unchanged.
	ErrInvalidTransition = errors.New("event is not valid for the current parcel status")
)

// Parcel is the projection of one parcel's event stream. It is never mutated
// directly: Next applies a validated event, and Replay rebuilds the projection
// from the full stream. Replaying the same stream always yields the same
// projection.
//
// The transit warehouse path (one or two hops) is fixed by the Registered
// event and immutable afterwards.
type Parcel struct {
	id                kernel.UUID
	pickupDate        time.Time
	deliveryDate      time.Time
	pickupLocation    kernel.Location
	deliveryLocation  kernel.Location
	transitWarehouses []kernel.UUID
	status            Status
	currentWarehouse  *kernel.UUID
	currentVehicle    *kernel.UUID
	version           int

	isConstructed bool
}

// Validate ensures the Parcel was produced by the projector.
func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	return nil
}

// ID returns the parcel's unique identifier.
func (p *Parcel) ID() kernel.UUID {
	return p.id
}

// PickupDate returns the scheduled pickup date.
func (p *Parcel) PickupDate() time.Time {
	return p.pickupDate
}

// DeliveryDate returns the scheduled delivery date.
func (p *Parcel) DeliveryDate() time.Time {
	return p.deliveryDate
}

// PickupLocation returns the customer pickup point.
func (p *Parcel) PickupLocation() kernel.Location {
	return p.pickupLocation
}

// DeliveryLocation returns the customer delivery point.
func (p *Parcel) DeliveryLocation() kernel.Location {
	return p.deliveryLocation
}

// TransitWarehouses returns a copy of the ordered transit warehouse path.
func (p *Parcel) TransitWarehouses() []kernel.UUID {
	path := make([]kernel.UUID, len(p.transitWarehouses))
	copy(path, p.transitWarehouses)
	return path
}

// FirstTransitWarehouse returns the warehouse a pickup vehicle delivers to.
func (p *Parcel) FirstTransitWarehouse() kernel.UUID {
	return p.transitWarehouses[0]
}

// FinalTransitWarehouse returns the warehouse delivery vehicles depart from.
func (p *Parcel) FinalTransitWarehouse() kernel.UUID {
	return p.transitWarehouses[len(p.transitWarehouses)-1]
}

// NextTransitWarehouseAfter returns the warehouse following the given one in
// the transit path, for routing a parcel that arrived at an intermediate hop.
func (p *Parcel) NextTransitWarehouseAfter(warehouseID kernel.UUID) (kernel.UUID, error) {
	for i, id := range p.transitWarehouses {
		if id.IsEqual(warehouseID) && i+1 < len(p.transitWarehouses) {
			return p.transitWarehouses[i+1], nil
		}
	}
	return kernel.UUID{}, errs.NewObjectNotFoundError("next transit warehouse", warehouseID.String())
}

// Status returns the parcel's current lifecycle status.
func (p *Parcel) Status() Status {
	return p.status
}

// CurrentWarehouse returns the warehouse currently holding the parcel, or nil.
func (p *Parcel) CurrentWarehouse() *kernel.UUID {
	return p.currentWarehouse
}

// CurrentVehicle returns the vehicle currently carrying the parcel, or nil.
func (p *Parcel) CurrentVehicle() *kernel.UUID {
	return p.currentVehicle
}

// Version returns the number of events applied, which is also the sequence
// number the next event must be appended at.
func (p *Parcel) Version() int {
	return p.version
}

// Next validates ev against the current projection and returns the advanced
// projection. A nil current projection means "no parcel yet", which only a
// Registered event may act upon. On any validation failure the projection is
// untouched and the event must not be appended to the stream.
//
// The type switch is exhaustive over the closed Event union, so each lifecycle
// variant is handled exactly once.
func Next(current *Parcel, ev Event) (*Parcel, error) {
	switch e := ev.(type) {
	case Registered:
		if current != nil {
			return nil, transitionError(ev, current.status)
		}
		return register(e)

	case PickedUp:
		if err := requireStatus(current, ev, StatusToPickup); err != nil {
			return nil, err
		}
		if err := e.Vehicle.Validate(); err != nil {
			return nil, err
		}
		current.status = StatusTransitToWarehouse
		current.currentVehicle = &e.Vehicle

	case DeliveredToWarehouse:
		if err := requireStatus(current, ev, StatusTransitToWarehouse); err != nil {
			return nil, err
		}
		if err := e.Warehouse.Validate(); err != nil {
			return nil, err
		}
		current.arriveAt(e.Warehouse)

	case TransferStarted:
		if err := requireStatus(current, ev, StatusToTransfer); err != nil {
			return nil, err
		}
		current.status = StatusTransfer

	case TransferCompleted:
		if err := requireStatus(current, ev, StatusTransfer); err != nil {
			return nil, err
		}
		if err := e.Warehouse.Validate(); err != nil {
			return nil, err
		}
		current.arriveAt(e.Warehouse)

	case DeliveryStarted:
		if err := requireStatus(current, ev, StatusInWarehouse); err != nil {
			return nil, err
		}
		if current.currentWarehouse == nil || !current.currentWarehouse.IsEqual(current.FinalTransitWarehouse()) {
			return nil, fmt.Errorf("%w: delivery may only start from the final transit warehouse",
				ErrInvalidTransition)
		}
		if err := e.Vehicle.Validate(); err != nil {
			return nil, err
		}
		current.status = StatusTransitToCustomer
		current.currentWarehouse = nil
		current.currentVehicle = &e.Vehicle

	case Delivered:
		if err := requireStatus(current, ev, StatusTransitToCustomer); err != nil {
			return nil, err
		}
		current.status = StatusDelivered
		current.currentVehicle = nil

	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("parcel event",
			fmt.Errorf("unknown event type %T", ev))
	}

	current.version++
	return current, nil
}

// Replay projects an ordered event stream from empty state. An empty stream
// yields a NotFound error, as the parcel does not exist until its Registered
// event is stored.
func Replay(events []Event) (*Parcel, error) {
	if len(events) == 0 {
		return nil, errs.NewObjectNotFoundError("parcel event stream", "empty")
	}

	var p *Parcel
	for _, ev := range events {
		next, err := Next(p, ev)
		if err != nil {
			return nil, err
		}
		p = next
	}

	return p, nil
}

// register builds the initial projection from a Registered event.
func register(e Registered) (*Parcel, error) {
	if err := errors.Join(
		e.Parcel.Validate(),
		e.PickupLocation.Validate(),
		e.DeliveryLocation.Validate(),
	); err != nil {
		return nil, err
	}

	if len(e.TransitWarehouses) < 1 || len(e.TransitWarehouses) > 2 {
		return nil, errs.NewValueIsOutOfRangeError("transit warehouses", len(e.TransitWarehouses), 1, 2)
	}
	for _, id := range e.TransitWarehouses {
		if err := id.Validate(); err != nil {
			return nil, err
		}
	}

	path := make([]kernel.UUID, len(e.TransitWarehouses))
	copy(path, e.TransitWarehouses)

	return &Parcel{
		id:                e.Parcel,
		pickupDate:        e.PickupDate,
		deliveryDate:      e.DeliveryDate,
		pickupLocation:    e.PickupLocation,
		deliveryLocation:  e.DeliveryLocation,
		transitWarehouses: path,
		status:            StatusToPickup,
		version:           1,
		isConstructed:     true,
	}, nil
}

// arriveAt records arrival at a warehouse. The resulting status depends on
// whether the warehouse is the last element of the transit path: the final
// hop puts the parcel InWarehouse, an intermediate hop leaves it ToTransfer.
func (p *Parcel) arriveAt(warehouseID kernel.UUID) {
	p.currentVehicle = nil
	p.currentWarehouse = &warehouseID

	if warehouseID.IsEqual(p.FinalTransitWarehouse()) {
		p.status = StatusInWarehouse
	} else {
		p.status = StatusToTransfer
	}
}

func requireStatus(p *Parcel, ev Event, want Status) error {
	if p == nil {
		return fmt.Errorf("%w: %s requires an existing parcel", ErrInvalidTransition, ev.Name())
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if p.status != want {
		return transitionError(ev, p.status)
	}
	return nil
}

func transitionError(ev Event, current Status) error {
	return fmt.Errorf("%w: %s cannot be applied in status %s", ErrInvalidTransition, ev.Name(), current)
}
