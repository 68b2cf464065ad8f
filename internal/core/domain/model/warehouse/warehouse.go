// Package warehouse models the warehouse reference data used for transit
// planning. Warehouses are read-mostly: they are created by back-office
// tooling and consumed by the assignment and batching logic.
package warehouse

import (
	"errors"
	"fmt"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/errs"
)

// ErrWarehouseIsNotConstructed is returned when a Warehouse instance was not
// created through the NewWarehouse or RestoreWarehouse factory methods.
var ErrWarehouseIsNotConstructed = errors.New("Warehouse must be created via NewWarehouse constructor")

// Status represents the operational state of a warehouse.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusAvailable means the warehouse accepts parcels.
	StatusAvailable

	// StatusUnavailable means the warehouse is excluded from transit planning.
	StatusUnavailable
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusAvailable:
		return "AVAILABLE"
	case StatusUnavailable:
		return "UNAVAILABLE"
	default:
		return "Unknown"
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if s != StatusAvailable && s != StatusUnavailable {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid warehouse status", s))
	}
	return nil
}

// Warehouse is a transit hub with a geographic position and a service radius.
// A warehouse only serves pickup/delivery points within its own service range;
// points beyond it are not candidates at all, regardless of proximity.
type Warehouse struct {
	id             kernel.UUID
	location       kernel.Location
	cityCodename   string
	serviceRangeKm float64
	status         Status

	isConstructed bool
}

// NewWarehouse creates an available warehouse.
//
// Parameters:
//   - id: unique identifier
//   - location: the warehouse position
//   - cityCodename: short human-readable city code (required)
//   - serviceRangeKm: service radius in kilometers (must be positive)
func NewWarehouse(id kernel.UUID, location kernel.Location, cityCodename string, serviceRangeKm float64) (*Warehouse, error) {
	return RestoreWarehouse(id, location, cityCodename, serviceRangeKm, StatusAvailable)
}

// RestoreWarehouse reconstructs a warehouse from persistence.
func RestoreWarehouse(
	id kernel.UUID,
	location kernel.Location,
	cityCodename string,
	serviceRangeKm float64,
	status Status,
) (*Warehouse, error) {
	w := &Warehouse{isConstructed: true}

	if err := errors.Join(
		w.setID(id),
		w.setLocation(location),
		w.setCityCodename(cityCodename),
		w.setServiceRangeKm(serviceRangeKm),
		w.setStatus(status),
	); err != nil {
		return nil, err
	}

	return w, nil
}

// Validate ensures the Warehouse was created through a constructor.
func (w *Warehouse) Validate() error {
	if w == nil || !w.isConstructed {
		return ErrWarehouseIsNotConstructed
	}
	return nil
}

// ID returns the warehouse's unique identifier.
func (w *Warehouse) ID() kernel.UUID {
	return w.id
}

// Location returns the warehouse position.
func (w *Warehouse) Location() kernel.Location {
	return w.location
}

// CityCodename returns the warehouse's city code.
func (w *Warehouse) CityCodename() string {
	return w.cityCodename
}

// ServiceRangeKm returns the service radius in kilometers.
func (w *Warehouse) ServiceRangeKm() float64 {
	return w.serviceRangeKm
}

// Status returns the operational status.
func (w *Warehouse) Status() Status {
	return w.status
}

// IsAvailable reports whether the warehouse participates in transit planning.
func (w *Warehouse) IsAvailable() bool {
	return w.status == StatusAvailable
}

// Serves reports whether point lies within the warehouse's service range,
// and returns the distance so callers can rank candidate warehouses.
func (w *Warehouse) Serves(point kernel.Location) (bool, float64, error) {
	if err := w.Validate(); err != nil {
		return false, 0, err
	}

	km, err := w.location.DistanceKm(point)
	if err != nil {
		return false, 0, err
	}

	return km <= w.serviceRangeKm, km, nil
}

func (w *Warehouse) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	w.id = id
	return nil
}

func (w *Warehouse) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	w.location = location
	return nil
}

func (w *Warehouse) setCityCodename(cityCodename string) error {
	if cityCodename == "" {
		return errs.NewValueIsRequiredError("cityCodename")
	}
	w.cityCodename = cityCodename
	return nil
}

func (w *Warehouse) setServiceRangeKm(serviceRangeKm float64) error {
	if serviceRangeKm <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("serviceRangeKm",
			fmt.Errorf("%f is not greater than 0", serviceRangeKm))
	}
	w.serviceRangeKm = serviceRangeKm
	return nil
}

func (w *Warehouse) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	w.status = status
	return nil
}
