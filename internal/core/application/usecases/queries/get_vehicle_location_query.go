package queries

import (
	"errors"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/guard"
)

var ErrGetVehicleLocationQueryIsNotConstructed = errors.New(
	"GetVehicleLocationQuery must be created via NewGetVehicleLocationQuery constructor",
)

// GetVehicleLocationQuery retrieves a vehicle's last reported position from
// the live tracking store.
type GetVehicleLocationQuery struct {
	vehicleID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetVehicleLocationQuery creates a query for a vehicle's live position.
func NewGetVehicleLocationQuery(vehicleID kernel.UUID) (GetVehicleLocationQuery, error) {
	if err := vehicleID.Validate(); err != nil {
		return GetVehicleLocationQuery{}, err
	}

	return GetVehicleLocationQuery{vehicleID: vehicleID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetVehicleLocationQuery) Validate() error {
	return q.guard.Validate(ErrGetVehicleLocationQueryIsNotConstructed)
}

// VehicleID returns the vehicle being queried.
func (q GetVehicleLocationQuery) VehicleID() kernel.UUID {
	return q.vehicleID
}

// GetVehicleLocationQueryResponse represents a vehicle's live position.
type GetVehicleLocationQueryResponse struct {
	VehicleID kernel.UUID
	Location  kernel.Location
}
