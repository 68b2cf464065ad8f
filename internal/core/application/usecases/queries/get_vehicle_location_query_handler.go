package queries

import (
	"context"

	"parcelflow/internal/core/ports"
)

// GetVehicleLocationQueryHandler reads a vehicle's live position from the
// progress tracking store.
type GetVehicleLocationQueryHandler struct {
	tracker ports.ProgressTracker
}

// NewGetVehicleLocationQueryHandler creates a handler for vehicle position queries.
func NewGetVehicleLocationQueryHandler(tracker ports.ProgressTracker) GetVehicleLocationQueryHandler {
	return GetVehicleLocationQueryHandler{tracker: tracker}
}

// Handle executes the query. Returns an object not found error when the
// vehicle has no recorded position.
func (h GetVehicleLocationQueryHandler) Handle(
	ctx context.Context,
	query GetVehicleLocationQuery,
) (GetVehicleLocationQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetVehicleLocationQueryResponse{}, err
	}

	location, err := h.tracker.GetVehicleLocation(ctx, query.VehicleID())
	if err != nil {
		return GetVehicleLocationQueryResponse{}, err
	}

	return GetVehicleLocationQueryResponse{
		VehicleID: query.VehicleID(),
		Location:  location,
	}, nil
}
