// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/guard"
)

var ErrGetParcelQueryIsNotConstructed = errors.New(
	"GetParcelQuery must be created via NewGetParcelQuery constructor",
)

// GetParcelQuery retrieves a parcel's current state. The state is derived by
// replaying the parcel's event stream, never read from a snapshot.
//
// Example:
//
//	query, err := NewGetParcelQuery(parcelID)
//	if err != nil {
//	    return fmt.Errorf("invalid parcel id: %w", err)
//	}
//
//	state, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to load parcel: %w", err)
//	}
//	fmt.Printf("parcel %s is %s\n", state.ID, state.Status)
type GetParcelQuery struct {
	parcelID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetParcelQuery creates a query to load one parcel's state.
func NewGetParcelQuery(parcelID kernel.UUID) (GetParcelQuery, error) {
	if err := parcelID.Validate(); err != nil {
		return GetParcelQuery{}, err
	}

	return GetParcelQuery{parcelID: parcelID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetParcelQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelQueryIsNotConstructed)
}

// ParcelID returns the parcel being queried.
func (q GetParcelQuery) ParcelID() kernel.UUID {
	return q.parcelID
}

// GetParcelQueryResponse represents a parcel's replayed state in the read model.
type GetParcelQueryResponse struct {
	ID                kernel.UUID
	Status            string
	PickupDate        time.Time
	DeliveryDate      time.Time
	PickupLocation    kernel.Location
	DeliveryLocation  kernel.Location
	TransitWarehouses []kernel.UUID
	CurrentWarehouse  *kernel.UUID
	CurrentVehicle    *kernel.UUID
	Version           int
}
