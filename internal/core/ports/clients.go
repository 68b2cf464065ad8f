package ports

import (
	"context"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/order"
	"parcelflow/internal/core/domain/model/vehicle"
)

// RouteStep is one stop of an optimized vehicle route.
type RouteStep struct {
	ParcelID      kernel.UUID
	Location      kernel.Location
	ArrivalOffset time.Duration
}

// RoutePlan is one vehicle's optimized route over a batch of orders.
type RoutePlan struct {
	VehicleID kernel.UUID
	Duration  time.Duration
	Steps     []RouteStep
}

// RouteOptimizer is the contract of the external route optimization service.
// It splits a batch of same-warehouse orders over the given vehicles and
// returns one plan per vehicle that received work.
type RouteOptimizer interface {
	Optimize(ctx context.Context, warehouseLocation kernel.Location, orders []*order.Order, vehicles []*vehicle.Vehicle) ([]RoutePlan, error)
}

// Offer is a priced shipping proposal from the pricing service.
type Offer struct {
	ID    kernel.UUID
	Price float64
}

// PricingClient is the contract of the external pricing service.
type PricingClient interface {
	// GetOffer requests a priced proposal for a shipment.
	GetOffer(ctx context.Context, pickup, delivery kernel.Location) (Offer, error)

	// AcceptOffer confirms an offer. First step of the acceptance workflow.
	AcceptOffer(ctx context.Context, offerID kernel.UUID) error

	// CancelAcceptOffer reverts a confirmed offer. Compensating action.
	CancelAcceptOffer(ctx context.Context, offerID kernel.UUID) error
}

// EventPublisher broadcasts committed parcel lifecycle events to downstream
// consumers. Events of one parcel are delivered in order.
type EventPublisher interface {
	Publish(ctx context.Context, eventName string, parcelID kernel.UUID, payload any) error
}

// ProgressTracker maintains the hot working set of the progress generator:
// which vehicles and transfer trips have work, and where moving vehicles
// currently are.
type ProgressTracker interface {
	// TrackVehicle adds a vehicle to the active sweep set.
	TrackVehicle(ctx context.Context, vehicleID kernel.UUID) error

	// UntrackVehicle removes an idle vehicle from the active sweep set.
	UntrackVehicle(ctx context.Context, vehicleID kernel.UUID) error

	// ActiveVehicles lists the vehicles in the active sweep set.
	ActiveVehicles(ctx context.Context) ([]kernel.UUID, error)

	// TrackTransferJob adds a transfer trip to the active sweep set.
	TrackTransferJob(ctx context.Context, transferJobID kernel.UUID) error

	// UntrackTransferJob removes a finished transfer trip from the set.
	UntrackTransferJob(ctx context.Context, transferJobID kernel.UUID) error

	// ActiveTransferJobs lists the transfer trips in the active sweep set.
	ActiveTransferJobs(ctx context.Context) ([]kernel.UUID, error)

	// SetVehicleLocation records a vehicle's current position.
	SetVehicleLocation(ctx context.Context, vehicleID kernel.UUID, location kernel.Location) error

	// GetVehicleLocation retrieves a vehicle's last recorded position.
	GetVehicleLocation(ctx context.Context, vehicleID kernel.UUID) (kernel.Location, error)
}
