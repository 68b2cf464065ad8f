package services

import (
	"errors"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/warehouse"
)

// ErrWarehouseNotFound is returned when a pickup or delivery point cannot be
// served by any available warehouse. A warehouse only counts as a candidate
// when the point falls within that warehouse's own service range.
var ErrWarehouseNotFound = errors.New("warehouse not found")

// TransitPlanner is a domain service that assigns the warehouse chain a
// parcel travels through between its pickup and delivery points.
//
// Business rules:
//   - Only AVAILABLE warehouses participate in planning
//   - A warehouse serves a point only within its own service range
//   - Among serving warehouses the nearest one wins
//   - When pickup and delivery resolve to the same warehouse the chain has
//     one hop, otherwise two
type TransitPlanner struct{}

// NewTransitPlanner creates a new TransitPlanner instance.
func NewTransitPlanner() TransitPlanner {
	return TransitPlanner{}
}

// Plan resolves the transit warehouse chain for a pickup and delivery point.
//
// Returns ErrWarehouseNotFound when either endpoint is outside every
// available warehouse's service range.
func (p TransitPlanner) Plan(
	pickup, delivery kernel.Location,
	warehouses []*warehouse.Warehouse,
) ([]kernel.UUID, error) {
	if err := errors.Join(pickup.Validate(), delivery.Validate()); err != nil {
		return nil, err
	}

	first, err := p.nearestServing(pickup, warehouses)
	if err != nil {
		return nil, err
	}

	last, err := p.nearestServing(delivery, warehouses)
	if err != nil {
		return nil, err
	}

	if first.ID().IsEqual(last.ID()) {
		return []kernel.UUID{first.ID()}, nil
	}
	return []kernel.UUID{first.ID(), last.ID()}, nil
}

func (p TransitPlanner) nearestServing(
	point kernel.Location,
	warehouses []*warehouse.Warehouse,
) (*warehouse.Warehouse, error) {
	var best *warehouse.Warehouse
	var bestDistance float64

	for _, w := range warehouses {
		if err := w.Validate(); err != nil {
			return nil, err
		}
		if !w.IsAvailable() {
			continue
		}

		inRange, distance, err := w.Serves(point)
		if err != nil {
			return nil, err
		}
		if !inRange {
			continue
		}

		if best == nil || distance < bestDistance {
			best = w
			bestDistance = distance
		}
	}

	if best == nil {
		return nil, ErrWarehouseNotFound
	}
	return best, nil
}
