// Package redis implements the progress tracker working set on Redis.
// Active vehicles and transfer trips live in sets; vehicle positions live in
// per-vehicle hashes. The sweep reads the sets instead of scanning every
// vehicle row in the database.
package redis

import (
	"context"
	"errors"
	"strconv"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const (
	activeVehiclesKey  = "tracker:vehicles:active"
	activeTransfersKey = "tracker:transfers:active"
	vehicleLocationKey = "tracker:vehicle:location:"
)

// Tracker implements ports.ProgressTracker on a Redis client.
type Tracker struct {
	client *redis.Client
}

// NewTracker creates a tracker on the given Redis client.
func NewTracker(client *redis.Client) *Tracker {
	return &Tracker{client: client}
}

// TrackVehicle adds a vehicle to the active sweep set. Adding a vehicle that
// is already tracked is a no-op.
func (t *Tracker) TrackVehicle(ctx context.Context, vehicleID kernel.UUID) error {
	if err := vehicleID.Validate(); err != nil {
		return err
	}
	return t.client.SAdd(ctx, activeVehiclesKey, vehicleID.String()).Err()
}

// UntrackVehicle removes a vehicle from the active sweep set and drops its
// recorded position.
func (t *Tracker) UntrackVehicle(ctx context.Context, vehicleID kernel.UUID) error {
	if err := vehicleID.Validate(); err != nil {
		return err
	}

	if err := t.client.SRem(ctx, activeVehiclesKey, vehicleID.String()).Err(); err != nil {
		return err
	}
	return t.client.Del(ctx, vehicleLocationKey+vehicleID.String()).Err()
}

// ActiveVehicles lists the vehicles in the active sweep set.
func (t *Tracker) ActiveVehicles(ctx context.Context) ([]kernel.UUID, error) {
	return t.members(ctx, activeVehiclesKey)
}

// TrackTransferJob adds a transfer trip to the active sweep set.
func (t *Tracker) TrackTransferJob(ctx context.Context, transferJobID kernel.UUID) error {
	if err := transferJobID.Validate(); err != nil {
		return err
	}
	return t.client.SAdd(ctx, activeTransfersKey, transferJobID.String()).Err()
}

// UntrackTransferJob removes a transfer trip from the active sweep set.
func (t *Tracker) UntrackTransferJob(ctx context.Context, transferJobID kernel.UUID) error {
	if err := transferJobID.Validate(); err != nil {
		return err
	}
	return t.client.SRem(ctx, activeTransfersKey, transferJobID.String()).Err()
}

// ActiveTransferJobs lists the transfer trips in the active sweep set.
func (t *Tracker) ActiveTransferJobs(ctx context.Context) ([]kernel.UUID, error) {
	return t.members(ctx, activeTransfersKey)
}

// SetVehicleLocation records a vehicle's current position.
func (t *Tracker) SetVehicleLocation(ctx context.Context, vehicleID kernel.UUID, location kernel.Location) error {
	if err := errors.Join(vehicleID.Validate(), location.Validate()); err != nil {
		return err
	}

	return t.client.HSet(ctx, vehicleLocationKey+vehicleID.String(),
		"latitude", location.Latitude(),
		"longitude", location.Longitude(),
	).Err()
}

// GetVehicleLocation retrieves a vehicle's last recorded position.
func (t *Tracker) GetVehicleLocation(ctx context.Context, vehicleID kernel.UUID) (kernel.Location, error) {
	if err := vehicleID.Validate(); err != nil {
		return kernel.Location{}, err
	}

	fields, err := t.client.HGetAll(ctx, vehicleLocationKey+vehicleID.String()).Result()
	if err != nil {
		return kernel.Location{}, err
	}
	if len(fields) == 0 {
		return kernel.Location{}, errs.NewObjectNotFoundError("vehicle location", vehicleID.String())
	}

	latitude, err := strconv.ParseFloat(fields["latitude"], 64)
	if err != nil {
		return kernel.Location{}, err
	}
	longitude, err := strconv.ParseFloat(fields["longitude"], 64)
	if err != nil {
		return kernel.Location{}, err
	}

	return kernel.NewLocation(latitude, longitude)
}

func (t *Tracker) members(ctx context.Context, key string) ([]kernel.UUID, error) {
	raw, err := t.client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := kernel.UUIDFromString(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}
