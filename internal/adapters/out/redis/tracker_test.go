package redis_test

import (
	"context"
	"testing"

	redis_adapter "parcelflow/internal/adapters/out/redis"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/errs"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTracker(t *testing.T) *redis_adapter.Tracker {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return redis_adapter.NewTracker(client)
}

func TestTracker_VehicleSet(t *testing.T) {
	ctx := context.Background()
	tracker := newTracker(t)

	first := kernel.NewUUID()
	second := kernel.NewUUID()

	require.NoError(t, tracker.TrackVehicle(ctx, first))
	require.NoError(t, tracker.TrackVehicle(ctx, second))
	require.NoError(t, tracker.TrackVehicle(ctx, first)) // idempotent

	active, err := tracker.ActiveVehicles(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	require.NoError(t, tracker.UntrackVehicle(ctx, first))

	active, err = tracker.ActiveVehicles(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.True(t, active[0].IsEqual(second))
}

func TestTracker_TransferJobSet(t *testing.T) {
	ctx := context.Background()
	tracker := newTracker(t)

	trip := kernel.NewUUID()
	require.NoError(t, tracker.TrackTransferJob(ctx, trip))

	active, err := tracker.ActiveTransferJobs(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.True(t, active[0].IsEqual(trip))

	require.NoError(t, tracker.UntrackTransferJob(ctx, trip))

	active, err = tracker.ActiveTransferJobs(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestTracker_VehicleLocation(t *testing.T) {
	ctx := context.Background()
	tracker := newTracker(t)

	vehicleID := kernel.NewUUID()
	location, err := kernel.NewLocation(48.8566, 2.3522)
	require.NoError(t, err)

	_, err = tracker.GetVehicleLocation(ctx, vehicleID)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)

	require.NoError(t, tracker.SetVehicleLocation(ctx, vehicleID, location))

	loaded, err := tracker.GetVehicleLocation(ctx, vehicleID)
	require.NoError(t, err)
	assert.InDelta(t, 48.8566, loaded.Latitude(), 1e-9)
	assert.InDelta(t, 2.3522, loaded.Longitude(), 1e-9)
}

func TestTracker_UntrackVehicleDropsLocation(t *testing.T) {
	ctx := context.Background()
	tracker := newTracker(t)

	vehicleID := kernel.NewUUID()
	location, err := kernel.NewLocation(45.76, 4.83)
	require.NoError(t, err)

	require.NoError(t, tracker.TrackVehicle(ctx, vehicleID))
	require.NoError(t, tracker.SetVehicleLocation(ctx, vehicleID, location))
	require.NoError(t, tracker.UntrackVehicle(ctx, vehicleID))

	_, err = tracker.GetVehicleLocation(ctx, vehicleID)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}
