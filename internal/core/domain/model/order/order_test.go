package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/vehicle"
)

func mustLocation(t *testing.T, lat, lon float64) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lon)
	require.NoError(t, err)
	return loc
}

func TestNewOrder(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("should create order", func(t *testing.T) {
		id := kernel.NewUUID()
		parcelID := kernel.NewUUID()
		warehouseID := kernel.NewUUID()

		o, err := NewOrder(id, parcelID, warehouseID, vehicle.KindPickup, date,
			mustLocation(t, 48.85, 2.35), mustLocation(t, 48.90, 2.40))
		require.NoError(t, err)

		assert.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.True(t, o.ParcelID().IsEqual(parcelID))
		assert.True(t, o.WarehouseID().IsEqual(warehouseID))
		assert.Equal(t, vehicle.KindPickup, o.Kind())
		assert.Equal(t, date, o.Date())
	})

	t.Run("should return error when date is zero", func(t *testing.T) {
		_, err := NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			vehicle.KindDelivery, time.Time{},
			mustLocation(t, 48.85, 2.35), mustLocation(t, 48.90, 2.40))
		assert.Error(t, err)
	})

	t.Run("should return error for unknown kind", func(t *testing.T) {
		_, err := NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			vehicle.KindUnknown, date,
			mustLocation(t, 48.85, 2.35), mustLocation(t, 48.90, 2.40))
		assert.Error(t, err)
	})

	t.Run("should return error when location is not constructed", func(t *testing.T) {
		_, err := NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			vehicle.KindDelivery, date,
			kernel.Location{}, mustLocation(t, 48.90, 2.40))
		assert.Error(t, err)
	})
}

func TestOrderIsEqual(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("should compare by id", func(t *testing.T) {
		id := kernel.NewUUID()
		first, err := NewOrder(id, kernel.NewUUID(), kernel.NewUUID(), vehicle.KindPickup, date,
			mustLocation(t, 1, 1), mustLocation(t, 2, 2))
		require.NoError(t, err)
		second, err := NewOrder(id, kernel.NewUUID(), kernel.NewUUID(), vehicle.KindDelivery, date,
			mustLocation(t, 3, 3), mustLocation(t, 4, 4))
		require.NoError(t, err)

		assert.True(t, first.IsEqual(second))
	})
}
