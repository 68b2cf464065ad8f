package warehouse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parcelflow/internal/core/domain/model/kernel"
)

func mustLocation(t *testing.T, lat, lon float64) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lon)
	require.NoError(t, err)
	return loc
}

func TestNewWarehouse(t *testing.T) {
	t.Run("should create available warehouse", func(t *testing.T) {
		w, err := NewWarehouse(kernel.NewUUID(), mustLocation(t, 48.85, 2.35), "paris", 50)
		require.NoError(t, err)

		assert.NoError(t, w.Validate())
		assert.Equal(t, StatusAvailable, w.Status())
		assert.True(t, w.IsAvailable())
		assert.Equal(t, "paris", w.CityCodename())
		assert.Equal(t, 50.0, w.ServiceRangeKm())
	})

	t.Run("should return error when service range is not positive", func(t *testing.T) {
		_, err := NewWarehouse(kernel.NewUUID(), mustLocation(t, 48.85, 2.35), "paris", 0)
		assert.Error(t, err)
	})

	t.Run("should return error when city codename is empty", func(t *testing.T) {
		_, err := NewWarehouse(kernel.NewUUID(), mustLocation(t, 48.85, 2.35), "", 50)
		assert.Error(t, err)
	})

	t.Run("should return error when id is empty", func(t *testing.T) {
		_, err := NewWarehouse(kernel.UUID{}, mustLocation(t, 48.85, 2.35), "paris", 50)
		assert.Error(t, err)
	})
}

func TestRestoreWarehouse(t *testing.T) {
	t.Run("should restore unavailable warehouse", func(t *testing.T) {
		w, err := RestoreWarehouse(kernel.NewUUID(), mustLocation(t, 48.85, 2.35), "paris", 50, StatusUnavailable)
		require.NoError(t, err)

		assert.False(t, w.IsAvailable())
	})

	t.Run("should return error for unknown status", func(t *testing.T) {
		_, err := RestoreWarehouse(kernel.NewUUID(), mustLocation(t, 48.85, 2.35), "paris", 50, StatusUnknown)
		assert.Error(t, err)
	})
}

func TestWarehouseServes(t *testing.T) {
	// Paris warehouse, Lyon is roughly 390 km away.
	paris := func(t *testing.T, rangeKm float64) *Warehouse {
		t.Helper()
		w, err := NewWarehouse(kernel.NewUUID(), mustLocation(t, 48.8566, 2.3522), "paris", rangeKm)
		require.NoError(t, err)
		return w
	}
	lyon := func(t *testing.T) kernel.Location { return mustLocation(t, 45.7640, 4.8357) }

	t.Run("should serve point inside range", func(t *testing.T) {
		w := paris(t, 500)

		inRange, distance, err := w.Serves(lyon(t))
		require.NoError(t, err)

		assert.True(t, inRange)
		assert.InDelta(t, 392, distance, 10)
	})

	t.Run("should not serve point outside range", func(t *testing.T) {
		w := paris(t, 100)

		inRange, distance, err := w.Serves(lyon(t))
		require.NoError(t, err)

		assert.False(t, inRange)
		assert.Greater(t, distance, 100.0)
	})

	t.Run("should serve own location", func(t *testing.T) {
		w := paris(t, 1)

		inRange, distance, err := w.Serves(w.Location())
		require.NoError(t, err)

		assert.True(t, inRange)
		assert.InDelta(t, 0, distance, 0.001)
	})
}

func TestStatus(t *testing.T) {
	t.Run("should render status names", func(t *testing.T) {
		assert.Equal(t, "AVAILABLE", StatusAvailable.String())
		assert.Equal(t, "UNAVAILABLE", StatusUnavailable.String())
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		assert.Error(t, Status(9).Validate())
	})
}
