package kernel_test

import (
	"testing"

	"parcelflow/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocation(t *testing.T) {
	t.Run("should create valid location with valid coordinates", func(t *testing.T) {
		loc, err := kernel.NewLocation(48.8566, 2.3522)

		require.NoError(t, err)
		require.NoError(t, loc.Validate())
		assert.InDelta(t, 48.8566, loc.Latitude(), 1e-9)
		assert.InDelta(t, 2.3522, loc.Longitude(), 1e-9)
	})

	t.Run("should accept boundary coordinates", func(t *testing.T) {
		for _, coords := range [][2]float64{
			{-90, -180},
			{90, 180},
			{0, 0},
		} {
			loc, err := kernel.NewLocation(coords[0], coords[1])
			require.NoError(t, err)
			require.NoError(t, loc.Validate())
		}
	})

	t.Run("should fail with latitude above range", func(t *testing.T) {
		_, err := kernel.NewLocation(90.1, 0)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "latitude")
	})

	t.Run("should fail with longitude below range", func(t *testing.T) {
		_, err := kernel.NewLocation(0, -180.5)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "longitude")
	})

	t.Run("should join both coordinate errors", func(t *testing.T) {
		_, err := kernel.NewLocation(-91, 181)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "latitude")
		assert.Contains(t, err.Error(), "longitude")
	})
}

func TestLocation_Validate(t *testing.T) {
	t.Run("zero value fails validation", func(t *testing.T) {
		var loc kernel.Location

		err := loc.Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "location must be created")
	})
}

func TestLocation_IsEqual(t *testing.T) {
	t.Run("equal coordinates are equal", func(t *testing.T) {
		a, _ := kernel.NewLocation(10, 20)
		b, _ := kernel.NewLocation(10, 20)

		equal, err := a.IsEqual(b)

		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("different coordinates are not equal", func(t *testing.T) {
		a, _ := kernel.NewLocation(10, 20)
		b, _ := kernel.NewLocation(10, 21)

		equal, err := a.IsEqual(b)

		require.NoError(t, err)
		assert.False(t, equal)
	})

	t.Run("comparison with zero value fails", func(t *testing.T) {
		a, _ := kernel.NewLocation(10, 20)
		var b kernel.Location

		_, err := a.IsEqual(b)

		require.Error(t, err)
	})
}

func TestLocation_DistanceKm(t *testing.T) {
	t.Run("distance to itself is zero", func(t *testing.T) {
		loc, _ := kernel.NewLocation(48.8566, 2.3522)

		km, err := loc.DistanceKm(loc)

		require.NoError(t, err)
		assert.InDelta(t, 0, km, 1e-9)
	})

	t.Run("paris to lyon is roughly 392 km", func(t *testing.T) {
		paris, _ := kernel.NewLocation(48.8566, 2.3522)
		lyon, _ := kernel.NewLocation(45.7640, 4.8357)

		km, err := paris.DistanceKm(lyon)

		require.NoError(t, err)
		assert.InDelta(t, 392, km, 5)
	})

	t.Run("distance is symmetric", func(t *testing.T) {
		a, _ := kernel.NewLocation(40.7128, -74.0060)
		b, _ := kernel.NewLocation(34.0522, -118.2437)

		ab, err := a.DistanceKm(b)
		require.NoError(t, err)
		ba, err := b.DistanceKm(a)
		require.NoError(t, err)

		assert.InDelta(t, ab, ba, 1e-9)
	})

	t.Run("fails for unconstructed location", func(t *testing.T) {
		a, _ := kernel.NewLocation(0, 0)
		var b kernel.Location

		_, err := a.DistanceKm(b)

		require.Error(t, err)
	})
}

func TestLocation_InterpolateTo(t *testing.T) {
	t.Run("quarter of the way between two points", func(t *testing.T) {
		from, _ := kernel.NewLocation(0, 0)
		to, _ := kernel.NewLocation(10, 10)

		mid, err := from.InterpolateTo(to, 0.25)

		require.NoError(t, err)
		assert.InDelta(t, 2.5, mid.Latitude(), 1e-9)
		assert.InDelta(t, 2.5, mid.Longitude(), 1e-9)
	})

	t.Run("ratio zero yields origin", func(t *testing.T) {
		from, _ := kernel.NewLocation(5, -5)
		to, _ := kernel.NewLocation(10, 10)

		loc, err := from.InterpolateTo(to, 0)

		require.NoError(t, err)
		equal, _ := loc.IsEqual(from)
		assert.True(t, equal)
	})

	t.Run("ratio one yields destination", func(t *testing.T) {
		from, _ := kernel.NewLocation(5, -5)
		to, _ := kernel.NewLocation(10, 10)

		loc, err := from.InterpolateTo(to, 1)

		require.NoError(t, err)
		equal, _ := loc.IsEqual(to)
		assert.True(t, equal)
	})

	t.Run("ratio is clamped into unit interval", func(t *testing.T) {
		from, _ := kernel.NewLocation(0, 0)
		to, _ := kernel.NewLocation(10, 10)

		past, err := from.InterpolateTo(to, 1.5)
		require.NoError(t, err)
		equal, _ := past.IsEqual(to)
		assert.True(t, equal)

		before, err := from.InterpolateTo(to, -0.5)
		require.NoError(t, err)
		equal, _ = before.IsEqual(from)
		assert.True(t, equal)
	})
}
