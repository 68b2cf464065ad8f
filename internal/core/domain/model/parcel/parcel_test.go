package parcel_test

import (
	"testing"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	parcelID   kernel.UUID
	vehicleID  kernel.UUID
	warehouseA kernel.UUID
	warehouseB kernel.UUID
	pickupLoc  kernel.Location
	deliverLoc kernel.Location
	now        time.Time
}

func newFixture() fixture {
	pickupLoc, _ := kernel.NewLocation(48.85, 2.35)
	deliverLoc, _ := kernel.NewLocation(45.76, 4.83)
	return fixture{
		parcelID:   kernel.NewUUID(),
		vehicleID:  kernel.NewUUID(),
		warehouseA: kernel.NewUUID(),
		warehouseB: kernel.NewUUID(),
		pickupLoc:  pickupLoc,
		deliverLoc: deliverLoc,
		now:        time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (f fixture) registered(warehouses ...kernel.UUID) parcel.Registered {
	return parcel.Registered{
		Parcel:            f.parcelID,
		At:                f.now,
		PickupDate:        f.now,
		DeliveryDate:      f.now.AddDate(0, 0, 2),
		PickupLocation:    f.pickupLoc,
		DeliveryLocation:  f.deliverLoc,
		TransitWarehouses: warehouses,
	}
}

// singleHopStream is the full lifecycle of a parcel whose pickup and delivery
// share one warehouse.
func (f fixture) singleHopStream() []parcel.Event {
	return []parcel.Event{
		f.registered(f.warehouseA),
		parcel.PickedUp{Parcel: f.parcelID, At: f.now.Add(time.Hour), Vehicle: f.vehicleID},
		parcel.DeliveredToWarehouse{Parcel: f.parcelID, At: f.now.Add(2 * time.Hour), Warehouse: f.warehouseA},
		parcel.DeliveryStarted{Parcel: f.parcelID, At: f.now.Add(24 * time.Hour), Vehicle: f.vehicleID},
		parcel.Delivered{Parcel: f.parcelID, At: f.now.Add(26 * time.Hour)},
	}
}

func TestNext_Registered(t *testing.T) {
	f := newFixture()

	t.Run("should create parcel in TO_PICKUP with single warehouse", func(t *testing.T) {
		p, err := parcel.Next(nil, f.registered(f.warehouseA))

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.Equal(t, parcel.StatusToPickup, p.Status())
		assert.Len(t, p.TransitWarehouses(), 1)
		assert.Equal(t, 1, p.Version())
		assert.Nil(t, p.CurrentWarehouse())
		assert.Nil(t, p.CurrentVehicle())
	})

	t.Run("should accept two transit warehouses", func(t *testing.T) {
		p, err := parcel.Next(nil, f.registered(f.warehouseA, f.warehouseB))

		require.NoError(t, err)
		assert.True(t, p.FirstTransitWarehouse().IsEqual(f.warehouseA))
		assert.True(t, p.FinalTransitWarehouse().IsEqual(f.warehouseB))
	})

	t.Run("should fail with zero transit warehouses", func(t *testing.T) {
		_, err := parcel.Next(nil, f.registered())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "transit warehouses")
	})

	t.Run("should fail with three transit warehouses", func(t *testing.T) {
		_, err := parcel.Next(nil, f.registered(f.warehouseA, f.warehouseB, kernel.NewUUID()))

		require.Error(t, err)
	})

	t.Run("should reject registration of an existing parcel", func(t *testing.T) {
		p, _ := parcel.Next(nil, f.registered(f.warehouseA))

		_, err := parcel.Next(p, f.registered(f.warehouseA))

		require.ErrorIs(t, err, parcel.ErrInvalidTransition)
	})

	t.Run("should fail with unconstructed pickup location", func(t *testing.T) {
		ev := f.registered(f.warehouseA)
		ev.PickupLocation = kernel.Location{}

		_, err := parcel.Next(nil, ev)

		require.Error(t, err)
	})
}

func TestNext_TransitionTable(t *testing.T) {
	f := newFixture()

	t.Run("full single-hop lifecycle", func(t *testing.T) {
		var p *parcel.Parcel
		var err error

		statuses := []parcel.Status{
			parcel.StatusToPickup,
			parcel.StatusTransitToWarehouse,
			parcel.StatusInWarehouse,
			parcel.StatusTransitToCustomer,
			parcel.StatusDelivered,
		}

		for i, ev := range f.singleHopStream() {
			p, err = parcel.Next(p, ev)
			require.NoError(t, err, "event %d", i)
			assert.Equal(t, statuses[i], p.Status(), "event %d", i)
		}

		assert.True(t, p.Status().IsTerminal())
		assert.Nil(t, p.CurrentVehicle())
		assert.Equal(t, 5, p.Version())
	})

	t.Run("two-hop arrival at intermediate warehouse yields TO_TRANSFER", func(t *testing.T) {
		p, err := parcel.Next(nil, f.registered(f.warehouseA, f.warehouseB))
		require.NoError(t, err)

		p, err = parcel.Next(p, parcel.PickedUp{Parcel: f.parcelID, At: f.now, Vehicle: f.vehicleID})
		require.NoError(t, err)
		assert.True(t, p.CurrentVehicle().IsEqual(f.vehicleID))

		p, err = parcel.Next(p, parcel.DeliveredToWarehouse{Parcel: f.parcelID, At: f.now, Warehouse: f.warehouseA})
		require.NoError(t, err)
		assert.Equal(t, parcel.StatusToTransfer, p.Status())
		assert.True(t, p.CurrentWarehouse().IsEqual(f.warehouseA))
		assert.Nil(t, p.CurrentVehicle())
	})

	t.Run("transfer leg ends IN_WAREHOUSE at the final hop", func(t *testing.T) {
		p, _ := parcel.Next(nil, f.registered(f.warehouseA, f.warehouseB))
		p, _ = parcel.Next(p, parcel.PickedUp{Parcel: f.parcelID, At: f.now, Vehicle: f.vehicleID})
		p, _ = parcel.Next(p, parcel.DeliveredToWarehouse{Parcel: f.parcelID, At: f.now, Warehouse: f.warehouseA})

		p, err := parcel.Next(p, parcel.TransferStarted{Parcel: f.parcelID, At: f.now})
		require.NoError(t, err)
		assert.Equal(t, parcel.StatusTransfer, p.Status())

		p, err = parcel.Next(p, parcel.TransferCompleted{Parcel: f.parcelID, At: f.now, Warehouse: f.warehouseB})
		require.NoError(t, err)
		assert.Equal(t, parcel.StatusInWarehouse, p.Status())
		assert.True(t, p.CurrentWarehouse().IsEqual(f.warehouseB))
	})

	t.Run("delivery may not start from an intermediate warehouse", func(t *testing.T) {
		p, _ := parcel.Next(nil, f.registered(f.warehouseA, f.warehouseB))
		p, _ = parcel.Next(p, parcel.PickedUp{Parcel: f.parcelID, At: f.now, Vehicle: f.vehicleID})
		p, _ = parcel.Next(p, parcel.DeliveredToWarehouse{Parcel: f.parcelID, At: f.now, Warehouse: f.warehouseA})

		_, err := parcel.Next(p, parcel.DeliveryStarted{Parcel: f.parcelID, At: f.now, Vehicle: f.vehicleID})

		require.ErrorIs(t, err, parcel.ErrInvalidTransition)
	})
}

func TestNext_RejectsOutOfOrderEvents(t *testing.T) {
	f := newFixture()

	t.Run("every event against a fresh TO_PICKUP parcel except pickup", func(t *testing.T) {
		invalid := []parcel.Event{
			parcel.DeliveredToWarehouse{Parcel: f.parcelID, At: f.now, Warehouse: f.warehouseA},
			parcel.TransferStarted{Parcel: f.parcelID, At: f.now},
			parcel.TransferCompleted{Parcel: f.parcelID, At: f.now, Warehouse: f.warehouseA},
			parcel.DeliveryStarted{Parcel: f.parcelID, At: f.now, Vehicle: f.vehicleID},
			parcel.Delivered{Parcel: f.parcelID, At: f.now},
		}

		for _, ev := range invalid {
			p, _ := parcel.Next(nil, f.registered(f.warehouseA))

			_, err := parcel.Next(p, ev)

			require.ErrorIs(t, err, parcel.ErrInvalidTransition, ev.Name())
			// The projection must be untouched by a rejected event.
			assert.Equal(t, parcel.StatusToPickup, p.Status(), ev.Name())
			assert.Equal(t, 1, p.Version(), ev.Name())
		}
	})

	t.Run("no event is accepted on a delivered parcel", func(t *testing.T) {
		p, err := parcel.Replay(f.singleHopStream())
		require.NoError(t, err)

		_, err = parcel.Next(p, parcel.PickedUp{Parcel: f.parcelID, At: f.now, Vehicle: f.vehicleID})

		require.ErrorIs(t, err, parcel.ErrInvalidTransition)
	})

	t.Run("non-registration event against no parcel fails", func(t *testing.T) {
		_, err := parcel.Next(nil, parcel.PickedUp{Parcel: f.parcelID, At: f.now, Vehicle: f.vehicleID})

		require.ErrorIs(t, err, parcel.ErrInvalidTransition)
	})
}

func TestReplay(t *testing.T) {
	f := newFixture()

	t.Run("empty stream is not found", func(t *testing.T) {
		_, err := parcel.Replay(nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("replay is deterministic", func(t *testing.T) {
		stream := f.singleHopStream()

		first, err := parcel.Replay(stream)
		require.NoError(t, err)
		second, err := parcel.Replay(stream)
		require.NoError(t, err)

		assert.Equal(t, first.Status(), second.Status())
		assert.Equal(t, first.Version(), second.Version())
		assert.Equal(t, first.TransitWarehouses(), second.TransitWarehouses())
		assert.True(t, first.ID().IsEqual(second.ID()))
	})

	t.Run("replay of a prefix reproduces the intermediate projection", func(t *testing.T) {
		stream := f.singleHopStream()

		p, err := parcel.Replay(stream[:3])

		require.NoError(t, err)
		assert.Equal(t, parcel.StatusInWarehouse, p.Status())
		assert.Equal(t, 3, p.Version())
	})
}

func TestParcel_NextTransitWarehouseAfter(t *testing.T) {
	f := newFixture()

	t.Run("returns the second hop after the first", func(t *testing.T) {
		p, _ := parcel.Next(nil, f.registered(f.warehouseA, f.warehouseB))

		next, err := p.NextTransitWarehouseAfter(f.warehouseA)

		require.NoError(t, err)
		assert.True(t, next.IsEqual(f.warehouseB))
	})

	t.Run("final warehouse has no successor", func(t *testing.T) {
		p, _ := parcel.Next(nil, f.registered(f.warehouseA, f.warehouseB))

		_, err := p.NextTransitWarehouseAfter(f.warehouseB)

		require.Error(t, err)
	})
}
