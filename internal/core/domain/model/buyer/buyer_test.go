package buyer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parcelflow/internal/core/domain/model/kernel"
)

func TestNewBuyer(t *testing.T) {
	t.Run("should create buyer without parcels", func(t *testing.T) {
		b, err := NewBuyer(kernel.NewUUID())
		require.NoError(t, err)

		assert.NoError(t, b.Validate())
		assert.Empty(t, b.ParcelIDs())
	})

	t.Run("should return error when id is empty", func(t *testing.T) {
		_, err := NewBuyer(kernel.UUID{})
		assert.Error(t, err)
	})
}

func TestBuyerAttachParcel(t *testing.T) {
	t.Run("should attach parcels", func(t *testing.T) {
		b, err := NewBuyer(kernel.NewUUID())
		require.NoError(t, err)

		first := kernel.NewUUID()
		second := kernel.NewUUID()
		require.NoError(t, b.AttachParcel(first))
		require.NoError(t, b.AttachParcel(second))

		assert.Equal(t, []kernel.UUID{first, second}, b.ParcelIDs())
	})

	t.Run("should ignore duplicate attach", func(t *testing.T) {
		b, err := NewBuyer(kernel.NewUUID())
		require.NoError(t, err)

		parcelID := kernel.NewUUID()
		require.NoError(t, b.AttachParcel(parcelID))
		require.NoError(t, b.AttachParcel(parcelID))

		assert.Len(t, b.ParcelIDs(), 1)
	})
}

func TestBuyerDetachParcel(t *testing.T) {
	t.Run("should detach linked parcel", func(t *testing.T) {
		b, err := NewBuyer(kernel.NewUUID())
		require.NoError(t, err)

		keep := kernel.NewUUID()
		drop := kernel.NewUUID()
		require.NoError(t, b.AttachParcel(keep))
		require.NoError(t, b.AttachParcel(drop))

		require.NoError(t, b.DetachParcel(drop))

		assert.Equal(t, []kernel.UUID{keep}, b.ParcelIDs())
	})

	t.Run("should ignore detach of unknown parcel", func(t *testing.T) {
		b, err := NewBuyer(kernel.NewUUID())
		require.NoError(t, err)

		require.NoError(t, b.DetachParcel(kernel.NewUUID()))
		assert.Empty(t, b.ParcelIDs())
	})
}

func TestBuyerValidate(t *testing.T) {
	t.Run("should return error for zero value buyer", func(t *testing.T) {
		var b Buyer
		assert.ErrorIs(t, b.Validate(), ErrBuyerIsNotConstructed)
	})
}
