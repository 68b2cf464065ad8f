// Package buyer holds the registry of parcel owners. A buyer record is
// created lazily the first time a parcel is accepted for that account.
package buyer

import (
	"errors"

	"parcelflow/internal/core/domain/model/kernel"
)

// ErrBuyerIsNotConstructed is returned when a Buyer instance was not created
// through the NewBuyer or RestoreBuyer factory methods.
var ErrBuyerIsNotConstructed = errors.New("Buyer must be created via NewBuyer constructor")

// Buyer is a customer account with the parcels currently attached to it.
type Buyer struct {
	id        kernel.UUID
	parcelIDs []kernel.UUID

	isConstructed bool
}

// NewBuyer creates a buyer without parcels.
func NewBuyer(id kernel.UUID) (*Buyer, error) {
	return RestoreBuyer(id, nil)
}

// RestoreBuyer reconstructs a buyer from persistence.
func RestoreBuyer(id kernel.UUID, parcelIDs []kernel.UUID) (*Buyer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	ownParcels := make([]kernel.UUID, len(parcelIDs))
	copy(ownParcels, parcelIDs)

	return &Buyer{id: id, parcelIDs: ownParcels, isConstructed: true}, nil
}

// Validate ensures the Buyer was created through a constructor.
func (b *Buyer) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBuyerIsNotConstructed
	}
	return nil
}

// ID returns the buyer's unique identifier.
func (b *Buyer) ID() kernel.UUID {
	return b.id
}

// ParcelIDs returns a copy of the attached parcels.
func (b *Buyer) ParcelIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(b.parcelIDs))
	copy(ids, b.parcelIDs)
	return ids
}

// AttachParcel links a parcel to the buyer. Attaching an already linked
// parcel is a no-op.
func (b *Buyer) AttachParcel(parcelID kernel.UUID) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if err := parcelID.Validate(); err != nil {
		return err
	}

	for _, id := range b.parcelIDs {
		if id.IsEqual(parcelID) {
			return nil
		}
	}

	b.parcelIDs = append(b.parcelIDs, parcelID)
	return nil
}

// DetachParcel unlinks a parcel from the buyer. Detaching a parcel that is
// not linked is a no-op.
func (b *Buyer) DetachParcel(parcelID kernel.UUID) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if err := parcelID.Validate(); err != nil {
		return err
	}

	for i, id := range b.parcelIDs {
		if id.IsEqual(parcelID) {
			b.parcelIDs = append(b.parcelIDs[:i], b.parcelIDs[i+1:]...)
			return nil
		}
	}
	return nil
}
