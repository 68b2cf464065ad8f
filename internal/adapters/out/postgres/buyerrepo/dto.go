// Package buyerrepo persists buyer accounts and their attached parcels.
package buyerrepo

import (
	"parcelflow/internal/core/domain/model/buyer"
	"parcelflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// BuyerDTO represents the database structure for buyer aggregates.
type BuyerDTO struct {
	ID      uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Parcels []BuyerParcelDTO `gorm:"foreignKey:BuyerID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming convention.
func (BuyerDTO) TableName() string {
	return "buyers"
}

// BuyerParcelDTO is one parcel attached to a buyer account.
type BuyerParcelDTO struct {
	BuyerID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	ParcelID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position int
}

// TableName overrides GORM's default naming convention.
func (BuyerParcelDTO) TableName() string {
	return "buyer_parcels"
}

func fromDomain(aggregate *buyer.Buyer) BuyerDTO {
	parcelIDs := aggregate.ParcelIDs()
	parcelDTOs := make([]BuyerParcelDTO, 0, len(parcelIDs))
	for i, parcelID := range parcelIDs {
		parcelDTOs = append(parcelDTOs, BuyerParcelDTO{
			BuyerID:  aggregate.ID().Bytes(),
			ParcelID: parcelID.Bytes(),
			Position: i,
		})
	}

	return BuyerDTO{
		ID:      aggregate.ID().Bytes(),
		Parcels: parcelDTOs,
	}
}

func toDomain(dto BuyerDTO) (*buyer.Buyer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	parcelIDs := make([]kernel.UUID, 0, len(dto.Parcels))
	for _, parcelDTO := range dto.Parcels {
		parcelID, err := kernel.UUIDFromBytes(parcelDTO.ParcelID[:])
		if err != nil {
			return nil, err
		}
		parcelIDs = append(parcelIDs, parcelID)
	}

	return buyer.RestoreBuyer(id, parcelIDs)
}
