package buyerrepo

import (
	"context"
	"errors"

	"parcelflow/internal/core/domain/model/buyer"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormBuyerRepository implements BuyerRepository using GORM.
type GormBuyerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormBuyerRepository creates a new GORM buyer repository.
func NewGormBuyerRepository(db *gorm.DB, tracker aggregateTracker) *GormBuyerRepository {
	return &GormBuyerRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new buyer to the database.
func (r *GormBuyerRepository) Add(ctx context.Context, aggregate *buyer.Buyer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves changes to an existing buyer. The attached parcel rows are
// replaced wholesale.
func (r *GormBuyerRepository) Update(ctx context.Context, aggregate *buyer.Buyer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	var count int64
	err := r.db.WithContext(ctx).Model(&BuyerDTO{}).
		Where("id = ?", dto.ID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("buyer", aggregate.ID().String())
	}

	err = r.db.WithContext(ctx).
		Where("buyer_id = ?", dto.ID).
		Delete(&BuyerParcelDTO{}).Error
	if err != nil {
		return err
	}
	if len(dto.Parcels) > 0 {
		if err := r.db.WithContext(ctx).Create(&dto.Parcels).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a buyer by ID, parcels in attachment order.
func (r *GormBuyerRepository) Get(ctx context.Context, id kernel.UUID) (*buyer.Buyer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BuyerDTO
	err := r.db.WithContext(ctx).
		Preload("Parcels", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("buyer", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
