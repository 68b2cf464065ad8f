package parcelrepo

import (
	"context"
	"fmt"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"

	"gorm.io/gorm"
)

// GormParcelEventRepository implements ParcelEventRepository using GORM.
type GormParcelEventRepository struct {
	db *gorm.DB
}

// NewGormParcelEventRepository creates a new GORM parcel event repository.
func NewGormParcelEventRepository(db *gorm.DB) *GormParcelEventRepository {
	return &GormParcelEventRepository{db: db}
}

// Append stores an event at the given stream position. The primary key on
// (parcel_id, seq) makes a second append at the same position fail, so two
// writers replaying the same stream cannot both win.
func (r *GormParcelEventRepository) Append(ctx context.Context, event parcel.Event, seq int) error {
	if event == nil {
		return fmt.Errorf("event is nil")
	}
	if err := event.ParcelID().Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(event, seq)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetStream retrieves all events of a parcel in sequence order. A parcel
// without events yields an empty slice, not an error; callers decide whether
// an empty stream is a missing parcel.
func (r *GormParcelEventRepository) GetStream(ctx context.Context, parcelID kernel.UUID) ([]parcel.Event, error) {
	if err := parcelID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ParcelEventDTO
	err := r.db.WithContext(ctx).
		Where("parcel_id = ?", parcelID.Bytes()).
		Order("seq ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]parcel.Event, 0, len(dtos))
	for _, dto := range dtos {
		event, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, nil
}

// RemoveStream deletes a parcel's events. Deleting a stream that does not
// exist is a no-op.
func (r *GormParcelEventRepository) RemoveStream(ctx context.Context, parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Where("parcel_id = ?", parcelID.Bytes()).
		Delete(&ParcelEventDTO{}).Error
}
