package orderrepo

import (
	"context"
	"errors"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/order"
	"parcelflow/internal/core/domain/model/vehicle"
	"parcelflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
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

// GetPage retrieves up to limit orders for one warehouse, day and kind,
// oldest first by insertion order of the primary key.
func (r *GormOrderRepository) GetPage(
	ctx context.Context,
	warehouseID kernel.UUID,
	date time.Time,
	kind vehicle.Kind,
	limit int,
) ([]*order.Order, error) {
	if err := errors.Join(warehouseID.Validate(), kind.Validate()); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, errs.NewValueIsRequiredError("limit")
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("warehouse_id = ? AND kind = ? AND date = ?",
			warehouseID.Bytes(), int(kind), date).
		Order("id ASC").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}

	return orders, nil
}

// Remove deletes orders by their identifiers. Unknown identifiers are
// ignored.
func (r *GormOrderRepository) Remove(ctx context.Context, ids []kernel.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]any, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
		raw = append(raw, id.Bytes())
	}

	return r.db.WithContext(ctx).
		Where("id IN ?", raw).
		Delete(&OrderDTO{}).Error
}

// RemoveByParcel deletes all pending orders of a parcel.
func (r *GormOrderRepository) RemoveByParcel(ctx context.Context, parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Where("parcel_id = ?", parcelID.Bytes()).
		Delete(&OrderDTO{}).Error
}
