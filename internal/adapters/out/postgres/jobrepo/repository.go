package jobrepo

import (
	"context"
	"errors"
	"time"

	"parcelflow/internal/core/domain/model/job"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormJobRepository implements JobRepository using GORM.
type GormJobRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormJobRepository creates a new GORM job repository.
func NewGormJobRepository(db *gorm.DB, tracker aggregateTracker) *GormJobRepository {
	return &GormJobRepository{
		db:      db,
		tracker: tracker,
	}
}

func orderedSteps(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func orderedParcels(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// AddJobs saves a batch of new jobs, steps included, to the database.
func (r *GormJobRepository) AddJobs(ctx context.Context, jobs []*job.Job) error {
	if len(jobs) == 0 {
		return nil
	}

	dtos := make([]JobDTO, 0, len(jobs))
	for _, aggregate := range jobs {
		if err := aggregate.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, jobFromDomain(aggregate))
	}

	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return err
	}

	for _, aggregate := range jobs {
		r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	}
	return nil
}

// UpdateJob saves progress changes to an existing job. The route itself is
// immutable after creation; only the job status, its start time and the done
// flags of the steps change.
func (r *GormJobRepository) UpdateJob(ctx context.Context, aggregate *job.Job) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := jobFromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&JobDTO{}).
		Where("id = ?", dto.ID).
		Select("status", "started_at").
		Updates(map[string]any{
			"status":     dto.Status,
			"started_at": dto.StartedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("job", aggregate.ID().String())
	}

	for _, step := range dto.Steps {
		err := r.db.WithContext(ctx).Model(&JobStepDTO{}).
			Where("job_id = ? AND position = ?", dto.ID, step.Position).
			Update("done", step.Done).Error
		if err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetJob retrieves a job by ID, its steps in route order.
func (r *GormJobRepository) GetJob(ctx context.Context, id kernel.UUID) (*job.Job, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto JobDTO
	err := r.db.WithContext(ctx).
		Preload("Steps", orderedSteps).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("job", id.String())
		}
		return nil, err
	}

	return jobToDomain(dto)
}

// GetActiveJobsByVehicle retrieves a vehicle's pending and in-progress jobs,
// in-progress first, then oldest first.
func (r *GormJobRepository) GetActiveJobsByVehicle(ctx context.Context, vehicleID kernel.UUID) ([]*job.Job, error) {
	if err := vehicleID.Validate(); err != nil {
		return nil, err
	}

	var dtos []JobDTO
	err := r.db.WithContext(ctx).
		Preload("Steps", orderedSteps).
		Where("vehicle_id = ? AND status IN ?",
			vehicleID.Bytes(), []int{int(job.StatusPending), int(job.StatusInProgress)}).
		Order("status DESC, created_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	jobs := make([]*job.Job, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := jobToDomain(dto)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, aggregate)
	}

	return jobs, nil
}

// AddTransferJob saves a new transfer job to the database.
func (r *GormJobRepository) AddTransferJob(ctx context.Context, aggregate *job.TransferJob) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := transferFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateTransferJob saves changes to an existing transfer job. The enrolled
// parcel rows are replaced wholesale; the set only grows while the job is
// pending and is frozen afterwards, so the rewrite stays small.
func (r *GormJobRepository) UpdateTransferJob(ctx context.Context, aggregate *job.TransferJob) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := transferFromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&TransferJobDTO{}).
		Where("id = ?", dto.ID).
		Select("status").
		Updates(map[string]any{"status": dto.Status})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("transfer job", aggregate.ID().String())
	}

	err := r.db.WithContext(ctx).
		Where("transfer_job_id = ?", dto.ID).
		Delete(&TransferParcelDTO{}).Error
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

// GetTransferJob retrieves a transfer job by ID, its parcels in enrollment
// order.
func (r *GormJobRepository) GetTransferJob(ctx context.Context, id kernel.UUID) (*job.TransferJob, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TransferJobDTO
	err := r.db.WithContext(ctx).
		Preload("Parcels", orderedParcels).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("transfer job", id.String())
		}
		return nil, err
	}

	return transferToDomain(dto)
}

// GetPendingTransferJob retrieves the pending transfer job of one warehouse
// connection and night, if any.
func (r *GormJobRepository) GetPendingTransferJob(
	ctx context.Context,
	connectionKey string,
	date time.Time,
) (*job.TransferJob, error) {
	if connectionKey == "" {
		return nil, errs.NewValueIsRequiredError("connectionKey")
	}

	var dto TransferJobDTO
	err := r.db.WithContext(ctx).
		Preload("Parcels", orderedParcels).
		Where("connection_key = ? AND date = ? AND status = ?",
			connectionKey, date, int(job.StatusPending)).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("transfer job", connectionKey)
		}
		return nil, err
	}

	return transferToDomain(dto)
}
