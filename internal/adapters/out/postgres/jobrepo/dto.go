// Package jobrepo persists vehicle jobs and warehouse transfer jobs. A job's
// route steps and a transfer job's enrolled parcels are stored as child rows
// keyed by position, so reconstruction preserves their order.
package jobrepo

import (
	"time"

	"parcelflow/internal/core/domain/model/job"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/vehicle"

	"github.com/google/uuid"
)

// JobDTO represents the database structure for vehicle job aggregates.
type JobDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	WarehouseID     uuid.UUID `gorm:"type:uuid;index"`
	VehicleID       uuid.UUID `gorm:"type:uuid;index:idx_jobs_vehicle_status"`
	Kind            int
	Status          int `gorm:"index:idx_jobs_vehicle_status"`
	Date            time.Time
	DurationSeconds int64
	StartedAt       *time.Time
	CreatedAt       time.Time
	Steps           []JobStepDTO `gorm:"foreignKey:JobID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming convention.
func (JobDTO) TableName() string {
	return "jobs"
}

// JobStepDTO is one route stop of a job, keyed by its position in the route.
type JobStepDTO struct {
	JobID                uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Position             int         `gorm:"primaryKey;autoIncrement:false"`
	ParcelID             uuid.UUID   `gorm:"type:uuid;index"`
	Location             LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
	ArrivalOffsetSeconds int64
	Done                 bool
}

// TableName overrides GORM's default naming convention.
func (JobStepDTO) TableName() string {
	return "job_steps"
}

// LocationDTO stores geographic coordinates embedded in the owning row.
type LocationDTO struct {
	Latitude  float64 `gorm:"type:double precision"`
	Longitude float64 `gorm:"type:double precision"`
}

// TransferJobDTO represents the database structure for transfer job
// aggregates. The (connection_key, date, status) index serves the
// pending-job lookup that consolidates arrivals onto one nightly trip.
type TransferJobDTO struct {
	ID            uuid.UUID           `gorm:"type:uuid;primaryKey"`
	ConnectionKey string              `gorm:"index:idx_transfer_jobs_pending"`
	Date          time.Time           `gorm:"index:idx_transfer_jobs_pending"`
	Status        int                 `gorm:"index:idx_transfer_jobs_pending"`
	SourceID      uuid.UUID           `gorm:"type:uuid"`
	DestinationID uuid.UUID           `gorm:"type:uuid"`
	Parcels       []TransferParcelDTO `gorm:"foreignKey:TransferJobID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming convention.
func (TransferJobDTO) TableName() string {
	return "transfer_jobs"
}

// TransferParcelDTO is one parcel enrolled on a transfer job.
type TransferParcelDTO struct {
	TransferJobID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ParcelID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position      int
}

// TableName overrides GORM's default naming convention.
func (TransferParcelDTO) TableName() string {
	return "transfer_job_parcels"
}

func jobFromDomain(aggregate *job.Job) JobDTO {
	steps := aggregate.Steps()
	stepDTOs := make([]JobStepDTO, 0, len(steps))
	for i, step := range steps {
		stepDTOs = append(stepDTOs, JobStepDTO{
			JobID:    aggregate.ID().Bytes(),
			Position: i,
			ParcelID: step.ParcelID().Bytes(),
			Location: LocationDTO{
				Latitude:  step.Location().Latitude(),
				Longitude: step.Location().Longitude(),
			},
			ArrivalOffsetSeconds: int64(step.ArrivalOffset().Seconds()),
			Done:                 step.Done(),
		})
	}

	return JobDTO{
		ID:              aggregate.ID().Bytes(),
		WarehouseID:     aggregate.WarehouseID().Bytes(),
		VehicleID:       aggregate.VehicleID().Bytes(),
		Kind:            int(aggregate.Kind()),
		Status:          int(aggregate.Status()),
		Date:            aggregate.Date(),
		DurationSeconds: int64(aggregate.Duration().Seconds()),
		StartedAt:       aggregate.StartedAt(),
		Steps:           stepDTOs,
	}
}

func jobToDomain(dto JobDTO) (*job.Job, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	warehouseID, err := kernel.UUIDFromBytes(dto.WarehouseID[:])
	if err != nil {
		return nil, err
	}

	vehicleID, err := kernel.UUIDFromBytes(dto.VehicleID[:])
	if err != nil {
		return nil, err
	}

	steps := make([]job.Step, 0, len(dto.Steps))
	for _, stepDTO := range dto.Steps {
		parcelID, err := kernel.UUIDFromBytes(stepDTO.ParcelID[:])
		if err != nil {
			return nil, err
		}

		location, err := kernel.NewLocation(stepDTO.Location.Latitude, stepDTO.Location.Longitude)
		if err != nil {
			return nil, err
		}

		step, err := job.RestoreStep(parcelID, location,
			time.Duration(stepDTO.ArrivalOffsetSeconds)*time.Second, stepDTO.Done)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}

	return job.RestoreJob(id, warehouseID, vehicleID,
		vehicle.Kind(dto.Kind), job.Status(dto.Status), dto.Date,
		time.Duration(dto.DurationSeconds)*time.Second, steps, dto.StartedAt)
}

func transferFromDomain(aggregate *job.TransferJob) TransferJobDTO {
	parcelIDs := aggregate.ParcelIDs()
	parcelDTOs := make([]TransferParcelDTO, 0, len(parcelIDs))
	for i, parcelID := range parcelIDs {
		parcelDTOs = append(parcelDTOs, TransferParcelDTO{
			TransferJobID: aggregate.ID().Bytes(),
			ParcelID:      parcelID.Bytes(),
			Position:      i,
		})
	}

	return TransferJobDTO{
		ID:            aggregate.ID().Bytes(),
		ConnectionKey: aggregate.ConnectionKey(),
		Date:          aggregate.Date(),
		Status:        int(aggregate.Status()),
		SourceID:      aggregate.Source().Bytes(),
		DestinationID: aggregate.Destination().Bytes(),
		Parcels:       parcelDTOs,
	}
}

func transferToDomain(dto TransferJobDTO) (*job.TransferJob, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	source, err := kernel.UUIDFromBytes(dto.SourceID[:])
	if err != nil {
		return nil, err
	}

	destination, err := kernel.UUIDFromBytes(dto.DestinationID[:])
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

	return job.RestoreTransferJob(id, job.Status(dto.Status), dto.Date,
		source, destination, parcelIDs)
}
