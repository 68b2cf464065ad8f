package job

import (
	"errors"
	"fmt"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/errs"
)

// ErrTransferJobIsNotConstructed is returned when a TransferJob instance was
// not created through the NewTransferJob or RestoreTransferJob factory methods.
var ErrTransferJobIsNotConstructed = errors.New("TransferJob must be created via NewTransferJob constructor")

// nightCutoffHour is the local hour after which new transfers roll over to
// the next night.
const nightCutoffHour = 20

// ConnectionKey identifies the directed link between two warehouses.
// Transfer jobs for the same connection and night are consolidated.
func ConnectionKey(source, destination kernel.UUID) string {
	return fmt.Sprintf("%s-%s", source, destination)
}

// NextNight returns the calendar day of the upcoming transfer night: today
// when the cutoff hour has not passed yet, tomorrow otherwise.
func NextNight(now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if now.Hour() >= nightCutoffHour {
		day = day.AddDate(0, 0, 1)
	}
	return day
}

// TransferJob is a nightly trip moving all pending parcels of one warehouse
// connection. Parcels accumulate on the pending job until the night trip
// departs.
type TransferJob struct {
	id          kernel.UUID
	status      Status
	date        time.Time
	source      kernel.UUID
	destination kernel.UUID
	parcelIDs   []kernel.UUID

	isConstructed bool
}

// NewTransferJob creates a pending transfer job for a connection and night.
func NewTransferJob(id, source, destination kernel.UUID, date time.Time) (*TransferJob, error) {
	return RestoreTransferJob(id, StatusPending, date, source, destination, nil)
}

// RestoreTransferJob reconstructs a transfer job from persistence.
func RestoreTransferJob(
	id kernel.UUID,
	status Status,
	date time.Time,
	source, destination kernel.UUID,
	parcelIDs []kernel.UUID,
) (*TransferJob, error) {
	if err := errors.Join(
		id.Validate(),
		status.Validate(),
		source.Validate(),
		destination.Validate(),
	); err != nil {
		return nil, err
	}

	if date.IsZero() {
		return nil, errs.NewValueIsRequiredError("date")
	}
	if source.IsEqual(destination) {
		return nil, errs.NewValueIsInvalidErrorWithCause("destination",
			fmt.Errorf("%s equals the source warehouse", destination))
	}

	ownParcels := make([]kernel.UUID, len(parcelIDs))
	copy(ownParcels, parcelIDs)

	return &TransferJob{
		id:            id,
		status:        status,
		date:          date,
		source:        source,
		destination:   destination,
		parcelIDs:     ownParcels,
		isConstructed: true,
	}, nil
}

// Validate ensures the TransferJob was created through a constructor.
func (t *TransferJob) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTransferJobIsNotConstructed
	}
	return nil
}

// ID returns the transfer job's unique identifier.
func (t *TransferJob) ID() kernel.UUID {
	return t.id
}

// Status returns the execution state.
func (t *TransferJob) Status() Status {
	return t.status
}

// Date returns the night the trip is scheduled for.
func (t *TransferJob) Date() time.Time {
	return t.date
}

// Source returns the warehouse the trip departs from.
func (t *TransferJob) Source() kernel.UUID {
	return t.source
}

// Destination returns the warehouse the trip arrives at.
func (t *TransferJob) Destination() kernel.UUID {
	return t.destination
}

// ConnectionKey returns the directed connection identifier for this trip.
func (t *TransferJob) ConnectionKey() string {
	return ConnectionKey(t.source, t.destination)
}

// ParcelIDs returns a copy of the enrolled parcels.
func (t *TransferJob) ParcelIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(t.parcelIDs))
	copy(ids, t.parcelIDs)
	return ids
}

// Enroll adds a parcel to the trip. Enrolling an already present parcel is a
// no-op, so delivery of the same arrival notification twice stays harmless.
func (t *TransferJob) Enroll(parcelID kernel.UUID) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if err := parcelID.Validate(); err != nil {
		return err
	}
	if t.status != StatusPending {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to enroll a parcel", t.status))
	}

	for _, id := range t.parcelIDs {
		if id.IsEqual(parcelID) {
			return nil
		}
	}

	t.parcelIDs = append(t.parcelIDs, parcelID)
	return nil
}

// Start transitions the trip from pending to in progress.
func (t *TransferJob) Start() error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.status != StatusPending {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to start", t.status))
	}

	t.status = StatusInProgress
	return nil
}

// Complete transitions the trip from in progress to completed.
func (t *TransferJob) Complete() error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.status != StatusInProgress {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to complete", t.status))
	}

	t.status = StatusCompleted
	return nil
}
