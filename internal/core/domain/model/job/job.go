// Package job models the units of scheduled vehicle work: Jobs are one
// vehicle's optimized route for one day, TransferJobs are nightly
// inter-warehouse trips coalescing all parcels bound for the same connection.
package job

import (
	"errors"
	"fmt"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/vehicle"
	"parcelflow/internal/pkg/errs"
)

var (
	// ErrJobIsNotConstructed is returned when a Job instance was not created
	// through the NewJob or RestoreJob factory methods.
	ErrJobIsNotConstructed = errors.New("Job must be created via NewJob constructor")

	// ErrJobNotStarted is returned when elapsed time is requested for a job
	// that has not been started yet.
	ErrJobNotStarted = errors.New("job has not been started")
)

// Status represents the execution state of a Job or TransferJob.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusPending means the job is scheduled but not yet started.
	StatusPending

	// StatusInProgress means the job is currently being executed.
	StatusInProgress

	// StatusCompleted is the terminal state.
	StatusCompleted
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "PENDING"
	case StatusInProgress:
		return "IN_PROGRESS"
	case StatusCompleted:
		return "COMPLETED"
	default:
		return "Unknown"
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if s != StatusPending && s != StatusInProgress && s != StatusCompleted {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid job status", s))
	}
	return nil
}

// Step is one stop on a vehicle route: a parcel's pickup or delivery point
// and the offset from the job start at which the vehicle is scheduled there.
type Step struct {
	parcelID      kernel.UUID
	location      kernel.Location
	arrivalOffset time.Duration
	done          bool
}

// NewStep creates a route step.
func NewStep(parcelID kernel.UUID, location kernel.Location, arrivalOffset time.Duration) (Step, error) {
	if err := errors.Join(parcelID.Validate(), location.Validate()); err != nil {
		return Step{}, err
	}
	if arrivalOffset < 0 {
		return Step{}, errs.NewValueIsInvalidErrorWithCause("arrivalOffset",
			fmt.Errorf("%s is negative", arrivalOffset))
	}

	return Step{parcelID: parcelID, location: location, arrivalOffset: arrivalOffset}, nil
}

// RestoreStep reconstructs a step from persistence, including its done flag.
func RestoreStep(parcelID kernel.UUID, location kernel.Location, arrivalOffset time.Duration, done bool) (Step, error) {
	s, err := NewStep(parcelID, location, arrivalOffset)
	if err != nil {
		return Step{}, err
	}
	s.done = done
	return s, nil
}

// ParcelID returns the parcel served at this stop.
func (s Step) ParcelID() kernel.UUID {
	return s.parcelID
}

// Location returns the stop position.
func (s Step) Location() kernel.Location {
	return s.location
}

// ArrivalOffset returns the scheduled offset from the job start.
func (s Step) ArrivalOffset() time.Duration {
	return s.arrivalOffset
}

// Done reports whether the stop has been reached.
func (s Step) Done() bool {
	return s.done
}

// Job is one vehicle's route for one day, produced by the route optimizer.
// Steps are ordered by ascending arrival offset; per-step done flags and the
// start timestamp carry the progress generator's cursor between sweeps.
type Job struct {
	id          kernel.UUID
	warehouseID kernel.UUID
	vehicleID   kernel.UUID
	kind        vehicle.Kind
	status      Status
	date        time.Time
	duration    time.Duration
	steps       []Step
	startedAt   *time.Time

	isConstructed bool
}

// NewJob creates a pending job from an optimizer route.
// Steps must be ordered by ascending arrival offset.
func NewJob(
	id, warehouseID, vehicleID kernel.UUID,
	kind vehicle.Kind,
	date time.Time,
	duration time.Duration,
	steps []Step,
) (*Job, error) {
	return RestoreJob(id, warehouseID, vehicleID, kind, StatusPending, date, duration, steps, nil)
}

// RestoreJob reconstructs a job from persistence.
func RestoreJob(
	id, warehouseID, vehicleID kernel.UUID,
	kind vehicle.Kind,
	status Status,
	date time.Time,
	duration time.Duration,
	steps []Step,
	startedAt *time.Time,
) (*Job, error) {
	if err := errors.Join(
		id.Validate(),
		warehouseID.Validate(),
		vehicleID.Validate(),
		kind.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if date.IsZero() {
		return nil, errs.NewValueIsRequiredError("date")
	}
	if duration <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("duration",
			fmt.Errorf("%s is not greater than 0", duration))
	}
	if len(steps) == 0 {
		return nil, errs.NewValueIsRequiredError("steps")
	}
	for i := 1; i < len(steps); i++ {
		if steps[i].arrivalOffset < steps[i-1].arrivalOffset {
			return nil, errs.NewValueIsInvalidErrorWithCause("steps",
				fmt.Errorf("step %d arrives before step %d", i, i-1))
		}
	}

	ownSteps := make([]Step, len(steps))
	copy(ownSteps, steps)

	return &Job{
		id:            id,
		warehouseID:   warehouseID,
		vehicleID:     vehicleID,
		kind:          kind,
		status:        status,
		date:          date,
		duration:      duration,
		steps:         ownSteps,
		startedAt:     startedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Job was created through a constructor.
func (j *Job) Validate() error {
	if j == nil || !j.isConstructed {
		return ErrJobIsNotConstructed
	}
	return nil
}

// ID returns the job's unique identifier.
func (j *Job) ID() kernel.UUID {
	return j.id
}

// WarehouseID returns the warehouse the route starts and ends at.
func (j *Job) WarehouseID() kernel.UUID {
	return j.warehouseID
}

// VehicleID returns the vehicle executing the route.
func (j *Job) VehicleID() kernel.UUID {
	return j.vehicleID
}

// Kind returns whether this is a pickup or delivery route.
func (j *Job) Kind() vehicle.Kind {
	return j.kind
}

// Status returns the execution state.
func (j *Job) Status() Status {
	return j.status
}

// Date returns the calendar day the route is scheduled for.
func (j *Job) Date() time.Time {
	return j.date
}

// Duration returns the optimizer's total route duration.
func (j *Job) Duration() time.Duration {
	return j.duration
}

// Steps returns a copy of the ordered route steps.
func (j *Job) Steps() []Step {
	steps := make([]Step, len(j.steps))
	copy(steps, j.steps)
	return steps
}

// StartedAt returns the time the job went in progress, or nil.
func (j *Job) StartedAt() *time.Time {
	return j.startedAt
}

// Start transitions the job from pending to in progress at the given time.
func (j *Job) Start(now time.Time) error {
	if err := j.Validate(); err != nil {
		return err
	}
	if j.status != StatusPending {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to start", j.status))
	}

	j.status = StatusInProgress
	j.startedAt = &now
	return nil
}

// Complete transitions the job from in progress to completed.
func (j *Job) Complete() error {
	if err := j.Validate(); err != nil {
		return err
	}
	if j.status != StatusInProgress {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to complete", j.status))
	}

	j.status = StatusCompleted
	return nil
}

// Elapsed returns the time spent since the job was started.
func (j *Job) Elapsed(now time.Time) (time.Duration, error) {
	if err := j.Validate(); err != nil {
		return 0, err
	}
	if j.startedAt == nil {
		return 0, ErrJobNotStarted
	}

	return now.Sub(*j.startedAt), nil
}

// NextUndoneStep returns the first step not yet reached, with its index.
func (j *Job) NextUndoneStep() (Step, int, bool) {
	for i, s := range j.steps {
		if !s.done {
			return s, i, true
		}
	}
	return Step{}, 0, false
}

// LastDoneStep returns the most recently completed step. When no step is done
// yet the route is still between the warehouse and the first stop, and the
// second return value is false.
func (j *Job) LastDoneStep() (Step, bool) {
	for i := len(j.steps) - 1; i >= 0; i-- {
		if j.steps[i].done {
			return j.steps[i], true
		}
	}
	return Step{}, false
}

// MarkStepDone flags the step at index as reached.
func (j *Job) MarkStepDone(index int) error {
	if err := j.Validate(); err != nil {
		return err
	}
	if index < 0 || index >= len(j.steps) {
		return errs.NewValueIsOutOfRangeError("step index", index, 0, len(j.steps)-1)
	}

	j.steps[index].done = true
	return nil
}

// AllStepsDone reports whether every stop has been reached.
func (j *Job) AllStepsDone() bool {
	for _, s := range j.steps {
		if !s.done {
			return false
		}
	}
	return true
}
