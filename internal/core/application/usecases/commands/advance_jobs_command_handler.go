package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"parcelflow/internal/core/domain/model/job"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/core/domain/model/vehicle"
	"parcelflow/internal/core/ports"
	"parcelflow/internal/pkg/metrics"
)

const (
	// transferDepartureHour is the local hour at which pending night trips
	// depart.
	transferDepartureHour = 20

	// transferEarliestArrivalHour and transferLatestArrivalHour bound the
	// morning window in which night trips arrive. At the earliest hour
	// arrival is probabilistic, from the next hour on it is certain.
	transferEarliestArrivalHour = 4
	transferLatestArrivalHour   = 6

	// transferEarlyArrivalChance is the per-sweep probability of a trip
	// arriving during the earliest hour.
	transferEarlyArrivalChance = 0.3
)

// ChanceFunc supplies randomness for probabilistic sweep decisions.
// Implementations return a value in [0, 1).
type ChanceFunc func() float64

// AdvanceJobsCommandHandler is the progress generator. Each sweep advances
// every active vehicle along its current job and moves night transfer trips
// through their departure and arrival windows, emitting the parcel lifecycle
// events that the simulated movement implies.
//
// A vehicle's current job is its single in-progress one; a vehicle with more
// than one job in progress is corrupt state and fails the sweep for that
// vehicle. Vehicles without remaining work are dropped from the active set.
type AdvanceJobsCommandHandler struct {
	uowFactory ProgressUoWFactory
	tracker    ports.ProgressTracker
	recorder   ParcelEventRecorder
	chance     ChanceFunc
	logger     *slog.Logger
	metrics    *metrics.ServiceMetrics
}

// NewAdvanceJobsCommandHandler creates the progress generator handler.
func NewAdvanceJobsCommandHandler(
	uowFactory ProgressUoWFactory,
	tracker ports.ProgressTracker,
	recorder ParcelEventRecorder,
	chance ChanceFunc,
	logger *slog.Logger,
	serviceMetrics *metrics.ServiceMetrics,
) AdvanceJobsCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return AdvanceJobsCommandHandler{
		uowFactory: uowFactory,
		tracker:    tracker,
		recorder:   recorder,
		chance:     chance,
		logger:     logger.With("component", "progress"),
		metrics:    serviceMetrics,
	}
}

// Handle runs one sweep. Failures of individual vehicles or trips are
// collected so one bad aggregate does not stall the rest of the fleet.
func (h *AdvanceJobsCommandHandler) Handle(ctx context.Context, cmd AdvanceJobsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	started := time.Now()
	err := errors.Join(
		h.sweepVehicles(ctx, cmd.Now()),
		h.sweepTransfers(ctx, cmd.Now()),
	)

	if h.metrics != nil {
		h.metrics.SweepDuration.Observe(float64(time.Since(started).Milliseconds()))
	}
	return err
}

func (h *AdvanceJobsCommandHandler) sweepVehicles(ctx context.Context, now time.Time) error {
	vehicleIDs, err := h.tracker.ActiveVehicles(ctx)
	if err != nil {
		return err
	}

	var errs []error
	for _, vehicleID := range vehicleIDs {
		if err = h.advanceVehicle(ctx, vehicleID, now); err != nil {
			h.logger.Error("failed to advance vehicle",
				"vehicle_id", vehicleID, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h *AdvanceJobsCommandHandler) advanceVehicle(ctx context.Context, vehicleID kernel.UUID, now time.Time) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	jobs, err := uow.JobRepository().GetActiveJobsByVehicle(ctx, vehicleID)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return h.tracker.UntrackVehicle(ctx, vehicleID)
	}

	active, err := currentJob(vehicleID, jobs)
	if err != nil {
		return err
	}

	w, err := uow.WarehouseRepository().Get(ctx, active.WarehouseID())
	if err != nil {
		return err
	}

	if active.Status() == job.StatusPending {
		return h.startJob(ctx, uow, active, vehicleID, now)
	}

	return h.progressJob(ctx, uow, active, vehicleID, w.Location(), now)
}

// currentJob picks the vehicle's job for this sweep: its in-progress job, or
// the oldest pending one when nothing is running yet.
func currentJob(vehicleID kernel.UUID, jobs []*job.Job) (*job.Job, error) {
	var active *job.Job
	inProgress := 0

	for _, j := range jobs {
		if j.Status() == job.StatusInProgress {
			inProgress++
			active = j
		}
	}
	if inProgress > 1 {
		return nil, fmt.Errorf("vehicle %s has %d jobs in progress", vehicleID, inProgress)
	}
	if active == nil {
		active = jobs[0]
	}
	return active, nil
}

// startJob performs the first touch of a pending job: it goes in progress
// and, for delivery routes, every parcel on board leaves the warehouse.
func (h *AdvanceJobsCommandHandler) startJob(
	ctx context.Context,
	uow ProgressUoW,
	active *job.Job,
	vehicleID kernel.UUID,
	now time.Time,
) error {
	if err := active.Start(now); err != nil {
		return err
	}
	if err := uow.JobRepository().UpdateJob(ctx, active); err != nil {
		return err
	}
	if err := uow.Commit(ctx); err != nil {
		return err
	}

	if active.Kind() != vehicle.KindDelivery {
		return nil
	}
	for _, step := range active.Steps() {
		event := parcel.DeliveryStarted{Parcel: step.ParcelID(), At: now, Vehicle: vehicleID}
		if err := h.recorder.Record(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

// progressJob moves an in-progress job along its route: steps whose arrival
// time has passed fire their events, a fully traversed route completes, and
// everything else updates the vehicle's live position.
func (h *AdvanceJobsCommandHandler) progressJob(
	ctx context.Context,
	uow ProgressUoW,
	active *job.Job,
	vehicleID kernel.UUID,
	warehouseLocation kernel.Location,
	now time.Time,
) error {
	elapsed, err := active.Elapsed(now)
	if err != nil {
		return err
	}

	var emitted []parcel.Event
	var lastReached *kernel.Location

	for {
		step, idx, ok := active.NextUndoneStep()
		if !ok || elapsed < step.ArrivalOffset() {
			break
		}

		if err = active.MarkStepDone(idx); err != nil {
			return err
		}
		reached := step.Location()
		lastReached = &reached

		if active.Kind() == vehicle.KindPickup {
			emitted = append(emitted, parcel.PickedUp{Parcel: step.ParcelID(), At: now, Vehicle: vehicleID})
		} else {
			emitted = append(emitted, parcel.Delivered{Parcel: step.ParcelID(), At: now})
		}
	}

	completed := false
	if active.AllStepsDone() && elapsed > active.Duration() {
		if err = active.Complete(); err != nil {
			return err
		}
		completed = true
	}

	if err = uow.JobRepository().UpdateJob(ctx, active); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, event := range emitted {
		if err = h.recorder.Record(ctx, event); err != nil {
			return err
		}
	}

	if completed {
		return h.completeJob(ctx, active, vehicleID, warehouseLocation, now)
	}

	if lastReached != nil {
		return h.tracker.SetVehicleLocation(ctx, vehicleID, *lastReached)
	}
	if active.Kind() == vehicle.KindDelivery {
		position, posErr := routePosition(active, warehouseLocation, elapsed)
		if posErr != nil {
			return posErr
		}
		return h.tracker.SetVehicleLocation(ctx, vehicleID, position)
	}
	return nil
}

// completeJob parks the vehicle back at its warehouse. A finished pickup
// route unloads: every collected parcel arrives at the warehouse.
func (h *AdvanceJobsCommandHandler) completeJob(
	ctx context.Context,
	active *job.Job,
	vehicleID kernel.UUID,
	warehouseLocation kernel.Location,
	now time.Time,
) error {
	if active.Kind() == vehicle.KindPickup {
		for _, step := range active.Steps() {
			event := parcel.DeliveredToWarehouse{Parcel: step.ParcelID(), At: now, Warehouse: active.WarehouseID()}
			if err := h.recorder.Record(ctx, event); err != nil {
				return err
			}
		}
	}
	return h.tracker.SetVehicleLocation(ctx, vehicleID, warehouseLocation)
}

// routePosition estimates where the vehicle is between stops, linearly
// interpolating by elapsed time. Before the first stop the route's origin is
// the warehouse; after the last stop the vehicle is heading back to it.
func routePosition(active *job.Job, warehouseLocation kernel.Location, elapsed time.Duration) (kernel.Location, error) {
	fromLocation := warehouseLocation
	fromOffset := time.Duration(0)
	if last, ok := active.LastDoneStep(); ok {
		fromLocation = last.Location()
		fromOffset = last.ArrivalOffset()
	}

	toLocation := warehouseLocation
	toOffset := active.Duration()
	if next, _, ok := active.NextUndoneStep(); ok {
		toLocation = next.Location()
		toOffset = next.ArrivalOffset()
	}

	span := toOffset - fromOffset
	ratio := 1.0
	if span > 0 {
		ratio = float64(elapsed-fromOffset) / float64(span)
	}
	return fromLocation.InterpolateTo(toLocation, ratio)
}

func (h *AdvanceJobsCommandHandler) sweepTransfers(ctx context.Context, now time.Time) error {
	tripIDs, err := h.tracker.ActiveTransferJobs(ctx)
	if err != nil {
		return err
	}

	var errs []error
	for _, tripID := range tripIDs {
		if err = h.advanceTransfer(ctx, tripID, now); err != nil {
			h.logger.Error("failed to advance transfer trip",
				"transfer_job_id", tripID, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h *AdvanceJobsCommandHandler) advanceTransfer(ctx context.Context, tripID kernel.UUID, now time.Time) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	trip, err := uow.JobRepository().GetTransferJob(ctx, tripID)
	if err != nil {
		return err
	}

	switch trip.Status() {
	case job.StatusPending:
		if now.Hour() < transferDepartureHour {
			return nil
		}
		return h.departTransfer(ctx, uow, trip, now)

	case job.StatusInProgress:
		if !h.transferArrives(now) {
			return nil
		}
		return h.arriveTransfer(ctx, uow, trip, now)

	default:
		return h.tracker.UntrackTransferJob(ctx, tripID)
	}
}

// transferArrives decides whether an in-flight night trip reaches its
// destination this sweep.
func (h *AdvanceJobsCommandHandler) transferArrives(now time.Time) bool {
	hour := now.Hour()
	if hour > transferEarliestArrivalHour && hour <= transferLatestArrivalHour {
		return true
	}
	return hour == transferEarliestArrivalHour && h.chance() < transferEarlyArrivalChance
}

func (h *AdvanceJobsCommandHandler) departTransfer(
	ctx context.Context,
	uow ProgressUoW,
	trip *job.TransferJob,
	now time.Time,
) error {
	if err := trip.Start(); err != nil {
		return err
	}
	if err := uow.JobRepository().UpdateTransferJob(ctx, trip); err != nil {
		return err
	}
	if err := uow.Commit(ctx); err != nil {
		return err
	}

	for _, parcelID := range trip.ParcelIDs() {
		event := parcel.TransferStarted{Parcel: parcelID, At: now}
		if err := h.recorder.Record(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

func (h *AdvanceJobsCommandHandler) arriveTransfer(
	ctx context.Context,
	uow ProgressUoW,
	trip *job.TransferJob,
	now time.Time,
) error {
	if err := trip.Complete(); err != nil {
		return err
	}
	if err := uow.JobRepository().UpdateTransferJob(ctx, trip); err != nil {
		return err
	}
	if err := uow.Commit(ctx); err != nil {
		return err
	}

	for _, parcelID := range trip.ParcelIDs() {
		event := parcel.TransferCompleted{Parcel: parcelID, At: now, Warehouse: trip.Destination()}
		if err := h.recorder.Record(ctx, event); err != nil {
			return err
		}
	}
	return h.tracker.UntrackTransferJob(ctx, trip.ID())
}
