package commands

import (
	"context"

	"parcelflow/internal/core/domain/model/job"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/order"
	"parcelflow/internal/core/domain/model/vehicle"
	"parcelflow/internal/core/ports"
	"parcelflow/internal/pkg/errs"
	"parcelflow/internal/pkg/metrics"
)

const (
	// orderPageSize bounds the orders handed to the optimizer at once.
	orderPageSize = 50

	// capacityFloor is the remaining daily capacity a vehicle must exceed
	// to receive another job.
	capacityFloor = 0
)

// CreateJobsCommandHandler batches pending orders into vehicle jobs. Orders
// are consumed page by page; each page is routed by the external optimizer
// and converted to jobs in one transaction that also decrements the assigned
// vehicles' capacity and deletes the consumed orders.
//
// Retrying a partially failed batch run re-processes the surviving orders,
// so a retry after the optimizer call but before the commit can produce
// different routes than the aborted attempt.
type CreateJobsCommandHandler struct {
	uowFactory BatchingUoWFactory
	optimizer  ports.RouteOptimizer
	tracker    ports.ProgressTracker
	metrics    *metrics.ServiceMetrics
}

// NewCreateJobsCommandHandler creates a handler for job batching.
func NewCreateJobsCommandHandler(
	uowFactory BatchingUoWFactory,
	optimizer ports.RouteOptimizer,
	tracker ports.ProgressTracker,
	serviceMetrics *metrics.ServiceMetrics,
) CreateJobsCommandHandler {
	return CreateJobsCommandHandler{
		uowFactory: uowFactory,
		optimizer:  optimizer,
		tracker:    tracker,
		metrics:    serviceMetrics,
	}
}

// Handle processes the batching command, looping until the warehouse has no
// pending orders left for the day and direction. Fails with an object not
// found error when orders are pending but no vehicle has capacity.
func (h *CreateJobsCommandHandler) Handle(ctx context.Context, cmd CreateJobsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	for {
		processed, err := h.processPage(ctx, cmd)
		if err != nil {
			return err
		}
		if processed < orderPageSize {
			return nil
		}
	}
}

// processPage consumes one page of orders and returns how many it found.
func (h *CreateJobsCommandHandler) processPage(ctx context.Context, cmd CreateJobsCommand) (int, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	page, err := uow.OrderRepository().GetPage(ctx, cmd.WarehouseID(), cmd.Date(), cmd.Kind(), orderPageSize)
	if err != nil {
		return 0, err
	}
	if len(page) == 0 {
		return 0, nil
	}

	vehicles, err := uow.VehicleRepository().GetByWarehouseAndKind(ctx,
		cmd.WarehouseID(), cmd.Kind(), capacityFloor)
	if err != nil {
		return 0, err
	}
	if len(vehicles) == 0 {
		return 0, errs.NewObjectNotFoundError("vehicles for warehouse", cmd.WarehouseID())
	}

	w, err := uow.WarehouseRepository().Get(ctx, cmd.WarehouseID())
	if err != nil {
		return 0, err
	}

	plans, err := h.optimizer.Optimize(ctx, w.Location(), page, vehicles)
	if err != nil {
		return 0, err
	}

	assigned, err := h.applyPlans(ctx, uow, cmd, vehicles, plans)
	if err != nil {
		return 0, err
	}

	if err = uow.OrderRepository().Remove(ctx, orderIDs(page)); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	for _, vehicleID := range assigned {
		if err = h.tracker.TrackVehicle(ctx, vehicleID); err != nil {
			return 0, err
		}
	}

	if h.metrics != nil {
		h.metrics.JobsCreated.WithLabelValues(cmd.Kind().String()).Add(float64(len(assigned)))
	}

	return len(page), nil
}

// applyPlans converts optimizer plans into jobs and charges each assigned
// vehicle's capacity. Returns the assigned vehicle ids.
func (h *CreateJobsCommandHandler) applyPlans(
	ctx context.Context,
	uow BatchingUoW,
	cmd CreateJobsCommand,
	vehicles []*vehicle.Vehicle,
	plans []ports.RoutePlan,
) ([]kernel.UUID, error) {
	byID := make(map[kernel.UUID]*vehicle.Vehicle, len(vehicles))
	for _, v := range vehicles {
		byID[v.ID()] = v
	}

	jobs := make([]*job.Job, 0, len(plans))
	assigned := make([]kernel.UUID, 0, len(plans))

	for _, plan := range plans {
		v, ok := byID[plan.VehicleID]
		if !ok {
			return nil, errs.NewObjectNotFoundError("vehicle", plan.VehicleID)
		}

		steps := make([]job.Step, 0, len(plan.Steps))
		for _, planStep := range plan.Steps {
			step, err := job.NewStep(planStep.ParcelID, planStep.Location, planStep.ArrivalOffset)
			if err != nil {
				return nil, err
			}
			steps = append(steps, step)
		}

		newJob, err := job.NewJob(kernel.NewUUID(), cmd.WarehouseID(), plan.VehicleID,
			cmd.Kind(), cmd.Date(), plan.Duration, steps)
		if err != nil {
			return nil, err
		}

		if err = v.ConsumeCapacity(int(plan.Duration.Seconds())); err != nil {
			return nil, err
		}
		if err = uow.VehicleRepository().Update(ctx, v); err != nil {
			return nil, err
		}

		jobs = append(jobs, newJob)
		assigned = append(assigned, plan.VehicleID)
	}

	if err := uow.JobRepository().AddJobs(ctx, jobs); err != nil {
		return nil, err
	}
	return assigned, nil
}

func orderIDs(orders []*order.Order) []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID())
	}
	return ids
}
