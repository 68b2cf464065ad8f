package commands

import (
	"context"
	"errors"
	"time"

	"parcelflow/internal/core/domain/model/job"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/order"
	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/core/domain/model/vehicle"
	"parcelflow/internal/core/ports"
	"parcelflow/internal/pkg/errs"
	"parcelflow/internal/pkg/metrics"
)

// RecordParcelEventCommandHandler is the single write path for parcel
// lifecycle events. It replays the parcel's stream, validates the event
// against the state machine, appends it at the stream's tail and, for
// warehouse arrivals, routes the parcel onwards: a delivery order at the
// final warehouse, a consolidated transfer trip everywhere else.
//
// The handler implements ParcelEventRecorder, so the progress generator's
// emitted events travel through the same validation and publishing path.
type RecordParcelEventCommandHandler struct {
	uowFactory RoutingUoWFactory
	publisher  ports.EventPublisher
	tracker    ports.ProgressTracker
	metrics    *metrics.ServiceMetrics
}

// NewRecordParcelEventCommandHandler creates a handler for event recording.
func NewRecordParcelEventCommandHandler(
	uowFactory RoutingUoWFactory,
	publisher ports.EventPublisher,
	tracker ports.ProgressTracker,
	serviceMetrics *metrics.ServiceMetrics,
) RecordParcelEventCommandHandler {
	return RecordParcelEventCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		tracker:    tracker,
		metrics:    serviceMetrics,
	}
}

// Record validates, persists and publishes one event. Implements
// ParcelEventRecorder.
func (h *RecordParcelEventCommandHandler) Record(ctx context.Context, event parcel.Event) error {
	cmd, err := NewRecordParcelEventCommand(event)
	if err != nil {
		return err
	}
	return h.Handle(ctx, cmd)
}

// Handle processes the event recording command. The append and any routing
// side effects commit atomically; the event is published after the commit.
func (h *RecordParcelEventCommandHandler) Handle(ctx context.Context, cmd RecordParcelEventCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	event := cmd.Event()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	stream, err := uow.ParcelEventRepository().GetStream(ctx, event.ParcelID())
	if err != nil {
		return err
	}

	var current *parcel.Parcel
	if len(stream) > 0 {
		if current, err = parcel.Replay(stream); err != nil {
			return err
		}
	}

	next, err := parcel.Next(current, event)
	if err != nil {
		return err
	}

	if err = uow.ParcelEventRepository().Append(ctx, event, len(stream)); err != nil {
		return err
	}

	var newTransferJob *kernel.UUID
	switch arrival := event.(type) {
	case parcel.DeliveredToWarehouse:
		newTransferJob, err = h.routeArrival(ctx, uow, next, arrival.Warehouse, arrival.OccurredAt())
	case parcel.TransferCompleted:
		newTransferJob, err = h.routeArrival(ctx, uow, next, arrival.Warehouse, arrival.OccurredAt())
	}
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if newTransferJob != nil {
		if err = h.tracker.TrackTransferJob(ctx, *newTransferJob); err != nil {
			return err
		}
	}

	if h.metrics != nil {
		h.metrics.ParcelEvents.WithLabelValues(event.Name()).Inc()
	}

	return h.publisher.Publish(ctx, event.Name(), event.ParcelID(), event)
}

// routeArrival decides what happens after a parcel reaches a warehouse.
// Returns the id of a newly created transfer trip, if one was created.
func (h *RecordParcelEventCommandHandler) routeArrival(
	ctx context.Context,
	uow RoutingUoW,
	state *parcel.Parcel,
	warehouseID kernel.UUID,
	occurredAt time.Time,
) (*kernel.UUID, error) {
	if state.Status() == parcel.StatusInWarehouse {
		return nil, h.createDeliveryOrder(ctx, uow, state, warehouseID)
	}

	return h.consolidateTransfer(ctx, uow, state, warehouseID, occurredAt)
}

func (h *RecordParcelEventCommandHandler) createDeliveryOrder(
	ctx context.Context,
	uow RoutingUoW,
	state *parcel.Parcel,
	warehouseID kernel.UUID,
) error {
	w, err := uow.WarehouseRepository().Get(ctx, warehouseID)
	if err != nil {
		return err
	}

	deliveryOrder, err := order.NewOrder(
		kernel.NewUUID(),
		state.ID(),
		w.ID(),
		vehicle.KindDelivery,
		state.DeliveryDate(),
		state.DeliveryLocation(),
		w.Location(),
	)
	if err != nil {
		return err
	}

	return uow.OrderRepository().Add(ctx, deliveryOrder)
}

// consolidateTransfer enrolls the parcel on the pending night trip of its
// next connection, creating the trip when none is pending yet.
func (h *RecordParcelEventCommandHandler) consolidateTransfer(
	ctx context.Context,
	uow RoutingUoW,
	state *parcel.Parcel,
	warehouseID kernel.UUID,
	occurredAt time.Time,
) (*kernel.UUID, error) {
	destination, err := state.NextTransitWarehouseAfter(warehouseID)
	if err != nil {
		return nil, err
	}

	key := job.ConnectionKey(warehouseID, destination)
	night := job.NextNight(occurredAt)

	trip, err := uow.JobRepository().GetPendingTransferJob(ctx, key, night)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		trip, err = job.NewTransferJob(kernel.NewUUID(), warehouseID, destination, night)
		if err != nil {
			return nil, err
		}
		if err = trip.Enroll(state.ID()); err != nil {
			return nil, err
		}
		if err = uow.JobRepository().AddTransferJob(ctx, trip); err != nil {
			return nil, err
		}

		tripID := trip.ID()
		return &tripID, nil
	case err != nil:
		return nil, err
	}

	if err = trip.Enroll(state.ID()); err != nil {
		return nil, err
	}
	if err = uow.JobRepository().UpdateTransferJob(ctx, trip); err != nil {
		return nil, err
	}
	return nil, nil
}
