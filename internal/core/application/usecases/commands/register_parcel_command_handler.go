package commands

import (
	"context"

	"parcelflow/internal/core/domain/services"
	"parcelflow/internal/core/ports"
)

// RegisterParcelCommandHandler handles direct parcel registration: resolving
// the transit warehouse chain, opening the event stream and queueing the
// pickup order in one transaction.
//
// Example:
//
//	handler := NewRegisterParcelCommandHandler(uowFactory, planner, publisher)
//	cmd, _ := NewRegisterParcelCommand(parcelID, pickupDate, deliveryDate,
//	    pickupLocation, deliveryLocation, time.Now())
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("parcel registration failed: %w", err)
//	}
type RegisterParcelCommandHandler struct {
	uowFactory ParcelUoWFactory
	planner    services.TransitPlanner
	publisher  ports.EventPublisher
}

// NewRegisterParcelCommandHandler creates a handler for parcel registration.
func NewRegisterParcelCommandHandler(
	uowFactory ParcelUoWFactory,
	planner services.TransitPlanner,
	publisher ports.EventPublisher,
) RegisterParcelCommandHandler {
	return RegisterParcelCommandHandler{
		uowFactory: uowFactory,
		planner:    planner,
		publisher:  publisher,
	}
}

// Handle processes the registration command. The registration event and the
// pickup order are committed atomically; the event is published afterwards.
func (h *RegisterParcelCommandHandler) Handle(ctx context.Context, cmd RegisterParcelCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	chain, err := planTransit(ctx, uow.WarehouseRepository(), h.planner,
		cmd.PickupLocation(), cmd.DeliveryLocation())
	if err != nil {
		return err
	}

	event, err := appendRegistered(ctx, uow.ParcelEventRepository(), cmd, chain)
	if err != nil {
		return err
	}

	if err = createPickupOrder(ctx, uow.OrderRepository(), uow.WarehouseRepository(), cmd, chain[0]); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return h.publisher.Publish(ctx, event.Name(), event.ParcelID(), event)
}
