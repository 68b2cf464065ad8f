package commands

import (
	"context"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/order"
	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/core/domain/model/vehicle"
	"parcelflow/internal/core/domain/services"
	"parcelflow/internal/core/ports"
)

// planTransit resolves the warehouse chain for a shipment against the
// current warehouse catalog.
func planTransit(
	ctx context.Context,
	warehouseRepo ports.WarehouseRepository,
	planner services.TransitPlanner,
	pickup, delivery kernel.Location,
) ([]kernel.UUID, error) {
	warehouses, err := warehouseRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return planner.Plan(pickup, delivery, warehouses)
}

// appendRegistered opens a parcel's event stream with its registration
// event. The event is validated against the state machine before the write.
func appendRegistered(
	ctx context.Context,
	eventRepo ports.ParcelEventRepository,
	cmd RegisterParcelCommand,
	transitWarehouses []kernel.UUID,
) (parcel.Registered, error) {
	event := parcel.Registered{
		Parcel:            cmd.ParcelID(),
		At:                cmd.OccurredAt(),
		PickupDate:        cmd.PickupDate(),
		DeliveryDate:      cmd.DeliveryDate(),
		PickupLocation:    cmd.PickupLocation(),
		DeliveryLocation:  cmd.DeliveryLocation(),
		TransitWarehouses: transitWarehouses,
	}

	if _, err := parcel.Next(nil, event); err != nil {
		return parcel.Registered{}, err
	}

	if err := eventRepo.Append(ctx, event, 0); err != nil {
		return parcel.Registered{}, err
	}
	return event, nil
}

// createPickupOrder queues the order that will bring the parcel from the
// customer to its first transit warehouse.
func createPickupOrder(
	ctx context.Context,
	orderRepo ports.OrderRepository,
	warehouseRepo ports.WarehouseRepository,
	cmd RegisterParcelCommand,
	firstWarehouse kernel.UUID,
) error {
	w, err := warehouseRepo.Get(ctx, firstWarehouse)
	if err != nil {
		return err
	}

	pickupOrder, err := order.NewOrder(
		kernel.NewUUID(),
		cmd.ParcelID(),
		w.ID(),
		vehicle.KindPickup,
		cmd.PickupDate(),
		cmd.PickupLocation(),
		w.Location(),
	)
	if err != nil {
		return err
	}

	return orderRepo.Add(ctx, pickupOrder)
}
