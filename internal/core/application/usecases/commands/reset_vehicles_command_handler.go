package commands

import (
	"context"
)

// ResetVehiclesCommandHandler restores the full daily capacity of every
// vehicle in one transaction. Runs at the start of each simulated day.
type ResetVehiclesCommandHandler struct {
	uowFactory VehicleUoWFactory
}

// NewResetVehiclesCommandHandler creates a handler for the capacity reset.
func NewResetVehiclesCommandHandler(uowFactory VehicleUoWFactory) ResetVehiclesCommandHandler {
	return ResetVehiclesCommandHandler{uowFactory: uowFactory}
}

// Handle processes the reset command.
func (h *ResetVehiclesCommandHandler) Handle(ctx context.Context, cmd ResetVehiclesCommand) error {
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

	vehicles, err := uow.VehicleRepository().GetAll(ctx)
	if err != nil {
		return err
	}

	for _, v := range vehicles {
		if err = v.ResetCapacity(); err != nil {
			return err
		}
		if err = uow.VehicleRepository().Update(ctx, v); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
