package commands

import (
	"errors"

	"parcelflow/internal/pkg/guard"
)

var ErrResetVehiclesCommandIsNotConstructed = errors.New(
	"ResetVehiclesCommand must be created via NewResetVehiclesCommand constructor",
)

// ResetVehiclesCommand represents the new-day reset restoring every
// vehicle's full daily capacity.
type ResetVehiclesCommand struct {
	guard guard.ConstructorGuard
}

// NewResetVehiclesCommand creates a command to reset vehicle capacities.
func NewResetVehiclesCommand() ResetVehiclesCommand {
	return ResetVehiclesCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c ResetVehiclesCommand) Validate() error {
	return c.guard.Validate(ErrResetVehiclesCommandIsNotConstructed)
}
