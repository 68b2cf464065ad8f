package commands

import (
	"errors"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/vehicle"
	"parcelflow/internal/pkg/guard"
)

var (
	ErrCreateJobsCommandIsNotConstructed = errors.New(
		"CreateJobsCommand must be created via NewCreateJobsCommand constructor",
	)
	ErrDateIsRequired = errors.New("date is required")
)

// CreateJobsCommand represents a request to batch one warehouse's pending
// orders of one day and direction into vehicle jobs.
//
// Example:
//
//	cmd, err := NewCreateJobsCommand(warehouseID, today, vehicle.KindPickup)
//	if err != nil {
//	    return fmt.Errorf("invalid batch request: %w", err)
//	}
//
//	handler := NewCreateJobsCommandHandler(uowFactory, optimizer, tracker, serviceMetrics)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("job batching failed: %w", err)
//	}
type CreateJobsCommand struct { //nolint:recvcheck //using for validation
	warehouseID kernel.UUID
	date        time.Time
	kind        vehicle.Kind

	guard guard.ConstructorGuard
}

// NewCreateJobsCommand creates a command to batch orders into jobs.
func NewCreateJobsCommand(warehouseID kernel.UUID, date time.Time, kind vehicle.Kind) (CreateJobsCommand, error) {
	cmd := CreateJobsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setWarehouseID(warehouseID),
		cmd.setDate(date),
		cmd.setKind(kind),
	); err != nil {
		return CreateJobsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateJobsCommand) Validate() error {
	return c.guard.Validate(ErrCreateJobsCommandIsNotConstructed)
}

// WarehouseID returns the warehouse whose orders are batched.
func (c CreateJobsCommand) WarehouseID() kernel.UUID {
	return c.warehouseID
}

// Date returns the day whose orders are batched.
func (c CreateJobsCommand) Date() time.Time {
	return c.date
}

// Kind returns the order direction being batched.
func (c CreateJobsCommand) Kind() vehicle.Kind {
	return c.kind
}

func (c *CreateJobsCommand) setWarehouseID(warehouseID kernel.UUID) error {
	if err := warehouseID.Validate(); err != nil {
		return err
	}

	c.warehouseID = warehouseID
	return nil
}

func (c *CreateJobsCommand) setDate(date time.Time) error {
	if date.IsZero() {
		return ErrDateIsRequired
	}

	c.date = date
	return nil
}

func (c *CreateJobsCommand) setKind(kind vehicle.Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}

	c.kind = kind
	return nil
}
