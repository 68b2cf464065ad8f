package commands

import (
	"errors"

	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/pkg/guard"
)

var (
	ErrRecordParcelEventCommandIsNotConstructed = errors.New(
		"RecordParcelEventCommand must be created via NewRecordParcelEventCommand constructor",
	)
	ErrEventIsRequired = errors.New("event is required")
)

// RecordParcelEventCommand represents a request to append one lifecycle
// event to a parcel's stream. The handler validates the event against the
// parcel state machine before persisting it.
type RecordParcelEventCommand struct { //nolint:recvcheck //using for validation
	event parcel.Event

	guard guard.ConstructorGuard
}

// NewRecordParcelEventCommand creates a command to record a parcel event.
func NewRecordParcelEventCommand(event parcel.Event) (RecordParcelEventCommand, error) {
	cmd := RecordParcelEventCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setEvent(event); err != nil {
		return RecordParcelEventCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordParcelEventCommand) Validate() error {
	return c.guard.Validate(ErrRecordParcelEventCommandIsNotConstructed)
}

// Event returns the lifecycle event to record.
func (c RecordParcelEventCommand) Event() parcel.Event {
	return c.event
}

func (c *RecordParcelEventCommand) setEvent(event parcel.Event) error {
	if event == nil {
		return ErrEventIsRequired
	}
	if err := event.ParcelID().Validate(); err != nil {
		return err
	}
	if event.OccurredAt().IsZero() {
		return ErrOccurredAtIsRequired
	}

	c.event = event
	return nil
}
