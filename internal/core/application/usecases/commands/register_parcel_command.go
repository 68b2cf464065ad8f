package commands

import (
	"errors"
	"time"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/guard"
)

var (
	ErrRegisterParcelCommandIsNotConstructed = errors.New(
		"RegisterParcelCommand must be created via NewRegisterParcelCommand constructor",
	)
	ErrPickupDateIsRequired   = errors.New("pickup date is required")
	ErrDeliveryDateIsRequired = errors.New("delivery date is required")
	ErrOccurredAtIsRequired   = errors.New("occurred at is required")
)

// RegisterParcelCommand represents a request to register a new parcel for
// shipment. Carries the shipment window and both endpoints; the transit
// warehouse chain is resolved by the handler.
//
// Example:
//
//	parcelID := kernel.NewUUID()
//	cmd, err := NewRegisterParcelCommand(parcelID, pickupDate, deliveryDate,
//	    pickupLocation, deliveryLocation, time.Now())
//	if err != nil {
//	    return fmt.Errorf("invalid parcel data: %w", err)
//	}
//
//	handler := NewRegisterParcelCommandHandler(uowFactory, planner, publisher)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to register parcel: %w", err)
//	}
type RegisterParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID         kernel.UUID
	pickupDate       time.Time
	deliveryDate     time.Time
	pickupLocation   kernel.Location
	deliveryLocation kernel.Location
	occurredAt       time.Time

	guard guard.ConstructorGuard
}

// NewRegisterParcelCommand creates a command to register a new parcel.
// Validates identifiers, both locations and that all dates are set.
func NewRegisterParcelCommand(
	parcelID kernel.UUID,
	pickupDate, deliveryDate time.Time,
	pickupLocation, deliveryLocation kernel.Location,
	occurredAt time.Time,
) (RegisterParcelCommand, error) {
	cmd := RegisterParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setDates(pickupDate, deliveryDate, occurredAt),
		cmd.setLocations(pickupLocation, deliveryLocation),
	); err != nil {
		return RegisterParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterParcelCommand) Validate() error {
	return c.guard.Validate(ErrRegisterParcelCommandIsNotConstructed)
}

// ParcelID returns the unique identifier for the new parcel.
func (c RegisterParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// PickupDate returns the requested pickup day.
func (c RegisterParcelCommand) PickupDate() time.Time {
	return c.pickupDate
}

// DeliveryDate returns the requested delivery day.
func (c RegisterParcelCommand) DeliveryDate() time.Time {
	return c.deliveryDate
}

// PickupLocation returns the customer's pickup point.
func (c RegisterParcelCommand) PickupLocation() kernel.Location {
	return c.pickupLocation
}

// DeliveryLocation returns the customer's delivery point.
func (c RegisterParcelCommand) DeliveryLocation() kernel.Location {
	return c.deliveryLocation
}

// OccurredAt returns the registration timestamp.
func (c RegisterParcelCommand) OccurredAt() time.Time {
	return c.occurredAt
}

func (c *RegisterParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *RegisterParcelCommand) setDates(pickupDate, deliveryDate, occurredAt time.Time) error {
	if pickupDate.IsZero() {
		return ErrPickupDateIsRequired
	}
	if deliveryDate.IsZero() {
		return ErrDeliveryDateIsRequired
	}
	if occurredAt.IsZero() {
		return ErrOccurredAtIsRequired
	}

	c.pickupDate = pickupDate
	c.deliveryDate = deliveryDate
	c.occurredAt = occurredAt
	return nil
}

func (c *RegisterParcelCommand) setLocations(pickup, delivery kernel.Location) error {
	if err := errors.Join(pickup.Validate(), delivery.Validate()); err != nil {
		return err
	}

	c.pickupLocation = pickup
	c.deliveryLocation = delivery
	return nil
}
