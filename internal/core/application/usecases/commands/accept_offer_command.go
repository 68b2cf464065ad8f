package commands

import (
	"errors"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/guard"
)

var ErrAcceptOfferCommandIsNotConstructed = errors.New(
	"AcceptOfferCommand must be created via NewAcceptOfferCommand constructor",
)

// AcceptOfferCommand represents a buyer accepting a priced shipping offer.
// Acceptance runs as a compensated workflow: the offer is confirmed with the
// pricing service, the parcel is registered, attached to the buyer and its
// pickup is queued. Failure of any step undoes the previous ones.
//
// Example:
//
//	registration, _ := NewRegisterParcelCommand(parcelID, pickupDate,
//	    deliveryDate, pickupLocation, deliveryLocation, time.Now())
//	cmd, err := NewAcceptOfferCommand(offerID, buyerID, registration)
//	if err != nil {
//	    return fmt.Errorf("invalid acceptance: %w", err)
//	}
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("offer acceptance failed: %w", err)
//	}
type AcceptOfferCommand struct { //nolint:recvcheck //using for validation
	offerID      kernel.UUID
	buyerID      kernel.UUID
	registration RegisterParcelCommand

	guard guard.ConstructorGuard
}

// NewAcceptOfferCommand creates a command to accept a shipping offer.
func NewAcceptOfferCommand(
	offerID, buyerID kernel.UUID,
	registration RegisterParcelCommand,
) (AcceptOfferCommand, error) {
	cmd := AcceptOfferCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOfferID(offerID),
		cmd.setBuyerID(buyerID),
		cmd.setRegistration(registration),
	); err != nil {
		return AcceptOfferCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptOfferCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOfferCommandIsNotConstructed)
}

// OfferID returns the pricing service offer being accepted.
func (c AcceptOfferCommand) OfferID() kernel.UUID {
	return c.offerID
}

// BuyerID returns the accepting buyer's account.
func (c AcceptOfferCommand) BuyerID() kernel.UUID {
	return c.buyerID
}

// Registration returns the parcel registration details.
func (c AcceptOfferCommand) Registration() RegisterParcelCommand {
	return c.registration
}

func (c *AcceptOfferCommand) setOfferID(offerID kernel.UUID) error {
	if err := offerID.Validate(); err != nil {
		return err
	}

	c.offerID = offerID
	return nil
}

func (c *AcceptOfferCommand) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}

	c.buyerID = buyerID
	return nil
}

func (c *AcceptOfferCommand) setRegistration(registration RegisterParcelCommand) error {
	if err := registration.Validate(); err != nil {
		return err
	}

	c.registration = registration
	return nil
}
