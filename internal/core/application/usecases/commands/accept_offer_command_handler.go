package commands

import (
	"context"
	"errors"

	"parcelflow/internal/core/domain/model/buyer"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/core/domain/services"
	"parcelflow/internal/core/ports"
	"parcelflow/internal/pkg/errs"
	"parcelflow/internal/pkg/saga"
)

// AcceptOfferCommandHandler handles offer acceptance as a compensated
// workflow:
//
//  1. confirm the offer with the pricing service (undo: cancel it)
//  2. register the parcel (undo: remove its event stream)
//  3. attach the parcel to the buyer, creating the account on first use
//     (undo: detach it)
//  4. queue the pickup order
//
// Each step runs in its own transaction; a failed step triggers reverse
// compensation of the completed ones.
type AcceptOfferCommandHandler struct {
	uowFactory  ParcelUoWFactory
	planner     services.TransitPlanner
	pricing     ports.PricingClient
	publisher   ports.EventPublisher
	coordinator *saga.Coordinator
}

// NewAcceptOfferCommandHandler creates a handler for offer acceptance.
func NewAcceptOfferCommandHandler(
	uowFactory ParcelUoWFactory,
	planner services.TransitPlanner,
	pricing ports.PricingClient,
	publisher ports.EventPublisher,
	coordinator *saga.Coordinator,
) AcceptOfferCommandHandler {
	return AcceptOfferCommandHandler{
		uowFactory:  uowFactory,
		planner:     planner,
		pricing:     pricing,
		publisher:   publisher,
		coordinator: coordinator,
	}
}

// Handle processes the acceptance command. On success the registration event
// has been committed and published and the pickup order queued. On failure
// all completed steps have been compensated; when compensation itself fails
// the returned error carries both the original cause and every compensation
// failure.
func (h *AcceptOfferCommandHandler) Handle(ctx context.Context, cmd AcceptOfferCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	registration := cmd.Registration()
	var registered parcel.Registered
	var chain []kernel.UUID

	steps := []saga.Step{
		{
			Name: "accept offer",
			Run: func(ctx context.Context) error {
				return h.pricing.AcceptOffer(ctx, cmd.OfferID())
			},
			Compensate: func(ctx context.Context) error {
				return h.pricing.CancelAcceptOffer(ctx, cmd.OfferID())
			},
		},
		{
			Name: "register parcel",
			Run: func(ctx context.Context) error {
				return h.inTx(ctx, func(ctx context.Context, uow ParcelUoW) error {
					var err error
					chain, err = planTransit(ctx, uow.WarehouseRepository(), h.planner,
						registration.PickupLocation(), registration.DeliveryLocation())
					if err != nil {
						return err
					}

					registered, err = appendRegistered(ctx, uow.ParcelEventRepository(), registration, chain)
					return err
				})
			},
			Compensate: func(ctx context.Context) error {
				return h.inTx(ctx, func(ctx context.Context, uow ParcelUoW) error {
					return uow.ParcelEventRepository().RemoveStream(ctx, registration.ParcelID())
				})
			},
		},
		{
			Name: "attach parcel to buyer",
			Run: func(ctx context.Context) error {
				return h.inTx(ctx, func(ctx context.Context, uow ParcelUoW) error {
					return h.attachParcel(ctx, uow.BuyerRepository(), cmd.BuyerID(), registration.ParcelID())
				})
			},
			Compensate: func(ctx context.Context) error {
				return h.inTx(ctx, func(ctx context.Context, uow ParcelUoW) error {
					return h.detachParcel(ctx, uow.BuyerRepository(), cmd.BuyerID(), registration.ParcelID())
				})
			},
		},
		{
			Name: "create pickup order",
			Run: func(ctx context.Context) error {
				return h.inTx(ctx, func(ctx context.Context, uow ParcelUoW) error {
					return createPickupOrder(ctx, uow.OrderRepository(), uow.WarehouseRepository(),
						registration, chain[0])
				})
			},
		},
	}

	if err := h.coordinator.Execute(ctx, steps); err != nil {
		return err
	}

	return h.publisher.Publish(ctx, registered.Name(), registered.ParcelID(), registered)
}

func (h *AcceptOfferCommandHandler) inTx(
	ctx context.Context,
	fn func(ctx context.Context, uow ParcelUoW) error,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := fn(ctx, uow); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *AcceptOfferCommandHandler) attachParcel(
	ctx context.Context,
	buyers ports.BuyerRepository,
	buyerID, parcelID kernel.UUID,
) error {
	account, err := buyers.Get(ctx, buyerID)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		account, err = buyer.NewBuyer(buyerID)
		if err != nil {
			return err
		}
		if err = account.AttachParcel(parcelID); err != nil {
			return err
		}
		return buyers.Add(ctx, account)
	case err != nil:
		return err
	}

	if err = account.AttachParcel(parcelID); err != nil {
		return err
	}
	return buyers.Update(ctx, account)
}

func (h *AcceptOfferCommandHandler) detachParcel(
	ctx context.Context,
	buyers ports.BuyerRepository,
	buyerID, parcelID kernel.UUID,
) error {
	account, err := buyers.Get(ctx, buyerID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err = account.DetachParcel(parcelID); err != nil {
		return err
	}
	return buyers.Update(ctx, account)
}
