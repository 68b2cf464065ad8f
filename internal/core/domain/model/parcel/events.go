package parcel

import (
	"time"

	"parcelflow/internal/core/domain/model/kernel"
)

// Wire-level event names, used as persistence discriminators and bus message types.
const (
	EventNameRegistered           = "parcelRegistered"
	EventNamePickedUp             = "parcelPickedUp"
	EventNameDeliveredToWarehouse = "parcelDeliveredToWarehouse"
	EventNameTransferStarted      = "parcelTransferStarted"
	EventNameTransferCompleted    = "parcelTransferCompleted"
	EventNameDeliveryStarted      = "parcelDeliveryStarted"
	EventNameDelivered            = "parcelDelivered"
)

// Event is the closed union of parcel lifecycle events. Exactly seven types
// implement it, one per lifecycle transition; the projector in Next handles
// every variant exhaustively, so adding a variant without extending the
// projector is a compile-time visible change.
//
// Events are immutable facts: once appended to a parcel's stream they are
// never modified, and the parcel's state is always derived by replaying them
// in stored order.
type Event interface {
	// ParcelID identifies the stream the event belongs to.
	ParcelID() kernel.UUID

	// OccurredAt is the business time of the transition.
	OccurredAt() time.Time

	// Name returns the wire-level event name.
	Name() string

	isParcelEvent()
}

// Registered is the first event of every parcel stream. It fixes the pickup
// and delivery endpoints, the dates, and the immutable transit warehouse path
// (one warehouse when pickup and delivery share it, two when a nightly
// transfer is required).
type Registered struct {
	Parcel            kernel.UUID
	At                time.Time
	PickupDate        time.Time
	DeliveryDate      time.Time
	PickupLocation    kernel.Location
	DeliveryLocation  kernel.Location
	TransitWarehouses []kernel.UUID
}

func (e Registered) ParcelID() kernel.UUID  { return e.Parcel }
func (e Registered) OccurredAt() time.Time  { return e.At }
func (e Registered) Name() string           { return EventNameRegistered }
func (Registered) isParcelEvent()           {}

// PickedUp records that a pickup vehicle collected the parcel from the customer.
type PickedUp struct {
	Parcel  kernel.UUID
	At      time.Time
	Vehicle kernel.UUID
}

func (e PickedUp) ParcelID() kernel.UUID { return e.Parcel }
func (e PickedUp) OccurredAt() time.Time { return e.At }
func (e PickedUp) Name() string          { return EventNamePickedUp }
func (PickedUp) isParcelEvent()          {}

// DeliveredToWarehouse records the pickup vehicle unloading the parcel at its
// first transit warehouse.
type DeliveredToWarehouse struct {
	Parcel    kernel.UUID
	At        time.Time
	Warehouse kernel.UUID
}

func (e DeliveredToWarehouse) ParcelID() kernel.UUID { return e.Parcel }
func (e DeliveredToWarehouse) OccurredAt() time.Time { return e.At }
func (e DeliveredToWarehouse) Name() string          { return EventNameDeliveredToWarehouse }
func (DeliveredToWarehouse) isParcelEvent()          {}

// TransferStarted records the nightly inter-warehouse trip departing with the parcel.
type TransferStarted struct {
	Parcel kernel.UUID
	At     time.Time
}

func (e TransferStarted) ParcelID() kernel.UUID { return e.Parcel }
func (e TransferStarted) OccurredAt() time.Time { return e.At }
func (e TransferStarted) Name() string          { return EventNameTransferStarted }
func (TransferStarted) isParcelEvent()          {}

// TransferCompleted records the nightly trip arriving at the destination warehouse.
type TransferCompleted struct {
	Parcel    kernel.UUID
	At        time.Time
	Warehouse kernel.UUID
}

func (e TransferCompleted) ParcelID() kernel.UUID { return e.Parcel }
func (e TransferCompleted) OccurredAt() time.Time { return e.At }
func (e TransferCompleted) Name() string          { return EventNameTransferCompleted }
func (TransferCompleted) isParcelEvent()          {}

// DeliveryStarted records a delivery vehicle departing the final warehouse
// with the parcel on board.
type DeliveryStarted struct {
	Parcel  kernel.UUID
	At      time.Time
	Vehicle kernel.UUID
}

func (e DeliveryStarted) ParcelID() kernel.UUID { return e.Parcel }
func (e DeliveryStarted) OccurredAt() time.Time { return e.At }
func (e DeliveryStarted) Name() string          { return EventNameDeliveryStarted }
func (DeliveryStarted) isParcelEvent()          {}

// Delivered is the terminal event: the parcel reached the customer.
type Delivered struct {
	Parcel kernel.UUID
	At     time.Time
}

func (e Delivered) ParcelID() kernel.UUID { return e.Parcel }
func (e Delivered) OccurredAt() time.Time { return e.At }
func (e Delivered) Name() string          { return EventNameDelivered }
func (Delivered) isParcelEvent()          {}
