package parcel

import (
	"fmt"

	"parcelflow/internal/pkg/errs"
)

// Status represents the lifecycle state of a parcel.
//
// State transitions (driven by events, see Next):
//
//	ToPickup ──> TransitToWarehouse ──┬──> InWarehouse ──> TransitToCustomer ──> Delivered
//	                                  │         ^
//	                                  └──> ToTransfer ──> Transfer ──┐
//	                                            ^                    │
//	                                            └────────────────────┘
//
// Arrival at a warehouse lands in InWarehouse when it is the parcel's last
// transit warehouse, otherwise in ToTransfer.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// ToPickup means the parcel is registered and waiting for a pickup vehicle.
	StatusToPickup

	// TransitToWarehouse means a pickup vehicle is carrying the parcel to its first warehouse.
	StatusTransitToWarehouse

	// ToTransfer means the parcel sits in an intermediate warehouse waiting for a nightly transfer.
	StatusToTransfer

	// Transfer means the parcel is on a nightly inter-warehouse trip.
	StatusTransfer

	// InWarehouse means the parcel reached its final transit warehouse.
	StatusInWarehouse

	// TransitToCustomer means a delivery vehicle is carrying the parcel to the customer.
	StatusTransitToCustomer

	// Delivered is the terminal status.
	StatusDelivered
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:            "Unknown",
		StatusToPickup:           "TO_PICKUP",
		StatusTransitToWarehouse: "TRANSIT_TO_WAREHOUSE",
		StatusToTransfer:         "TO_TRANSFER",
		StatusTransfer:           "TRANSFER",
		StatusInWarehouse:        "IN_WAREHOUSE",
		StatusTransitToCustomer:  "TRANSIT_TO_CUSTOMER",
		StatusDelivered:          "DELIVERED",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusToPickup:           "TO_PICKUP",
		StatusTransitToWarehouse: "TRANSIT_TO_WAREHOUSE",
		StatusToTransfer:         "TO_TRANSFER",
		StatusTransfer:           "TRANSFER",
		StatusInWarehouse:        "IN_WAREHOUSE",
		StatusTransitToCustomer:  "TRANSIT_TO_CUSTOMER",
		StatusDelivered:          "DELIVERED",
	}
}

// Validate checks if the Status value is valid.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire-level name of the status, or "Unknown" for
// invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered
}
