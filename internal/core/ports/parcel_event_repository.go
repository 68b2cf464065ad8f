// Package ports defines the contracts between the application core and
// infrastructure: repositories, the unit of work, external service clients
// and the progress tracker. These interfaces enable dependency inversion and
// testability.
package ports

import (
	"context"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"
)

// ParcelEventRepository defines the persistence contract for parcel event
// streams. A parcel's state is never stored directly; it is replayed from
// its ordered events.
type ParcelEventRepository interface {
	// Append stores an event at the given sequence position of its parcel
	// stream. The position must equal the current stream length; a unique
	// constraint on (parcel, sequence) rejects concurrent appends.
	Append(ctx context.Context, event parcel.Event, seq int) error

	// GetStream retrieves all events of a parcel in sequence order.
	// Returns an empty slice when the parcel has no events.
	GetStream(ctx context.Context, parcelID kernel.UUID) ([]parcel.Event, error)

	// RemoveStream deletes a parcel's events. Used by saga compensation to
	// undo a registration that could not complete.
	RemoveStream(ctx context.Context, parcelID kernel.UUID) error
}
