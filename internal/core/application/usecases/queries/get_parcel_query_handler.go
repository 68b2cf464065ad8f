package queries

import (
	"context"

	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/core/ports"
)

// GetParcelQueryHandler loads a parcel by replaying its event stream.
//
// Example:
//
//	handler := NewGetParcelQueryHandler(eventRepo)
//	query, _ := NewGetParcelQuery(parcelID)
//
//	state, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("failed to load parcel: %v", err)
//	    return err
//	}
type GetParcelQueryHandler struct {
	events ports.ParcelEventRepository
}

// NewGetParcelQueryHandler creates a handler for parcel state queries.
func NewGetParcelQueryHandler(events ports.ParcelEventRepository) GetParcelQueryHandler {
	return GetParcelQueryHandler{events: events}
}

// Handle executes the query. Returns an object not found error when the
// parcel has no events.
func (h GetParcelQueryHandler) Handle(ctx context.Context, query GetParcelQuery) (GetParcelQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetParcelQueryResponse{}, err
	}

	stream, err := h.events.GetStream(ctx, query.ParcelID())
	if err != nil {
		return GetParcelQueryResponse{}, err
	}

	state, err := parcel.Replay(stream)
	if err != nil {
		return GetParcelQueryResponse{}, err
	}

	return GetParcelQueryResponse{
		ID:                state.ID(),
		Status:            state.Status().String(),
		PickupDate:        state.PickupDate(),
		DeliveryDate:      state.DeliveryDate(),
		PickupLocation:    state.PickupLocation(),
		DeliveryLocation:  state.DeliveryLocation(),
		TransitWarehouses: state.TransitWarehouses(),
		CurrentWarehouse:  state.CurrentWarehouse(),
		CurrentVehicle:    state.CurrentVehicle(),
		Version:           state.Version(),
	}, nil
}
