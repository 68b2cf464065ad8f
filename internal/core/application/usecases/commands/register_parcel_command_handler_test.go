package commands_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"parcelflow/internal/core/application/usecases/commands"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/core/domain/model/warehouse"
	"parcelflow/internal/core/domain/services"
)

func availableWarehouse(t *testing.T, lat, lon float64) *warehouse.Warehouse {
	t.Helper()
	w, err := warehouse.NewWarehouse(kernel.NewUUID(), mustLocation(t, lat, lon), "city", 10000)
	require.NoError(t, err)
	return w
}

func TestRegisterParcelCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := validRegistration(t)
	hub := availableWarehouse(t, 47.0, 3.5)

	uow := NewMockUoW()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.Warehouses.On("GetAll", ctx).Return([]*warehouse.Warehouse{hub}, nil).Once(),
		uow.Events.On("Append", ctx, mock.AnythingOfType("parcel.Registered"), 0).Return(nil).Once(),
		uow.Warehouses.On("Get", ctx, hub.ID()).Return(hub, nil).Once(),
		uow.Orders.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	publisher := new(MockEventPublisher)
	publisher.On("Publish", ctx, parcel.EventNameRegistered, cmd.ParcelID(),
		mock.AnythingOfType("parcel.Registered")).Return(nil).Once()

	h := commands.NewRegisterParcelCommandHandler(
		mockUoWFactory{uow: uow}, services.NewTransitPlanner(), publisher)
	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	uow.AssertExpectations(t)
	uow.Events.AssertExpectations(t)
	uow.Orders.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestRegisterParcelCommandHandler_Handle_NoServingWarehouse(t *testing.T) {
	ctx := t.Context()
	cmd := validRegistration(t)

	uow := NewMockUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.Warehouses.On("GetAll", ctx).Return([]*warehouse.Warehouse{}, nil).Once()

	publisher := new(MockEventPublisher)
	h := commands.NewRegisterParcelCommandHandler(
		mockUoWFactory{uow: uow}, services.NewTransitPlanner(), publisher)
	err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, services.ErrWarehouseNotFound)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRegisterParcelCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	h := commands.NewRegisterParcelCommandHandler(
		mockUoWFactory{uow: NewMockUoW()}, services.NewTransitPlanner(), new(MockEventPublisher))

	err := h.Handle(ctx, commands.RegisterParcelCommand{})
	require.Error(t, err)
}

func TestRegisterParcelCommandHandler_Handle_AppendError(t *testing.T) {
	ctx := t.Context()
	cmd := validRegistration(t)
	hub := availableWarehouse(t, 47.0, 3.5)

	uow := NewMockUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.Warehouses.On("GetAll", ctx).Return([]*warehouse.Warehouse{hub}, nil).Once()
	uow.Events.On("Append", ctx, mock.AnythingOfType("parcel.Registered"), 0).
		Return(errors.New("append error")).Once()

	h := commands.NewRegisterParcelCommandHandler(
		mockUoWFactory{uow: uow}, services.NewTransitPlanner(), new(MockEventPublisher))
	err := h.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
