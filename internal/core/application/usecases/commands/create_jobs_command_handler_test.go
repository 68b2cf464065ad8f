package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"parcelflow/internal/core/application/usecases/commands"
	"parcelflow/internal/core/domain/model/job"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/order"
	"parcelflow/internal/core/domain/model/vehicle"
	"parcelflow/internal/core/ports"
	"parcelflow/internal/pkg/errs"
)

func pendingOrder(t *testing.T, warehouseID kernel.UUID, date time.Time) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), warehouseID,
		vehicle.KindPickup, date, mustLocation(t, 48.85, 2.35), mustLocation(t, 48.90, 2.40))
	require.NoError(t, err)
	return o
}

func TestCreateJobsCommandHandler_Handle_BatchesOnePage(t *testing.T) {
	ctx := t.Context()
	hub := availableWarehouse(t, 48.90, 2.40)
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	cmd, err := commands.NewCreateJobsCommand(hub.ID(), date, vehicle.KindPickup)
	require.NoError(t, err)

	v, err := vehicle.NewVehicle(kernel.NewUUID(), hub.ID(), vehicle.KindPickup)
	require.NoError(t, err)

	orders := []*order.Order{pendingOrder(t, hub.ID(), date), pendingOrder(t, hub.ID(), date)}
	plan := ports.RoutePlan{
		VehicleID: v.ID(),
		Duration:  2 * time.Hour,
		Steps: []ports.RouteStep{
			{ParcelID: orders[0].ParcelID(), Location: orders[0].Location(), ArrivalOffset: 30 * time.Minute},
			{ParcelID: orders[1].ParcelID(), Location: orders[1].Location(), ArrivalOffset: time.Hour},
		},
	}

	uow := NewMockUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.Orders.On("GetPage", ctx, hub.ID(), date, vehicle.KindPickup, 50).Return(orders, nil).Once()
	uow.Vehicles.On("GetByWarehouseAndKind", ctx, hub.ID(), vehicle.KindPickup, 0).
		Return([]*vehicle.Vehicle{v}, nil).Once()
	uow.Warehouses.On("Get", ctx, hub.ID()).Return(hub, nil).Once()
	uow.Vehicles.On("Update", ctx, v).Return(nil).Once()
	uow.Jobs.On("AddJobs", ctx, mock.AnythingOfType("[]*job.Job")).Return(nil).Once()
	uow.Orders.On("Remove", ctx, []kernel.UUID{orders[0].ID(), orders[1].ID()}).Return(nil).Once()

	optimizer := new(MockRouteOptimizer)
	optimizer.On("Optimize", ctx, hub.Location(), orders, []*vehicle.Vehicle{v}).
		Return([]ports.RoutePlan{plan}, nil).Once()

	tracker := new(MockProgressTracker)
	tracker.On("TrackVehicle", ctx, v.ID()).Return(nil).Once()

	h := commands.NewCreateJobsCommandHandler(mockBatchingUoWFactory{uow: uow}, optimizer, tracker, nil)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, vehicle.DailyCapacitySeconds-7200, v.CapacitySeconds())
	uow.Jobs.AssertExpectations(t)
	uow.Orders.AssertExpectations(t)
	tracker.AssertExpectations(t)

	addedJobs := uow.Jobs.Calls[0].Arguments.Get(1).([]*job.Job)
	require.Len(t, addedJobs, 1)
	assert.Equal(t, job.StatusPending, addedJobs[0].Status())
	assert.Len(t, addedJobs[0].Steps(), 2)
}

func TestCreateJobsCommandHandler_Handle_NoPendingOrders(t *testing.T) {
	ctx := t.Context()
	warehouseID := kernel.NewUUID()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	cmd, err := commands.NewCreateJobsCommand(warehouseID, date, vehicle.KindDelivery)
	require.NoError(t, err)

	uow := NewMockUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.Orders.On("GetPage", ctx, warehouseID, date, vehicle.KindDelivery, 50).
		Return([]*order.Order{}, nil).Once()

	optimizer := new(MockRouteOptimizer)
	h := commands.NewCreateJobsCommandHandler(mockBatchingUoWFactory{uow: uow}, optimizer,
		new(MockProgressTracker), nil)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	optimizer.AssertNotCalled(t, "Optimize", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateJobsCommandHandler_Handle_NoVehiclesAvailable(t *testing.T) {
	ctx := t.Context()
	warehouseID := kernel.NewUUID()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	cmd, err := commands.NewCreateJobsCommand(warehouseID, date, vehicle.KindPickup)
	require.NoError(t, err)

	uow := NewMockUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	uow.Orders.On("GetPage", ctx, warehouseID, date, vehicle.KindPickup, 50).
		Return([]*order.Order{pendingOrder(t, warehouseID, date)}, nil).Once()
	uow.Vehicles.On("GetByWarehouseAndKind", ctx, warehouseID, vehicle.KindPickup, 0).
		Return([]*vehicle.Vehicle{}, nil).Once()

	h := commands.NewCreateJobsCommandHandler(mockBatchingUoWFactory{uow: uow},
		new(MockRouteOptimizer), new(MockProgressTracker), nil)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
