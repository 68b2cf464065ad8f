package commands_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"parcelflow/internal/core/application/usecases/commands"
	"parcelflow/internal/core/domain/model/buyer"
	"parcelflow/internal/core/domain/model/job"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/model/order"
	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/core/domain/model/vehicle"
	"parcelflow/internal/core/domain/model/warehouse"
	"parcelflow/internal/core/ports"
)

type MockParcelEventRepository struct{ mock.Mock }

func (m *MockParcelEventRepository) Append(ctx context.Context, event parcel.Event, seq int) error {
	args := m.Called(ctx, event, seq)
	return args.Error(0)
}
func (m *MockParcelEventRepository) GetStream(ctx context.Context, parcelID kernel.UUID) ([]parcel.Event, error) {
	args := m.Called(ctx, parcelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]parcel.Event), args.Error(1)
}
func (m *MockParcelEventRepository) RemoveStream(ctx context.Context, parcelID kernel.UUID) error {
	args := m.Called(ctx, parcelID)
	return args.Error(0)
}

type MockWarehouseRepository struct{ mock.Mock }

func (m *MockWarehouseRepository) Add(ctx context.Context, aggregate *warehouse.Warehouse) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}
func (m *MockWarehouseRepository) Get(ctx context.Context, id kernel.UUID) (*warehouse.Warehouse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehouse.Warehouse), args.Error(1)
}
func (m *MockWarehouseRepository) GetAll(ctx context.Context) ([]*warehouse.Warehouse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*warehouse.Warehouse), args.Error(1)
}

type MockVehicleRepository struct{ mock.Mock }

func (m *MockVehicleRepository) Add(ctx context.Context, aggregate *vehicle.Vehicle) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}
func (m *MockVehicleRepository) Update(ctx context.Context, aggregate *vehicle.Vehicle) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}
func (m *MockVehicleRepository) Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vehicle.Vehicle), args.Error(1)
}
func (m *MockVehicleRepository) GetByWarehouseAndKind(ctx context.Context, warehouseID kernel.UUID, kind vehicle.Kind, capacityFloor int) ([]*vehicle.Vehicle, error) {
	args := m.Called(ctx, warehouseID, kind, capacityFloor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*vehicle.Vehicle), args.Error(1)
}
func (m *MockVehicleRepository) GetAll(ctx context.Context) ([]*vehicle.Vehicle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*vehicle.Vehicle), args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}
func (m *MockOrderRepository) GetPage(ctx context.Context, warehouseID kernel.UUID, date time.Time, kind vehicle.Kind, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, warehouseID, date, kind, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}
func (m *MockOrderRepository) Remove(ctx context.Context, ids []kernel.UUID) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}
func (m *MockOrderRepository) RemoveByParcel(ctx context.Context, parcelID kernel.UUID) error {
	args := m.Called(ctx, parcelID)
	return args.Error(0)
}

type MockJobRepository struct{ mock.Mock }

func (m *MockJobRepository) AddJobs(ctx context.Context, jobs []*job.Job) error {
	args := m.Called(ctx, jobs)
	return args.Error(0)
}
func (m *MockJobRepository) UpdateJob(ctx context.Context, aggregate *job.Job) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}
func (m *MockJobRepository) GetJob(ctx context.Context, id kernel.UUID) (*job.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*job.Job), args.Error(1)
}
func (m *MockJobRepository) GetActiveJobsByVehicle(ctx context.Context, vehicleID kernel.UUID) ([]*job.Job, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*job.Job), args.Error(1)
}
func (m *MockJobRepository) AddTransferJob(ctx context.Context, aggregate *job.TransferJob) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}
func (m *MockJobRepository) UpdateTransferJob(ctx context.Context, aggregate *job.TransferJob) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}
func (m *MockJobRepository) GetTransferJob(ctx context.Context, id kernel.UUID) (*job.TransferJob, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*job.TransferJob), args.Error(1)
}
func (m *MockJobRepository) GetPendingTransferJob(ctx context.Context, connectionKey string, date time.Time) (*job.TransferJob, error) {
	args := m.Called(ctx, connectionKey, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*job.TransferJob), args.Error(1)
}

type MockBuyerRepository struct{ mock.Mock }

func (m *MockBuyerRepository) Add(ctx context.Context, aggregate *buyer.Buyer) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}
func (m *MockBuyerRepository) Update(ctx context.Context, aggregate *buyer.Buyer) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}
func (m *MockBuyerRepository) Get(ctx context.Context, id kernel.UUID) (*buyer.Buyer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*buyer.Buyer), args.Error(1)
}

// MockUoW satisfies every unit of work composition used by the handlers.
type MockUoW struct {
	mock.Mock

	Events     *MockParcelEventRepository
	Warehouses *MockWarehouseRepository
	Vehicles   *MockVehicleRepository
	Orders     *MockOrderRepository
	Jobs       *MockJobRepository
	Buyers     *MockBuyerRepository
}

func NewMockUoW() *MockUoW {
	return &MockUoW{
		Events:     new(MockParcelEventRepository),
		Warehouses: new(MockWarehouseRepository),
		Vehicles:   new(MockVehicleRepository),
		Orders:     new(MockOrderRepository),
		Jobs:       new(MockJobRepository),
		Buyers:     new(MockBuyerRepository),
	}
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) ParcelEventRepository() ports.ParcelEventRepository { return m.Events }
func (m *MockUoW) WarehouseRepository() ports.WarehouseRepository     { return m.Warehouses }
func (m *MockUoW) VehicleRepository() ports.VehicleRepository         { return m.Vehicles }
func (m *MockUoW) OrderRepository() ports.OrderRepository             { return m.Orders }
func (m *MockUoW) JobRepository() ports.JobRepository                 { return m.Jobs }
func (m *MockUoW) BuyerRepository() ports.BuyerRepository             { return m.Buyers }

// mockUoWFactory hands out a fixed unit of work, tolerating any number of
// Create calls.
type mockUoWFactory struct{ uow *MockUoW }

func (f mockUoWFactory) Create() commands.ParcelUoW { return f.uow }

type mockRoutingUoWFactory struct{ uow *MockUoW }

func (f mockRoutingUoWFactory) Create() commands.RoutingUoW { return f.uow }

type mockBatchingUoWFactory struct{ uow *MockUoW }

func (f mockBatchingUoWFactory) Create() commands.BatchingUoW { return f.uow }

type mockProgressUoWFactory struct{ uow *MockUoW }

func (f mockProgressUoWFactory) Create() commands.ProgressUoW { return f.uow }

type mockVehicleUoWFactory struct{ uow *MockUoW }

func (f mockVehicleUoWFactory) Create() commands.VehicleUoW { return f.uow }

type MockPricingClient struct{ mock.Mock }

func (m *MockPricingClient) GetOffer(ctx context.Context, pickup, delivery kernel.Location) (ports.Offer, error) {
	args := m.Called(ctx, pickup, delivery)
	return args.Get(0).(ports.Offer), args.Error(1)
}
func (m *MockPricingClient) AcceptOffer(ctx context.Context, offerID kernel.UUID) error {
	args := m.Called(ctx, offerID)
	return args.Error(0)
}
func (m *MockPricingClient) CancelAcceptOffer(ctx context.Context, offerID kernel.UUID) error {
	args := m.Called(ctx, offerID)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, eventName string, parcelID kernel.UUID, payload any) error {
	args := m.Called(ctx, eventName, parcelID, payload)
	return args.Error(0)
}

type MockProgressTracker struct{ mock.Mock }

func (m *MockProgressTracker) TrackVehicle(ctx context.Context, vehicleID kernel.UUID) error {
	args := m.Called(ctx, vehicleID)
	return args.Error(0)
}
func (m *MockProgressTracker) UntrackVehicle(ctx context.Context, vehicleID kernel.UUID) error {
	args := m.Called(ctx, vehicleID)
	return args.Error(0)
}
func (m *MockProgressTracker) ActiveVehicles(ctx context.Context) ([]kernel.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}
func (m *MockProgressTracker) TrackTransferJob(ctx context.Context, transferJobID kernel.UUID) error {
	args := m.Called(ctx, transferJobID)
	return args.Error(0)
}
func (m *MockProgressTracker) UntrackTransferJob(ctx context.Context, transferJobID kernel.UUID) error {
	args := m.Called(ctx, transferJobID)
	return args.Error(0)
}
func (m *MockProgressTracker) ActiveTransferJobs(ctx context.Context) ([]kernel.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}
func (m *MockProgressTracker) SetVehicleLocation(ctx context.Context, vehicleID kernel.UUID, location kernel.Location) error {
	args := m.Called(ctx, vehicleID, location)
	return args.Error(0)
}
func (m *MockProgressTracker) GetVehicleLocation(ctx context.Context, vehicleID kernel.UUID) (kernel.Location, error) {
	args := m.Called(ctx, vehicleID)
	return args.Get(0).(kernel.Location), args.Error(1)
}

type MockRouteOptimizer struct{ mock.Mock }

func (m *MockRouteOptimizer) Optimize(ctx context.Context, warehouseLocation kernel.Location, orders []*order.Order, vehicles []*vehicle.Vehicle) ([]ports.RoutePlan, error) {
	args := m.Called(ctx, warehouseLocation, orders, vehicles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.RoutePlan), args.Error(1)
}

type MockParcelEventRecorder struct{ mock.Mock }

func (m *MockParcelEventRecorder) Record(ctx context.Context, event parcel.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
