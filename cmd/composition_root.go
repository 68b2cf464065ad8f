package cmd

import (
	"log/slog"
	"math/rand/v2"
	"os"

	"parcelflow/internal/adapters/out/kafka"
	"parcelflow/internal/adapters/out/postgres"
	"parcelflow/internal/adapters/out/pricing"
	redis_adapter "parcelflow/internal/adapters/out/redis"
	"parcelflow/internal/adapters/out/routing"
	"parcelflow/internal/core/application/usecases/commands"
	"parcelflow/internal/core/application/usecases/queries"
	"parcelflow/internal/core/domain/services"
	"parcelflow/internal/core/ports"
	"parcelflow/internal/pkg/metrics"
	"parcelflow/internal/pkg/saga"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers. All outbound
// dependencies are constructed once and shared.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	publisher *kafka.Publisher
	tracker   *redis_adapter.Tracker
	optimizer *routing.Client
	pricing   *pricing.Client

	logger  *slog.Logger
	metrics *metrics.ServiceMetrics
}

// NewCompositionRoot builds the object graph from configuration and the open
// database connection.
func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	redisClient := redis.NewClient(&redis.Options{Addr: config.RedisAddr})

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  kafka.NewPublisher(config.KafkaHost, config.KafkaParcelEventsTopic, logger),
		tracker:    redis_adapter.NewTracker(redisClient),
		optimizer:  routing.NewClient(config.RouteOptimizerURL),
		pricing:    pricing.NewClient(config.PricingServiceURL),
		logger:     logger,
		metrics:    metrics.NewServiceMetrics("engine"),
	}
}

// Logger returns the shared structured logger.
func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

// Metrics returns the shared service metrics.
func (c *CompositionRoot) Metrics() *metrics.ServiceMetrics {
	return c.metrics
}

// PricingClient returns the shared pricing service client.
func (c *CompositionRoot) PricingClient() ports.PricingClient {
	return c.pricing
}

func (c *CompositionRoot) CreateAcceptOfferCommandHandler() commands.AcceptOfferCommandHandler {
	var f commands.ParcelUoWFactory = FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptOfferCommandHandler(f, services.NewTransitPlanner(),
		c.pricing, c.publisher, saga.NewCoordinator(c.logger))
}

func (c *CompositionRoot) CreateRegisterParcelCommandHandler() commands.RegisterParcelCommandHandler {
	var f commands.ParcelUoWFactory = FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterParcelCommandHandler(f, services.NewTransitPlanner(), c.publisher)
}

func (c *CompositionRoot) CreateRecordParcelEventCommandHandler() commands.RecordParcelEventCommandHandler {
	var f commands.RoutingUoWFactory = FuncRoutingUoWFactory(func() commands.RoutingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordParcelEventCommandHandler(f, c.publisher, c.tracker, c.metrics)
}

func (c *CompositionRoot) CreateCreateJobsCommandHandler() commands.CreateJobsCommandHandler {
	var f commands.BatchingUoWFactory = FuncBatchingUoWFactory(func() commands.BatchingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateJobsCommandHandler(f, c.optimizer, c.tracker, c.metrics)
}

func (c *CompositionRoot) CreateAdvanceJobsCommandHandler() commands.AdvanceJobsCommandHandler {
	var f commands.ProgressUoWFactory = FuncProgressUoWFactory(func() commands.ProgressUoW {
		return c.uowFactory.Create()
	})
	recorder := c.CreateRecordParcelEventCommandHandler()
	return commands.NewAdvanceJobsCommandHandler(f, c.tracker, &recorder,
		rand.Float64, c.logger, c.metrics)
}

func (c *CompositionRoot) CreateResetVehiclesCommandHandler() commands.ResetVehiclesCommandHandler {
	var f commands.VehicleUoWFactory = FuncVehicleUoWFactory(func() commands.VehicleUoW {
		return c.uowFactory.Create()
	})
	return commands.NewResetVehiclesCommandHandler(f)
}

func (c *CompositionRoot) CreateGetParcelQueryHandler() queries.GetParcelQueryHandler {
	return queries.NewGetParcelQueryHandler(c.uowFactory.Create().ParcelEventRepository())
}

func (c *CompositionRoot) CreateGetVehicleLocationQueryHandler() queries.GetVehicleLocationQueryHandler {
	return queries.NewGetVehicleLocationQueryHandler(c.tracker)
}

type FuncParcelUoWFactory func() commands.ParcelUoW

func (f FuncParcelUoWFactory) Create() commands.ParcelUoW {
	return f()
}

type FuncRoutingUoWFactory func() commands.RoutingUoW

func (f FuncRoutingUoWFactory) Create() commands.RoutingUoW {
	return f()
}

type FuncBatchingUoWFactory func() commands.BatchingUoW

func (f FuncBatchingUoWFactory) Create() commands.BatchingUoW {
	return f()
}

type FuncProgressUoWFactory func() commands.ProgressUoW

func (f FuncProgressUoWFactory) Create() commands.ProgressUoW {
	return f()
}

type FuncVehicleUoWFactory func() commands.VehicleUoW

func (f FuncVehicleUoWFactory) Create() commands.VehicleUoW {
	return f()
}
