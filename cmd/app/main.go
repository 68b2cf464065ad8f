package main

import (
	"fmt"
	"net/http"
	"os"

	"parcelflow/cmd"
	api "parcelflow/internal/adapters/in/http"
	"parcelflow/internal/adapters/out/postgres"
	"parcelflow/internal/jobs"
	"parcelflow/internal/pkg/metrics"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := mustConnectDB(configs)
	if err := postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB)

	jobManager := jobs.NewJobManager(
		app.CreateAdvanceJobsCommandHandler(),
		app.CreateResetVehiclesCommandHandler(),
		app.Logger(),
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:               goDotEnvVariable("HTTP_PORT"),
		DBHost:                 goDotEnvVariable("DB_HOST"),
		DBPort:                 goDotEnvVariable("DB_PORT"),
		DBUser:                 goDotEnvVariable("DB_USER"),
		DBPassword:             goDotEnvVariable("DB_PASSWORD"),
		DBName:                 goDotEnvVariable("DB_NAME"),
		DBSslMode:              goDotEnvVariable("DB_SSLMODE"),
		KafkaHost:              goDotEnvVariable("KAFKA_HOST"),
		KafkaParcelEventsTopic: goDotEnvVariable("KAFKA_PARCEL_EVENTS_TOPIC"),
		RedisAddr:              goDotEnvVariable("REDIS_ADDR"),
		RouteOptimizerURL:      goDotEnvVariable("ROUTE_OPTIMIZER_URL"),
		PricingServiceURL:      goDotEnvVariable("PRICING_SERVICE_URL"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()

	server := api.NewServer(
		app.CreateAcceptOfferCommandHandler(),
		app.CreateRegisterParcelCommandHandler(),
		app.CreateCreateJobsCommandHandler(),
		app.CreateAdvanceJobsCommandHandler(),
		app.CreateResetVehiclesCommandHandler(),
		app.CreateGetParcelQueryHandler(),
		app.CreateGetVehicleLocationQueryHandler(),
		app.PricingClient(),
	)
	server.RegisterRoutes(e)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
