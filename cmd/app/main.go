package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"herdshare/cmd"
	httpadapter "herdshare/internal/adapters/in/http"
	"herdshare/internal/adapters/out/postgres/allocationrepo"
	"herdshare/internal/adapters/out/postgres/checkpointrepo"
	"herdshare/internal/adapters/out/postgres/clusterrepo"
	"herdshare/internal/adapters/out/postgres/commitmentrepo"
	"herdshare/internal/adapters/out/postgres/eventlogrepo"
	"herdshare/internal/adapters/out/postgres/pricingrepo"
	"herdshare/internal/adapters/out/postgres/routerepo"
	"herdshare/internal/jobs"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	mustMigrateDB(gormDB)

	app, err := cmd.NewCompositionRoot(configs, gormDB)
	if err != nil {
		log.Fatalf("Failed to assemble application: %v", err)
	}

	jobManager := jobs.NewJobManager(app.CreateRefreshRouteDensityCommandHandler(), logger)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),

		PaymentBaseURL:       goDotEnvVariable("PAYMENT_BASE_URL"),
		PaymentSecretKey:     goDotEnvVariable("PAYMENT_SECRET_KEY"),
		PaymentWebhookSecret: goDotEnvVariable("PAYMENT_WEBHOOK_SECRET"),
		PaymentSuccessURL:    goDotEnvVariable("PAYMENT_SUCCESS_URL"),
		PaymentCancelURL:     goDotEnvVariable("PAYMENT_CANCEL_URL"),

		JWTSigningKey: goDotEnvVariable("JWT_SIGNING_KEY"),
	}

	taxRate, err := strconv.ParseFloat(goDotEnvVariable("TAX_RATE_PERCENT"), 64)
	if err != nil {
		log.Fatalf("TAX_RATE_PERCENT is not a number: %v", err)
	}
	config.TaxRatePercent = taxRate

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

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func mustMigrateDB(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&allocationrepo.AllocationDTO{},
		&checkpointrepo.CheckpointDTO{},
		&clusterrepo.ClusterDTO{},
		&routerepo.RouteDTO{},
		&commitmentrepo.CommitmentDTO{},
		&eventlogrepo.EntryDTO{},
		&pricingrepo.ConfigDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	server := httpadapter.NewServer(httpadapter.Handlers{
		CreateAllocation:    app.CreateCreateAllocationCommandHandler(),
		StartCheckout:       app.CreateStartCheckoutCommandHandler(),
		ProcessPaymentEvent: app.CreateProcessPaymentEventCommandHandler(),
		UpdateStatus:        app.CreateUpdateAllocationStatusCommandHandler(),
		AssignRoute:         app.CreateAssignRouteCommandHandler(),
		RecordCheckpoint:    app.CreateRecordCheckpointCommandHandler(),
		CreateCommitment:    app.CreateCreateCommitmentCommandHandler(),

		GetAllocations:        app.CreateGetAllocationsQueryHandler(),
		GetAllocation:         app.CreateGetAllocationQueryHandler(),
		GetCheckpoints:        app.CreateGetCheckpointsQueryHandler(),
		GetAdminAllocations:   app.CreateGetAdminAllocationsQueryHandler(),
		GetRancherAssignments: app.CreateGetRancherAssignmentsQueryHandler(),
		GetCommitments:        app.CreateGetCommitmentsQueryHandler(),
		GetDemandForecast:     app.CreateGetDemandForecastQueryHandler(),
		GetMetricsSummary:     app.CreateGetMetricsSummaryQueryHandler(),
	}, app.PaymentGateway(), app.IdentityProvider())

	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
