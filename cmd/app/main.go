package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"orderboard/cmd"
	httpin "orderboard/internal/adapters/in/http"
	"orderboard/internal/adapters/out/postgres/orderrepo"
	"orderboard/internal/adapters/out/postgres/statsrepo"
	"orderboard/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db := openDatabase(configs)

	app, err := cmd.NewCompositionRoot(
		configs,
		db,
		mustAtoi("MAX_ACTIVE_ORDERS_PER_PARTICIPANT", configs.MaxActiveOrdersPerParticipant),
		logger,
	)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	jobManager := jobs.NewJobManager(
		app.CreateExpireOrdersCommandHandler(),
		app.CreatePurgeOrdersCommandHandler(),
		time.Duration(mustAtoi("ORDER_SWEEP_INTERVAL_SECONDS", configs.OrderSweepIntervalSeconds))*time.Second,
		time.Duration(mustAtoi("ORDER_PURGE_INTERVAL_SECONDS", configs.OrderPurgeIntervalSeconds))*time.Second,
		time.Duration(mustAtoi("ORDER_RETENTION_DAYS", configs.OrderRetentionDays))*24*time.Hour,
		logger,
	)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:                      goDotEnvVariable("HTTP_PORT"),
		DBHost:                        goDotEnvVariable("DB_HOST"),
		DBPort:                        goDotEnvVariable("DB_PORT"),
		DBUser:                        goDotEnvVariable("DB_USER"),
		DBPassword:                    goDotEnvVariable("DB_PASSWORD"),
		DBName:                        goDotEnvVariable("DB_NAME"),
		DBSslMode:                     goDotEnvVariable("DB_SSLMODE"),
		LedgerBaseURL:                 goDotEnvVariable("LEDGER_BASE_URL"),
		WebhookURL:                    goDotEnvVariable("WEBHOOK_URL"),
		OrderSweepIntervalSeconds:     goDotEnvVariable("ORDER_SWEEP_INTERVAL_SECONDS"),
		OrderPurgeIntervalSeconds:     goDotEnvVariable("ORDER_PURGE_INTERVAL_SECONDS"),
		OrderRetentionDays:            goDotEnvVariable("ORDER_RETENTION_DAYS"),
		MaxActiveOrdersPerParticipant: goDotEnvVariable("MAX_ACTIVE_ORDERS_PER_PARTICIPANT"),
		DefaultOrderTTLMinutes:        goDotEnvVariable("DEFAULT_ORDER_TTL_MINUTES"),
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

func mustAtoi(key string, value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("Invalid value for %s: %q", key, value)
	}
	return n
}

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.DeliveryRecordDTO{},
		&statsrepo.ParticipantStatsDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func startWebServer(app cmd.CompositionRoot, configs cmd.Config) {
	e := echo.New()
	e.Use(middleware.Recover())

	defaultTTL := time.Duration(mustAtoi("DEFAULT_ORDER_TTL_MINUTES", configs.DefaultOrderTTLMinutes)) * time.Minute

	server := httpin.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateDeliverOrderCommandHandler(),
		app.CreateCancelOrderCommandHandler(),
		app.CreateGetOpenOrdersQueryHandler(),
		app.CreateGetOwnerOrdersQueryHandler(),
		app.CreateGetOrderDeliveriesQueryHandler(),
		app.CreateGetParticipantStatsQueryHandler(),
		app.Ledger(),
		defaultTTL,
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
