package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"lading/cmd"
	"lading/internal/adapters/out/postgres/documentrepo"

	"github.com/cenkalti/backoff/v4"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configs := getConfigs()

	gormDB, err := connectDB(configs, logger)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := gormDB.AutoMigrate(&documentrepo.DocumentDTO{}); err != nil {
		logger.Error("Failed to migrate database schema", "error", err)
		os.Exit(1)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		logger.Error("Failed to build application", "error", err)
		os.Exit(1)
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		logger.Error("Failed to start background jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	app.CreateHTTPServer().RegisterRoutes(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
}

// connectDB opens the database with exponential backoff so the service
// survives starting before the database is ready.
func connectDB(configs cmd.Config, logger *slog.Logger) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = 30 * time.Second

	return backoff.RetryWithData(func() (*gorm.DB, error) {
		db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
		if err != nil {
			logger.Warn("Database not ready, retrying", "error", err)
			return nil, err
		}
		return db, nil
	}, policy)
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

		LedgerBaseURL: goDotEnvVariable("LEDGER_BASE_URL"),
		LedgerTimeout: durationVariable("LEDGER_TIMEOUT", 5*time.Second),

		CacheTTL:             durationVariable("CACHE_TTL", 30*time.Second),
		CacheCleanupInterval: durationVariable("CACHE_CLEANUP_INTERVAL", time.Minute),

		QueueMaxDepth:            intVariable("QUEUE_MAX_DEPTH", 1000),
		QueueBatchThreshold:      intVariable("QUEUE_BATCH_THRESHOLD", 50),
		QueueTerminalGracePeriod: durationVariable("QUEUE_TERMINAL_GRACE_PERIOD", 10*time.Minute),

		CommitterMaxBatchSize:   intVariable("COMMITTER_MAX_BATCH_SIZE", 50),
		CommitterMaxInFlight:    intVariable("COMMITTER_MAX_IN_FLIGHT", 4),
		CommitterMaxRetries:     intVariable("COMMITTER_MAX_RETRIES", 3),
		CommitterBaseRetryDelay: durationVariable("COMMITTER_BASE_RETRY_DELAY", 2*time.Second),

		CommitSchedule: envOrDefault("COMMIT_SCHEDULE", "*/5 * * * * *"),
		SweepSchedule:  envOrDefault("SWEEP_SCHEDULE", "0 * * * * *"),
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

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func intVariable(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid value for %s: %s", key, raw)
	}
	return value
}

func durationVariable(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Invalid value for %s: %s", key, raw)
	}
	return value
}
