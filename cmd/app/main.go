package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"terabia/cmd"
	adapterhttp "terabia/internal/adapters/in/http"

	"github.com/joho/godotenv"
)

const (
	defaultBackfillCron  = "0 * * * * *" // every minute
	defaultStatsCacheTTL = time.Minute
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	config := getConfig(logger)

	root, err := cmd.NewCompositionRoot(config, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := root.Close(); closeErr != nil {
			logger.Error("shutdown cleanup failed", "error", closeErr)
		}
	}()

	jobManager := root.NewJobManager()
	if err = jobManager.StartAll(); err != nil {
		logger.Error("starting jobs failed", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	e := adapterhttp.NewEcho(root.NewHTTPServer())
	if err = e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)); err != nil {
		logger.Error("http server stopped", "error", err)
		os.Exit(1)
	}
}

func getConfig(logger *slog.Logger) cmd.Config {
	// A missing .env file is fine in containerized deployments where the
	// environment is injected directly.
	if err := godotenv.Load(".env"); err != nil {
		logger.Info("no .env file, using process environment")
	}

	return cmd.Config{
		HTTPPort:               envOr("HTTP_PORT", "8080"),
		DBHost:                 os.Getenv("DB_HOST"),
		DBPort:                 envOr("DB_PORT", "5432"),
		DBUser:                 os.Getenv("DB_USER"),
		DBPassword:             os.Getenv("DB_PASSWORD"),
		DBName:                 os.Getenv("DB_NAME"),
		DBSslMode:              envOr("DB_SSLMODE", "disable"),
		KafkaHost:              os.Getenv("KAFKA_HOST"),
		KafkaOrderChangedTopic: envOr("KAFKA_ORDER_CHANGED_TOPIC", "order.changed"),
		RedisAddr:              os.Getenv("REDIS_ADDR"),
		StatsCacheTTL:          durationOr("STATS_CACHE_TTL", defaultStatsCacheTTL),
		DeliveryBackfillCron:   envOr("DELIVERY_BACKFILL_CRON", defaultBackfillCron),
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
