package cmd

import "time"

// Config carries everything the composition root needs to wire the service.
// Values come from the environment; see cmd/app/main.go.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// KafkaHost empty means order change events are dropped.
	KafkaHost              string
	KafkaOrderChangedTopic string

	// RedisAddr empty means seller stats are recomputed on every request.
	RedisAddr     string
	StatsCacheTTL time.Duration

	// Six-field cron expression for the delivery backfill sweep.
	DeliveryBackfillCron string
}
