package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"saral-hr/internal/bootstrap"
	"saral-hr/internal/messaging/kafka"
	"saral-hr/internal/messaging/kafka/producer"
	"saral-hr/internal/shared/connection"

	"go.uber.org/zap"
)

func envDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d >= 0 {
		return d
	}
	return fallback
}

func relayConfigFromEnv() producer.RelayConfig {
	return producer.RelayConfig{
		PollInterval:  envDuration("OUTBOX_POLL_INTERVAL", 3*time.Second),
		Retention:     envDuration("OUTBOX_RETENTION", 7*24*time.Hour),
		PurgeInterval: envDuration("OUTBOX_PURGE_INTERVAL", time.Hour),
	}
}

// RunWorker menjalankan outbox relay sampai SIGINT/SIGTERM.
func RunWorker() error {
	logger := zap.L().Named("app.worker")
	audit := bootstrap.NewStdoutAuditLogger(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	_, sqlDB, err := connectDatabase(ctx, logger)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	writer, err := connection.ConnectKafkaWriter(ctx, os.Getenv("KAFKA_BROKER"), logger)
	if err != nil {
		return err
	}
	defer writer.Close()

	cfg := relayConfigFromEnv()
	relay := producer.NewRelay(sqlDB, kafka.NewOutboxRepository(sqlDB), writer, cfg, logger)

	audit.Log(ctx, bootstrap.AuditLog{
		Action:  "WORKER_STARTED",
		Message: "outbox relay started",
		Meta:    map[string]any{"poll_interval": cfg.PollInterval.String(), "retention": cfg.Retention.String()},
	})
	relay.Run(ctx)
	audit.Log(context.Background(), bootstrap.AuditLog{Action: "WORKER_STOPPED", Message: "outbox relay stopped"})

	return nil
}
