package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"inthehaus-hr/internal/config"
	"inthehaus-hr/internal/messaging/kafka"
	"inthehaus-hr/internal/messaging/kafka/producer"
	"inthehaus-hr/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker relays pending outbox rows to Kafka until SIGINT/SIGTERM.
func RunWorker(cfg *config.Config) error {
	logger := zap.L().Named("app.worker")

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	deps, err := connectDatabase(cfg)
	if err != nil {
		return err
	}
	defer deps.Close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, cfg.ConnectRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(deps.sqlDB)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	producer.ProcessOutboxEvents(ctx, outboxRepo, kafkaWriter, logger, producer.DefaultPollInterval)

	logger.Info("worker shut down")
	return nil
}
