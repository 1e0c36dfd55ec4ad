package producer

import (
	"context"
	"time"

	"inthehaus-hr/internal/messaging/kafka"

	"go.uber.org/zap"
)

const (
	DefaultPollInterval = 3 * time.Second
	batchSize           = 50
	// maxBatchesPerTick bounds one drain so a backlog cannot starve shutdown.
	maxBatchesPerTick = 20
)

// ProcessOutboxEvents drains the outbox once, then again on every tick until
// ctx is cancelled.
func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	if logger == nil {
		logger = zap.L()
	}
	log := logger.Named("kafka.producer.worker")
	log.Info("outbox worker started", zap.Duration("poll_interval", pollInterval))

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		drain(ctx, repo, writer, log)

		select {
		case <-ctx.Done():
			log.Info("outbox worker stopped")
			return
		case <-ticker.C:
		}
	}
}

// drain keeps pulling full batches so a backlog clears within one tick.
func drain(ctx context.Context, repo kafka.OutboxRepository, writer MessageWriter, log *zap.Logger) {
	for i := 0; i < maxBatchesPerTick && ctx.Err() == nil; i++ {
		claimed, sent, err := processPendingEvents(ctx, repo, writer, log)
		if err != nil {
			if ctx.Err() == nil {
				log.Error("process outbox events failed", zap.Error(err))
			}
			return
		}
		if sent > 0 {
			log.Debug("outbox batch published", zap.Int("claimed", claimed), zap.Int("sent", sent))
		}
		if claimed < batchSize {
			return
		}
	}
}

// processPendingEvents publishes one claimed batch. It reports how many rows
// were claimed and how many of those reached the broker.
func processPendingEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	log *zap.Logger,
) (claimed, sent int, err error) {
	batch, err := repo.ListPending(ctx, batchSize)
	if err != nil {
		return 0, 0, err
	}

	for _, event := range batch {
		if err := ctx.Err(); err != nil {
			return len(batch), sent, err
		}
		if !event.Retryable() {
			continue
		}

		fields := []zap.Field{
			zap.String("outbox_id", event.ID),
			zap.String("request_id", event.RequestID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
		}

		if err := writer.WriteMessages(ctx, toMessage(event)); err != nil {
			log.Error("publish outbox event failed",
				append(fields, zap.Int("retry_count", event.RetryCount), zap.Error(err))...)
			if markErr := repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				log.Error("record outbox failure failed", append(fields, zap.Error(markErr))...)
			}
			if event.RetryCount+1 >= kafka.MaxOutboxRetries {
				log.Warn("outbox event parked as dead", fields...)
			}
			continue
		}

		// A lost MarkSent means the event is published again once the
		// lease expires.
		if err := repo.MarkSent(ctx, event.ID); err != nil {
			log.Error("mark outbox sent failed", append(fields, zap.Error(err))...)
			continue
		}
		sent++
		log.Info("outbox event sent", fields...)
	}

	return len(batch), sent, nil
}
