package producer

import (
	"context"
	"time"

	"github.com/Sedmeq/WorkTrack/internal/messaging/kafka"

	"go.uber.org/zap"
)

const (
	batchSize           = 50
	defaultPollInterval = 3 * time.Second
	purgeInterval       = time.Hour
	sentRetention       = 7 * 24 * time.Hour
)

// ProcessOutboxEvents drains the outbox on every tick until ctx is cancelled.
func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}

	log := logger.Named("kafka.producer.worker")
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	purge := time.NewTicker(purgeInterval)
	defer purge.Stop()

	log.Info("outbox worker started", zap.Duration("poll_interval", pollInterval))

	for {
		select {
		case <-ctx.Done():
			log.Info("outbox worker stopped")
			return
		case <-ticker.C:
			if _, err := DrainOnce(ctx, repo, writer, log); err != nil {
				log.Error("process outbox events failed", zap.Error(err))
			}
		case now := <-purge.C:
			PurgeDelivered(ctx, repo, now, log)
		}
	}
}

// DrainOnce publishes one batch of due events and reports how many were sent.
// A failed publish marks the event for retry and moves on to the next one.
func DrainOnce(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
) (int, error) {
	events, err := repo.ListPending(ctx, batchSize)
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}

	logger.Debug("processing pending outbox events", zap.Int("count", len(events)))

	sent := 0
	for _, event := range events {
		fields := []zap.Field{
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
			zap.String("request_id", event.RequestID),
		}

		if err := publishEvent(ctx, writer, event); err != nil {
			logger.Error("publish outbox event failed", append(fields, zap.Error(err))...)
			if markErr := repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				logger.Error("mark outbox failed failed", append(fields, zap.Error(markErr))...)
			}
			continue
		}

		if err := repo.MarkSent(ctx, event.ID); err != nil {
			logger.Error("mark outbox sent failed", append(fields, zap.Error(err))...)
			continue
		}

		sent++
		logger.Info("outbox event sent", fields...)
	}

	return sent, nil
}

// PurgeDelivered drops sent events older than the retention window.
func PurgeDelivered(ctx context.Context, repo kafka.OutboxRepository, now time.Time, logger *zap.Logger) {
	removed, err := repo.PurgeSent(ctx, now.Add(-sentRetention))
	if err != nil {
		logger.Warn("purge sent outbox events failed", zap.Error(err))
		return
	}
	if removed > 0 {
		logger.Info("purged sent outbox events", zap.Int64("count", removed))
	}
}
