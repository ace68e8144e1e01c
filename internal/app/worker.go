package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sedmeq/WorkTrack/internal/messaging/kafka"
	"github.com/Sedmeq/WorkTrack/internal/messaging/kafka/producer"
	"github.com/Sedmeq/WorkTrack/internal/shared/connection"

	"go.uber.org/zap"
)

const outboxPollInterval = 3 * time.Second

// RunWorker publishes pending outbox rows to Kafka until SIGINT or SIGTERM.
func RunWorker(cfg Config, logger *zap.Logger) error {
	log := logger.Named("app.worker")

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	gormDB, err := connectDatabase(cfg)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, connectRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("outbox worker starting", zap.Duration("poll_interval", outboxPollInterval))
	producer.ProcessOutboxEvents(ctx, outboxRepo, kafkaWriter, log, outboxPollInterval)
	log.Info("worker shutting down")
	return nil
}
