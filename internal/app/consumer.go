package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Sedmeq/WorkTrack/internal/events"
	"github.com/Sedmeq/WorkTrack/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const auditConsumerGroup = "worktrack-audit"

// RunConsumer copies employee and leave lifecycle events into the audit log.
func RunConsumer(cfg Config, logger *zap.Logger) error {
	log := logger.Named("app.consumer")

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	audit, closeAudit, err := auditLogger(cfg, log)
	if err != nil {
		return err
	}
	defer closeAudit()

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		GroupID:        auditConsumerGroup,
		GroupTopics:    []string{events.EmployeeLifecycleTopic, events.LeaveLifecycleTopic},
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	consumer.ConsumeLifecycle(ctx, reader, audit, log)
	log.Info("consumer shutting down")
	return nil
}
