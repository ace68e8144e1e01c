package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Sedmeq/WorkTrack/internal/bootstrap"
	"github.com/Sedmeq/WorkTrack/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the subset of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ErrMalformedEvent marks a message that can never be processed.
var ErrMalformedEvent = errors.New("malformed lifecycle event")

// ToAuditLog turns a lifecycle message into an audit entry. The full payload
// is kept as meta so nothing is lost for event types added later.
func ToAuditLog(msg kafkago.Message) (bootstrap.AuditLog, error) {
	var env events.Envelope
	if err := json.Unmarshal(msg.Value, &env); err != nil {
		return bootstrap.AuditLog{}, errors.Join(ErrMalformedEvent, err)
	}
	if env.EventType == "" {
		return bootstrap.AuditLog{}, ErrMalformedEvent
	}

	var meta map[string]any
	if err := json.Unmarshal(msg.Value, &meta); err != nil {
		return bootstrap.AuditLog{}, errors.Join(ErrMalformedEvent, err)
	}
	meta["topic"] = msg.Topic
	meta["partition"] = msg.Partition
	meta["offset"] = msg.Offset

	entry := bootstrap.AuditLog{
		Action:    env.EventType,
		Message:   "lifecycle event " + env.EventType,
		Meta:      meta,
		Timestamp: env.OccurredAt.UTC(),
	}
	for _, h := range msg.Headers {
		if h.Key == "request_id" {
			entry.RequestID = string(h.Value)
		}
	}
	return entry, nil
}

// ConsumeLifecycle records every lifecycle event read from reader into the
// audit trail. Malformed messages are committed and skipped; a failed audit
// write leaves the offset uncommitted so the event is redelivered.
func ConsumeLifecycle(
	ctx context.Context,
	reader MessageReader,
	audit bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.lifecycle")
	log.Info("lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("lifecycle consumer stopped")
				return
			}
			log.Error("fetch lifecycle message failed", zap.Error(err))
			continue
		}

		if err := HandleMessage(ctx, reader, audit, msg, log); err != nil {
			log.Error("handle lifecycle message failed",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		}
	}
}

// HandleMessage processes a single message and commits it when done.
func HandleMessage(
	ctx context.Context,
	reader MessageReader,
	audit bootstrap.AuditLogger,
	msg kafkago.Message,
	log *zap.Logger,
) error {
	entry, err := ToAuditLog(msg)
	if err != nil {
		log.Warn("skipping malformed lifecycle event",
			zap.String("topic", msg.Topic),
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		return reader.CommitMessages(ctx, msg)
	}

	if err := audit.Log(ctx, entry); err != nil {
		return err
	}

	if err := reader.CommitMessages(ctx, msg); err != nil {
		return err
	}

	log.Info("lifecycle event recorded",
		zap.String("event_type", entry.Action),
		zap.String("request_id", entry.RequestID),
	)
	return nil
}
