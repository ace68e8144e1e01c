package bootstrap

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// StdoutAuditLogger writes audit entries to the process log. It backs the
// audit trail when MONGO_URI is unset.
type StdoutAuditLogger struct {
	logger *zap.Logger
}

func NewStdoutAuditLogger(logger ...*zap.Logger) *StdoutAuditLogger {
	l := zap.L().Named("audit")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit")
	}
	return &StdoutAuditLogger{logger: l}
}

func (l *StdoutAuditLogger) Log(_ context.Context, entry AuditLog) error {
	entry = stamp(entry, time.Now())
	l.logger.Info("audit event",
		zap.Time("timestamp", entry.Timestamp),
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
		zap.String("request_id", entry.RequestID),
		zap.Any("meta", entry.Meta),
	)
	return nil
}
