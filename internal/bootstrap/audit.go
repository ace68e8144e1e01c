package bootstrap

import (
	"context"
	"time"
)

// AuditLog is one entry in the append-only audit trail.
type AuditLog struct {
	Action    string         `bson:"action" json:"action"`
	Message   string         `bson:"message" json:"message"`
	RequestID string         `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Meta      map[string]any `bson:"meta,omitempty" json:"meta,omitempty"`
	Timestamp time.Time      `bson:"timestamp" json:"timestamp"`
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog) error
}

func stamp(entry AuditLog, now time.Time) AuditLog {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = now.UTC()
	}
	return entry
}
