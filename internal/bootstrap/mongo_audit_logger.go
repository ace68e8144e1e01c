package bootstrap

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const AuditCollection = "audit_log"

// Inserter is the part of a mongo collection the audit logger writes through.
type Inserter interface {
	InsertOne(ctx context.Context, document interface{}, opts ...options.Lister[options.InsertOneOptions]) (*mongo.InsertOneResult, error)
}

type MongoAuditLogger struct {
	coll Inserter
	now  func() time.Time
}

func NewMongoAuditLogger(db *mongo.Database) *MongoAuditLogger {
	return &MongoAuditLogger{coll: db.Collection(AuditCollection), now: time.Now}
}

func (l *MongoAuditLogger) Log(ctx context.Context, entry AuditLog) error {
	_, err := l.coll.InsertOne(ctx, stamp(entry, l.now()))
	return err
}
