package bootstrap

import (
	"context"
	"time"

	"inthehaus-hr/internal/shared/contextutil"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const auditCollection = "audit_logs"

// InsertOner is the subset of *mongo.Collection the audit sink needs.
type InsertOner interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

type MongoAuditLogger struct {
	coll    InsertOner
	timeout time.Duration
	now     func() time.Time
}

func NewMongoAuditLogger(db *mongo.Database) *MongoAuditLogger {
	return NewMongoAuditLoggerWithCollection(db.Collection(auditCollection))
}

func NewMongoAuditLoggerWithCollection(coll InsertOner) *MongoAuditLogger {
	return &MongoAuditLogger{coll: coll, timeout: 3 * time.Second, now: time.Now}
}

// Log never fails the caller; insert errors are only logged.
func (l *MongoAuditLogger) Log(ctx context.Context, entry AuditLog) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.timeout)
	defer cancel()

	doc := bson.M{
		"action":     entry.Action,
		"message":    entry.Message,
		"meta":       entry.Meta,
		"request_id": contextutil.GetRequestID(ctx),
		"created_at": l.now().UTC(),
	}

	if _, err := l.coll.InsertOne(ctx, doc); err != nil {
		zap.L().Named("audit").Warn("mongo audit insert failed",
			zap.String("action", entry.Action),
			zap.Error(err),
		)
	}
}
