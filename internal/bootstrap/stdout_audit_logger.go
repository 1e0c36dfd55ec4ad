package bootstrap

import (
	"context"

	"inthehaus-hr/internal/shared/contextutil"

	"go.uber.org/zap"
)

type StdoutAuditLogger struct {
	logger *zap.Logger
}

func NewStdoutAuditLogger() *StdoutAuditLogger {
	return &StdoutAuditLogger{logger: zap.L().Named("audit")}
}

func (l *StdoutAuditLogger) Log(ctx context.Context, entry AuditLog) {
	l.logger.Info("audit event",
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.Any("meta", entry.Meta),
	)
}
