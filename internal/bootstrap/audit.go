package bootstrap

import "context"

type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}

// MultiAuditLogger fans one entry out to every sink.
type MultiAuditLogger []AuditLogger

func (m MultiAuditLogger) Log(ctx context.Context, entry AuditLog) {
	for _, l := range m {
		if l != nil {
			l.Log(ctx, entry)
		}
	}
}
