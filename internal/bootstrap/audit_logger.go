package bootstrap

import "context"

type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

// AuditLogger mencatat kejadian operasional (start/stop server, worker).
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
