package contextutil

import (
	"context"

	"go.uber.org/zap"
)

type contextKey int

const (
	requestIDKey contextKey = iota
	identityKey
	loggerKey
)

// Identity adalah user login yang sedang memproses request.
type Identity struct {
	UserID     string
	EmployeeID string
	CompanyID  string
}

func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	rid, _ := ctx.Value(requestIDKey).(string)
	return rid
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func GetIdentity(ctx context.Context) Identity {
	if ctx == nil {
		return Identity{}
	}
	id, _ := ctx.Value(identityKey).(Identity)
	return id
}

func WithUserID(ctx context.Context, uid string) context.Context {
	id := GetIdentity(ctx)
	id.UserID = uid
	return WithIdentity(ctx, id)
}

func GetUserID(ctx context.Context) string {
	return GetIdentity(ctx).UserID
}

func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger mengembalikan logger request; fallback kalau belum ada, lalu Nop.
func GetLogger(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok && l != nil {
			return l
		}
	}
	if fallback != nil {
		return fallback
	}
	return zap.NewNop()
}

type Metadata struct {
	RequestID string
	UserID    string
	CompanyID string
}

func ExtractMetadata(ctx context.Context) Metadata {
	id := GetIdentity(ctx)
	return Metadata{
		RequestID: GetRequestID(ctx),
		UserID:    id.UserID,
		CompanyID: id.CompanyID,
	}
}
