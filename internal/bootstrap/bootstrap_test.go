package bootstrap

import (
	"context"
	"testing"
	"time"

	"saral-hr/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestServerConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "")
	assert.Equal(t, "3000", ServerConfigFromEnv().Port)

	t.Setenv("PORT", "8080")
	cfg := ServerConfigFromEnv()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestStdoutAuditLogger_Log(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	audit := NewStdoutAuditLogger(zap.New(core))
	audit.now = func() time.Time { return time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC) }

	ctx := contextutil.WithRequestID(context.Background(), "req-1")
	ctx = contextutil.WithIdentity(ctx, contextutil.Identity{UserID: "user-1", CompanyID: "company-1"})
	audit.Log(ctx, AuditLog{Action: "SERVER_SHUTDOWN", Message: "bye", Meta: map[string]any{"signal": "SIGTERM"}})

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "audit", entries[0].LoggerName)
		assert.Equal(t, "SERVER_SHUTDOWN", fields["action"])
		assert.Equal(t, "2025-03-01T09:00:00Z", fields["timestamp"])
		assert.Equal(t, "req-1", fields["request_id"])
		assert.Equal(t, "company-1", fields["company_id"])
	}
}

func TestNewLogger_Level(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "warn")
	prev := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	logger, err := NewLogger("saral-hr-api")
	require.NoError(t, err)
	assert.True(t, IsProduction())
	assert.False(t, logger.Core().Enabled(zap.InfoLevel))
	assert.True(t, logger.Core().Enabled(zap.WarnLevel))
	assert.Same(t, logger, zap.L())

	t.Setenv("LOG_LEVEL", "loud")
	_, err = NewLogger("saral-hr-api")
	assert.Error(t, err)
}
