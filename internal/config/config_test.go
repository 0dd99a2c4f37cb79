package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, BackendSQLite, cfg.StateBackend)
	assert.Equal(t, QueueLocal, cfg.TaskQueue)
	assert.Equal(t, 30*time.Minute, cfg.CaretakerBuffer)
	assert.Equal(t, 48*time.Hour, cfg.MinLeadTime)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STATE_BACKEND", "redis")
	t.Setenv("CARETAKER_BUFFER", "45m")
	t.Setenv("CHAT_RATE_PER_MIN", "5")
	t.Setenv("APP_ENV", "Production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, BackendRedis, cfg.StateBackend)
	assert.Equal(t, 45*time.Minute, cfg.CaretakerBuffer)
	assert.Equal(t, 5, cfg.ChatRatePerMin)
	assert.True(t, cfg.IsProduction())
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("STATE_BACKEND", "mongo")

	_, err := Load()
	assert.Error(t, err)
}
