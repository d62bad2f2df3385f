package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "memory", cfg.StorageType)
	assert.Equal(t, 24*time.Hour, cfg.ParticipantTTL)
	assert.Equal(t, 256, cfg.WS().SendBuffer)
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SCRUMPOKER_PORT", "9090")
	t.Setenv("SCRUMPOKER_STORAGE_TYPE", "redis")
	t.Setenv("SCRUMPOKER_REDIS_URL", "redis://cache:6379/1")
	t.Setenv("SCRUMPOKER_VOTE_TTL", "2h")
	t.Setenv("SCRUMPOKER_LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server().Port)
	assert.Equal(t, "redis", cfg.StorageType)
	assert.Equal(t, "redis://cache:6379/1", cfg.Redis().URL)
	assert.Equal(t, 2*time.Hour, cfg.Redis().VoteTTL)
	assert.Equal(t, 2*time.Hour, cfg.Badger().VoteTTL)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
}

func TestLoadRejectsBadValue(t *testing.T) {
	t.Setenv("SCRUMPOKER_PORT", "not-a-port")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsPingSlowerThanPong(t *testing.T) {
	t.Setenv("SCRUMPOKER_WS_PING_PERIOD", "2m")

	_, err := Load()
	require.Error(t, err)
}
