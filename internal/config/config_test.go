package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "chessduel", cfg.MongoDatabase)
	assert.Empty(t, cfg.MongoURI)
	assert.Equal(t, 10*time.Minute, cfg.GameCacheTTL)
	assert.Zero(t, cfg.AbandonAfter)
	assert.False(t, cfg.RequireAuth)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("REDIS_URI", "redis://localhost:6379/0")
	t.Setenv("REDIS_EVENT_RELAY", "true")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("REQUIRE_AUTH", "true")
	t.Setenv("ABANDON_AFTER", "24h")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.True(t, cfg.EventRelay)
	assert.True(t, cfg.RequireAuth)
	assert.Equal(t, 24*time.Hour, cfg.AbandonAfter)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"auth without secret", map[string]string{"REQUIRE_AUTH": "true"}},
		{"relay without redis", map[string]string{"REDIS_EVENT_RELAY": "true"}},
		{"bad duration", map[string]string{"GAME_CACHE_TTL": "soon"}},
		{"bad level", map[string]string{"LOG_LEVEL": "loud"}},
		{"negative idle window", map[string]string{"ABANDON_AFTER": "-1h"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
