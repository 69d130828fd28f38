package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"APP_PORT", "SESSION_IDLE_MINUTES", "SESSION_HISTORY_SIZE", "SESSION_SWEEP_SECONDS",
		"RATE_LIMIT_PER_SECOND", "RATE_LIMIT_BURST", "REDIS_ADDRESS", "GEMINI_API_KEY",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTimeout)
	assert.Equal(t, 10, cfg.SessionHistorySize)
	assert.Equal(t, time.Minute, cfg.SessionSweepInterval)
	assert.Equal(t, float64(50), cfg.RateLimitPerSecond)
	assert.False(t, cfg.RedisEnabled)
	assert.False(t, cfg.GeminiTagger)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("SESSION_IDLE_MINUTES", "5")
	t.Setenv("SESSION_HISTORY_SIZE", "not-a-number")
	t.Setenv("RATE_LIMIT_PER_SECOND", "2.5")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 5*time.Minute, cfg.SessionIdleTimeout)
	assert.Equal(t, 10, cfg.SessionHistorySize)
	assert.Equal(t, 2.5, cfg.RateLimitPerSecond)
	assert.True(t, cfg.RedisEnabled)
}

type sample struct {
	SessionID string `json:"session_id" validate:"max=3"`
	Limit     int    `query:"limit" validate:"min=1"`
}

func TestValidatorUsesFieldTags(t *testing.T) {
	err := NewValidator().Struct(sample{SessionID: "toolong", Limit: 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session_id")
	assert.Contains(t, err.Error(), "limit")
}

func TestNewServerRequiresFiberAndLogger(t *testing.T) {
	_, err := NewServer()
	assert.Error(t, err)
}
