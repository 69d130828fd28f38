package config

import (
	"os"
	"strconv"
	"time"

	"HealthifyChat/internal/middleware"
	"HealthifyChat/pkg/session"
)

type AppConfig struct {
	Port string

	SessionIdleTimeout   time.Duration
	SessionHistorySize   int
	SessionSweepInterval time.Duration

	RateLimitPerSecond float64
	RateLimitBurst     int

	RedisEnabled  bool
	GeminiTagger  bool
	GeminiTimeout time.Duration
}

// Load reads the process environment. Unset or malformed values fall back to
// the defaults.
func Load() AppConfig {
	return AppConfig{
		Port: getEnv("APP_PORT", "3000"),

		SessionIdleTimeout:   time.Duration(getEnvInt("SESSION_IDLE_MINUTES", int(session.DefaultIdleTimeout/time.Minute))) * time.Minute,
		SessionHistorySize:   getEnvInt("SESSION_HISTORY_SIZE", session.DefaultHistorySize),
		SessionSweepInterval: time.Duration(getEnvInt("SESSION_SWEEP_SECONDS", 60)) * time.Second,

		RateLimitPerSecond: getEnvFloat("RATE_LIMIT_PER_SECOND", middleware.DefaultRequestRate),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", middleware.DefaultBurstSize),

		RedisEnabled:  os.Getenv("REDIS_ADDRESS") != "",
		GeminiTagger:  os.Getenv("GEMINI_API_KEY") != "",
		GeminiTimeout: time.Duration(getEnvInt("GEMINI_TIMEOUT_SECONDS", 3)) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	f, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || f <= 0 {
		return fallback
	}
	return f
}
