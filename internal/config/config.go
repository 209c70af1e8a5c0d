package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// Provider keys. Both are required for a turn to succeed; their absence
	// is surfaced per request rather than blocking startup, so /health keeps
	// answering while keys are being rotated.
	OpenWeatherAPIKey string
	GeminiAPIKey      string

	// Session defaults for new conversations.
	DefaultCity     string
	DefaultLanguage string

	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration

	// Idle-session retention.
	SessionMaxIdle time.Duration
	PruneInterval  time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	cfg.DefaultCity = getenvDefault("DEFAULT_CITY", "Tokyo")
	cfg.DefaultLanguage = getenvDefault("DEFAULT_LANGUAGE", "ja-JP")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "30s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	maxIdleStr := getenvDefault("SESSION_MAX_IDLE", "24h")
	maxIdle, err := time.ParseDuration(maxIdleStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_MAX_IDLE: %w", err)
	}
	cfg.SessionMaxIdle = maxIdle

	pruneStr := getenvDefault("PRUNE_INTERVAL", "15m")
	prune, err := time.ParseDuration(pruneStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PRUNE_INTERVAL: %w", err)
	}
	cfg.PruneInterval = prune

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
