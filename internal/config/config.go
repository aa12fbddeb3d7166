package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	ServerPort string
	GinMode    string
	LogLevel   string
	LogFormat  string

	// JWTSecret signs per-session exam tokens. Tokens outlive the countdown
	// by TokenGrace so candidates can still fetch their result afterwards.
	JWTSecret  string
	TokenGrace time.Duration

	// ExamDuration is the countdown length for every session.
	ExamDuration time.Duration

	// ReportEndpoint is the downstream target for graded reports.
	// Empty means log-only (no outbound delivery).
	ReportEndpoint  string
	ReportRecipient string
	ReportTimeout   time.Duration

	// SessionRetention controls how long submitted sessions stay in memory
	// before the janitor removes them.
	SessionRetention time.Duration

	// AllowedOrigins controls HTTP CORS and WebSocket origin validation.
	// Empty slice means all origins are permitted (dev default).
	AllowedOrigins []string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // .env is optional

	return &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		GinMode:          getEnv("GIN_MODE", "debug"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "pretty"),
		JWTSecret:        getEnv("JWT_SECRET", "change-this-to-a-secure-random-string"),
		TokenGrace:       time.Duration(getEnvInt("TOKEN_GRACE_MINUTES", 120)) * time.Minute,
		ExamDuration:     time.Duration(getEnvInt("EXAM_DURATION_MINUTES", 60)) * time.Minute,
		ReportEndpoint:   getEnv("REPORT_ENDPOINT_URL", ""),
		ReportRecipient:  getEnv("REPORT_RECIPIENT", "info@academy-uk.net"),
		ReportTimeout:    time.Duration(getEnvInt("REPORT_TIMEOUT_SECONDS", 15)) * time.Second,
		SessionRetention: time.Duration(getEnvInt("SESSION_RETENTION_MINUTES", 240)) * time.Minute,
		AllowedOrigins:   parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
