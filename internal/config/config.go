package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	LogLevel    string
	Environment string
	CORSOrigins string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string

	// Optional subsystems: empty URL disables.
	RedisURL    string
	DatabaseURL string

	CacheTTL        time.Duration
	CacheMaxEntries int

	ArchiveRetentionDays int
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Environment: getEnv("ENVIRONMENT", "development"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		// VITE_GEMINI_API_KEY is the key name the frontend build uses;
		// accepted as a fallback so one .env serves both.
		GeminiAPIKey:  getEnvFallback("GEMINI_API_KEY", "VITE_GEMINI_API_KEY"),
		GeminiModel:   getEnv("GEMINI_MODEL", ""),
		GeminiBaseURL: getEnv("GEMINI_BASE_URL", ""),

		RedisURL:    getEnv("REDIS_URL", ""),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		CacheTTL:        getEnvDuration("CACHE_TTL", time.Hour),
		CacheMaxEntries: getEnvInt("CACHE_MAX_ENTRIES", 500),

		ArchiveRetentionDays: getEnvInt("ARCHIVE_RETENTION_DAYS", 30),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFallback(key, fallbackKey string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return os.Getenv(fallbackKey)
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
