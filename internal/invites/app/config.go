package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	JWTSecret string // Required: HMAC secret for verifying access tokens
	JWTIssuer string // Optional: expected issuer claim (empty disables the check)

	DatabaseFile         string        // Optional: path to SQLite database file (default: ./invites.db)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
	InviteRetention      time.Duration // How long expired invites are kept before purge (default: 30 days)
	RedeemTimeout        time.Duration // Bound on a single redemption transaction (default: 30s)
}

func LoadConfig() Config {
	return Config{
		JWTSecret:            os.Getenv("INVITES_JWT_SECRET"),
		JWTIssuer:            os.Getenv("INVITES_JWT_ISSUER"),
		DatabaseFile:         getEnvOrDefault("INVITES_DATABASE_FILE", "invites.db"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		InviteRetention:      getEnvDurationOrDefault("INVITE_RETENTION", 30*24*time.Hour),
		RedeemTimeout:        getEnvDurationOrDefault("REDEEM_TIMEOUT", 30*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
