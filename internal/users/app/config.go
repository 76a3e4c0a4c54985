package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer string // Issuer claim for tokens (default: user-service)

	StoreDriver  string // Store driver: "sqlite" or "memory" (default: sqlite)
	DatabaseFile string // Path to SQLite database file (default: ./users.db)
	PepperFile   string // Path to the password hashing pepper file (default: ./pepper)
	SigningKey   string // Optional: path to an Ed25519 PKCS8 PEM; generated ephemeral when unset

	AccessTokenTTL time.Duration // Token lifetime (default: 1h)

	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: json)

	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		Issuer:              getEnvOrDefault("USERS_ISSUER", "user-service"),
		StoreDriver:         getEnvOrDefault("USERS_STORE_DRIVER", "sqlite"),
		DatabaseFile:        getEnvOrDefault("USERS_DATABASE_FILE", "users.db"),
		PepperFile:          getEnvOrDefault("USERS_PEPPER_FILE", "pepper"),
		SigningKey:          os.Getenv("USERS_SIGNING_KEY_FILE"),
		AccessTokenTTL:      getEnvDurationOrDefault("USERS_ACCESS_TOKEN_TTL", 1*time.Hour),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
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

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	return defaultValue
}
