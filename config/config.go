// Package config loads service configuration from the environment.
// A .env file is honored when present (local development); real deployments
// set the variables directly.
package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, grouped by concern.
// It is loaded once in main and injected into the components that need it.
type Config struct {
	Service struct {
		Name    string
		Version string
		Env     string
		Port    string
	}

	Logging struct {
		Level string
	}

	Mongo struct {
		URI      string
		Database string
	}

	Auth struct {
		// JWTSecret signs and verifies session tokens. The process refuses
		// to start without it.
		JWTSecret string
		// TokenTTLHours is the token validity window. Default 48 (2 days).
		TokenTTLHours int
		// BcryptCost is the bcrypt work factor. Default 10.
		BcryptCost int
	}

	Tracing struct {
		Enabled    bool
		Endpoint   string
		SampleRate float64
	}

	Profiling struct {
		Enabled  bool
		Endpoint string
	}

	Shutdown struct {
		TimeoutSeconds             int
		ReadinessDrainDelaySeconds int
	}
}

// Load reads configuration from environment variables, applying defaults
// where a value is optional.
func Load() *Config {
	// Best-effort: absence of .env is the normal case in containers.
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.Service.Name = getEnv("SERVICE_NAME", "auth-service")
	cfg.Service.Version = getEnv("SERVICE_VERSION", "dev")
	cfg.Service.Env = getEnv("SERVICE_ENV", "development")
	cfg.Service.Port = getEnv("PORT", "8080")

	cfg.Logging.Level = getEnv("LOG_LEVEL", "info")

	cfg.Mongo.URI = os.Getenv("MONGO_URI")
	cfg.Mongo.Database = getEnv("MONGO_DATABASE", "enhancify")

	cfg.Auth.JWTSecret = os.Getenv("JWT_SECRET")
	cfg.Auth.TokenTTLHours = getEnvInt("TOKEN_TTL_HOURS", 48)
	cfg.Auth.BcryptCost = getEnvInt("BCRYPT_COST", 10)

	cfg.Tracing.Enabled = getEnvBool("TRACING_ENABLED", false)
	cfg.Tracing.Endpoint = getEnv("TRACING_ENDPOINT", "localhost:4318")
	cfg.Tracing.SampleRate = getEnvFloat("TRACING_SAMPLE_RATE", 1.0)

	cfg.Profiling.Enabled = getEnvBool("PROFILING_ENABLED", false)
	cfg.Profiling.Endpoint = getEnv("PROFILING_ENDPOINT", "http://localhost:4040")

	cfg.Shutdown.TimeoutSeconds = getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 10)
	cfg.Shutdown.ReadinessDrainDelaySeconds = getEnvInt("READINESS_DRAIN_DELAY_SECONDS", 0)

	return cfg
}

// Validate checks the settings the service cannot run without.
// A missing signing secret or store address is a fatal startup condition,
// not something to degrade around.
func (c *Config) Validate() error {
	if c.Mongo.URI == "" {
		return errors.New("MONGO_URI is required")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.Auth.TokenTTLHours <= 0 {
		return errors.New("TOKEN_TTL_HOURS must be positive")
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return errors.New("BCRYPT_COST must be between 4 and 31")
	}
	return nil
}

// GetTokenTTLDuration returns the session token validity window.
func (c *Config) GetTokenTTLDuration() time.Duration {
	return time.Duration(c.Auth.TokenTTLHours) * time.Hour
}

// GetShutdownTimeoutDuration returns the graceful shutdown budget.
func (c *Config) GetShutdownTimeoutDuration() time.Duration {
	return time.Duration(c.Shutdown.TimeoutSeconds) * time.Second
}

// GetReadinessDrainDelayDuration returns how long to fail readiness before
// the HTTP server starts shutting down.
func (c *Config) GetReadinessDrainDelayDuration() time.Duration {
	return time.Duration(c.Shutdown.ReadinessDrainDelaySeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
