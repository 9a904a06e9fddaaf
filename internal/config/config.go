// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Supported database/sql driver names.
const (
	DriverPQ  = "postgres"
	DriverPGX = "pgx"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Database DatabaseConfig
	App      AppConfig
	Auth     AuthConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         string        `envconfig:"PORT" default:"8080"`
	ReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"15s"`
	IdleTimeout  time.Duration `envconfig:"SERVER_IDLE_TIMEOUT" default:"60s"`
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Driver          string        `envconfig:"DB_DRIVER" default:"postgres"`
	Host            string        `envconfig:"DB_HOST" default:"localhost"`
	Port            string        `envconfig:"DB_PORT" default:"5432"`
	User            string        `envconfig:"DB_USER" default:"postgres"`
	Password        string        `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName          string        `envconfig:"DB_NAME" default:"points"`
	SSLMode         string        `envconfig:"DB_SSLMODE" default:"disable"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
	LockTimeout     time.Duration `envconfig:"DB_LOCK_TIMEOUT" default:"5s"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	TxRetryBackoff          time.Duration `envconfig:"TX_RETRY_BACKOFF" default:"50ms"`
	IdempotencyTTL          time.Duration `envconfig:"IDEMPOTENCY_TTL" default:"24h"`
	IdempotencyPurgeSpec    string        `envconfig:"JOBS_IDEMPOTENCY_PURGE_SPEC" default:"@every 1h"`
	PendingVoucherGaugeSpec string        `envconfig:"JOBS_PENDING_GAUGE_SPEC" default:"@every 1m"`
	TxMaxAttempts           int           `envconfig:"TX_MAX_ATTEMPTS" default:"3"`
	MigrateOnStart          bool          `envconfig:"MIGRATE_ON_START" default:"true"`
}

// AuthConfig holds bearer token verification settings
type AuthConfig struct {
	JWTSecret string `envconfig:"AUTH_JWT_SECRET" default:"dev-secret-change-me"`
	JWTIssuer string `envconfig:"AUTH_JWT_ISSUER" default:"points-exchange"`
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"` // debug, info, warn, error
}

// Load loads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	cfg := &Config{}

	sections := []any{&cfg.Server, &cfg.Database, &cfg.App, &cfg.Auth, &cfg.Logger}
	for _, section := range sections {
		if err := envconfig.Process("", section); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port cannot be empty")
	}

	if c.Database.Driver != DriverPQ && c.Database.Driver != DriverPGX {
		return fmt.Errorf("unsupported database driver: %s (must be %s or %s)", c.Database.Driver, DriverPQ, DriverPGX)
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database host cannot be empty")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database name cannot be empty")
	}
	if c.Database.LockTimeout < 0 {
		return fmt.Errorf("lock timeout cannot be negative")
	}

	if c.App.TxMaxAttempts < 1 {
		return fmt.Errorf("tx max attempts must be at least 1, got %d", c.App.TxMaxAttempts)
	}
	if c.App.TxRetryBackoff < 0 {
		return fmt.Errorf("tx retry backoff cannot be negative")
	}
	if c.App.IdempotencyTTL <= 0 {
		return fmt.Errorf("idempotency ttl must be positive")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("jwt secret cannot be empty")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	return nil
}

// DSN returns the PostgreSQL connection string. Both lib/pq and pgx accept
// the key/value form.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}
