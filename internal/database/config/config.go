// Package config provides database configuration management.
package config

import (
	"fmt"
	"strings"
	"time"

	appConfig "github.com/sauce1111/memberdir/internal/config"
	"github.com/sauce1111/memberdir/pkg/backoff"
)

// Config holds database connection configuration.
type Config struct {
	Host     string
	User     string
	Password string
	DBName   string
	Port     string
	SSLMode  string
	TimeZone string
}

// LoadConfigFromEnv loads database configuration from environment variables.
func LoadConfigFromEnv() Config {
	return Config{
		Host:     appConfig.GetEnv("DB_HOST", "localhost"),
		User:     appConfig.GetEnv("DB_USER", "postgres"),
		Password: appConfig.GetEnv("DB_PASSWORD", "postgres"),
		DBName:   appConfig.GetEnv("DB_NAME", "memberdir"),
		Port:     appConfig.GetEnv("DB_PORT", "5432"),
		SSLMode:  appConfig.GetEnv("DB_SSLMODE", "disable"),
		TimeZone: appConfig.GetEnv("DB_TIMEZONE", "UTC"),
	}
}

// BuildDSN constructs a PostgreSQL DSN string from configuration.
func BuildDSN(cfg Config) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.DBName, cfg.Port, cfg.SSLMode, cfg.TimeZone)
}

// SanitizeError removes the password from error messages before they reach
// logs.
func SanitizeError(err error, cfg Config) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if cfg.Password != "" {
		msg = strings.ReplaceAll(msg, cfg.Password, "***")
	}
	return fmt.Errorf("failed to connect to database: %s", msg)
}

// LoadBackoffFromEnv loads the connection retry policy from environment
// variables, starting from the database defaults.
func LoadBackoffFromEnv() backoff.Policy {
	p := backoff.Database()
	p.Attempts = appConfig.GetEnvInt("DB_RETRY_ATTEMPTS", p.Attempts)
	p.Initial = appConfig.GetEnvDuration("DB_RETRY_INITIAL_DELAY", p.Initial)
	p.Max = appConfig.GetEnvDuration("DB_RETRY_MAX_DELAY", p.Max)
	return p
}

// ConnectTimeout bounds the whole retrying connection attempt.
func ConnectTimeout() time.Duration {
	return appConfig.GetEnvDuration("DB_CONNECT_TIMEOUT", 2*time.Minute)
}
