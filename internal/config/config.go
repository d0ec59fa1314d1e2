// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads application settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets are placeholder values that show up in sample env files.
var knownWeakSecrets = []string{
	"your-secret-key",
	"change-me-to-a-32-byte-jwt-secret!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Supported database drivers.
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBDriver string `env:"BRIGHTSIDE_DB_DRIVER" envDefault:"sqlite"`
	DBDSN    string `env:"BRIGHTSIDE_DB_DSN" envDefault:"./data/brightside.db"`

	JWTSecret      string `env:"BRIGHTSIDE_JWT_SECRET,required"`
	PasswordPepper string `env:"BRIGHTSIDE_PASSWORD_PEPPER"` // Falls back to JWTSecret

	ServerHost string `env:"BRIGHTSIDE_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"BRIGHTSIDE_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"BRIGHTSIDE_ENV" envDefault:"development"`
	LogLevel   string `env:"BRIGHTSIDE_LOG_LEVEL" envDefault:"info"`

	UploadsDir     string   `env:"BRIGHTSIDE_UPLOADS_DIR" envDefault:"./public/uploads"`
	AdminDir       string   `env:"BRIGHTSIDE_ADMIN_DIR" envDefault:"./web/admin"`
	AllowedOrigins []string `env:"BRIGHTSIDE_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	// Cache configuration
	RedisURL    string        `env:"BRIGHTSIDE_REDIS_URL"`
	CachePrefix string        `env:"BRIGHTSIDE_CACHE_PREFIX" envDefault:"brightside:"`
	CacheTTL    time.Duration `env:"BRIGHTSIDE_CACHE_TTL" envDefault:"5m"`

	// Public contact form: requests per minute per IP
	ContactRateLimit int `env:"BRIGHTSIDE_CONTACT_RATE_LIMIT" envDefault:"5"`

	// Bootstrap admin account
	AdminUsername string `env:"BRIGHTSIDE_ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"BRIGHTSIDE_ADMIN_PASSWORD" envDefault:"admin123"`
	AdminEmail    string `env:"BRIGHTSIDE_ADMIN_EMAIL" envDefault:"admin@brightside.edu.et"`

	// Days to keep entries in the event log (0 keeps everything)
	EventRetentionDays int `env:"BRIGHTSIDE_EVENT_RETENTION_DAYS" envDefault:"90"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// Pepper returns the key mixed into password hashes.
func (c Config) Pepper() []byte {
	if c.PasswordPepper != "" {
		return []byte(c.PasswordPepper)
	}
	return []byte(c.JWTSecret)
}

// SlogLevel maps LogLevel to a slog.Level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MinJWTSecretLength is the minimum accepted length of the token signing key.
// HS256 keys shorter than the hash output weaken the MAC.
const MinJWTSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if !hasMinimumEntropy(cfg.JWTSecret) {
		slog.Warn("BRIGHTSIDE_JWT_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.JWTSecret) < MinJWTSecretLength {
		return fmt.Errorf("BRIGHTSIDE_JWT_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinJWTSecretLength, len(c.JWTSecret))
	}

	for _, weak := range knownWeakSecrets {
		if c.JWTSecret == weak {
			return errors.New("BRIGHTSIDE_JWT_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	switch c.DBDriver {
	case DriverSQLite, DriverMySQL:
	default:
		return fmt.Errorf("BRIGHTSIDE_DB_DRIVER must be %q or %q, got %q", DriverSQLite, DriverMySQL, c.DBDriver)
	}

	if c.ContactRateLimit <= 0 {
		return fmt.Errorf("BRIGHTSIDE_CONTACT_RATE_LIMIT must be positive, got %d", c.ContactRateLimit)
	}

	return nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
