// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads userdesk configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ServerHost    string `env:"USERDESK_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"USERDESK_SERVER_PORT" envDefault:"8081"`
	Env           string `env:"USERDESK_ENV" envDefault:"development"`
	LogLevel      string `env:"USERDESK_LOG_LEVEL" envDefault:"info"`
	SessionSecret string `env:"USERDESK_SESSION_SECRET,required"`

	// Backend the console talks to
	BackendURL     string        `env:"USERDESK_BACKEND_URL,required"`
	BackendToken   string        `env:"USERDESK_BACKEND_TOKEN"`                                            // Optional static bearer token
	ForwardCookies []string      `env:"USERDESK_FORWARD_COOKIES" envDefault:"JSESSIONID" envSeparator:","` // Cookies relayed to the backend
	RequestTimeout time.Duration `env:"USERDESK_REQUEST_TIMEOUT" envDefault:"10s"`

	// Console behaviour
	RolePrefix string        `env:"USERDESK_ROLE_PREFIX" envDefault:"ROLE_"`
	BannerTTL  time.Duration `env:"USERDESK_BANNER_TTL" envDefault:"5s"`
	StateTTL   time.Duration `env:"USERDESK_STATE_TTL" envDefault:"30m"`

	// State store
	RedisURL    string `env:"USERDESK_REDIS_URL"` // Optional; memory store when empty
	StatePrefix string `env:"USERDESK_STATE_PREFIX" envDefault:"userdesk:"`

	// Housekeeping sweep of expired states and idle limiters (cron syntax)
	SweepSchedule string `env:"USERDESK_SWEEP_SCHEDULE" envDefault:"@every 1m"`

	// Dispatch rate limiting (per console session)
	DispatchRPS   float64 `env:"USERDESK_DISPATCH_RPS" envDefault:"5"`
	DispatchBurst int     `env:"USERDESK_DISPATCH_BURST" envDefault:"10"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedis returns true if the console state should live in Redis.
func (c Config) UseRedis() bool {
	return c.RedisURL != ""
}

// SlogLevel maps LogLevel to a slog.Level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("USERDESK_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.SessionSecret) < MinSessionSecretLength {
		return fmt.Errorf("USERDESK_SESSION_SECRET must be at least %d bytes long, got %d bytes",
			MinSessionSecretLength, len(c.SessionSecret))
	}
	for _, weak := range knownWeakSecrets {
		if c.SessionSecret == weak {
			return errors.New("USERDESK_SESSION_SECRET is a known default value and must not be used")
		}
	}

	u, err := url.Parse(c.BackendURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("USERDESK_BACKEND_URL must be an absolute http(s) URL, got %q", c.BackendURL)
	}
	c.BackendURL = strings.TrimRight(c.BackendURL, "/")

	if c.BannerTTL <= 0 {
		return fmt.Errorf("USERDESK_BANNER_TTL must be positive, got %s", c.BannerTTL)
	}
	if c.StateTTL <= 0 {
		return fmt.Errorf("USERDESK_STATE_TTL must be positive, got %s", c.StateTTL)
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
