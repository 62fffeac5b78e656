// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"FOLIO_DB_PATH" envDefault:"./data/folio.db"`
	ServerHost string `env:"FOLIO_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"FOLIO_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"FOLIO_ENV" envDefault:"development"`
	LogLevel   string `env:"FOLIO_LOG_LEVEL" envDefault:"info"`

	// CORS configuration
	CORSOrigins []string `env:"FOLIO_CORS_ORIGINS" envSeparator:","` // Allowed browser origins

	// SMTP configuration for contact notifications
	SMTPHost     string `env:"FOLIO_SMTP_HOST"`
	SMTPPort     int    `env:"FOLIO_SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"FOLIO_SMTP_USER"`
	SMTPPassword string `env:"FOLIO_SMTP_PASSWORD"`
	SMTPFrom     string `env:"FOLIO_SMTP_FROM"`
	ContactTo    string `env:"FOLIO_CONTACT_TO"`                    // Inbox for contact notifications
	MailTimeout  int    `env:"FOLIO_MAIL_TIMEOUT" envDefault:"10"` // Send timeout in seconds

	// GeoIP configuration
	GeoIPDBPath string `env:"FOLIO_GEOIP_DB_PATH"` // Path to GeoLite2-Country.mmdb file

	// AI configuration
	OpenAIKey string `env:"FOLIO_OPENAI_API_KEY"` // Enables the suggest-meta endpoint

	// Event log retention in days; older rows are pruned nightly
	EventRetentionDays int `env:"FOLIO_EVENT_RETENTION_DAYS" envDefault:"90"`

	// Seeding configuration
	DoSeed bool `env:"FOLIO_DO_SEED" envDefault:"false"` // Enable demo data seeding
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// MailEnabled returns true if SMTP is configured for contact notifications.
func (c Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.ContactTo != ""
}

// GeoIPEnabled returns true if GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// AIEnabled returns true if an OpenAI API key is configured.
func (c Config) AIEnabled() bool {
	return c.OpenAIKey != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.ServerPort < 1 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("FOLIO_SERVER_PORT out of range: %d", cfg.ServerPort)
	}
	if cfg.EventRetentionDays < 1 {
		return nil, fmt.Errorf("FOLIO_EVENT_RETENTION_DAYS must be positive, got %d", cfg.EventRetentionDays)
	}
	if cfg.MailTimeout < 1 {
		return nil, fmt.Errorf("FOLIO_MAIL_TIMEOUT must be positive, got %d", cfg.MailTimeout)
	}
	if cfg.SMTPHost != "" && cfg.SMTPFrom == "" {
		return nil, fmt.Errorf("FOLIO_SMTP_FROM is required when FOLIO_SMTP_HOST is set")
	}
	for _, origin := range cfg.CORSOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return nil, fmt.Errorf("FOLIO_CORS_ORIGINS entry %q is not an origin", origin)
		}
	}

	return cfg, nil
}
