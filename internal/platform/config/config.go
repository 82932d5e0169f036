// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It maps OS environment variables into a strongly-typed struct with
'caarlos0/env'. For local development a '.env' file is loaded first through
'joho/godotenv'; variables already present in the environment win.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// # Configuration Schema

// Config holds all runtime configuration for the YamDB API server and CLI.
type Config struct {

	// Server settings
	ServerPort  string `env:"PORT"     envDefault:"8080"`
	Environment string `env:"APP_ENV"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"    envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`
	DBMaxConns  int32  `env:"DB_MAX_CONNS" envDefault:"20"`
	DBMinConns  int32  `env:"DB_MIN_CONNS" envDefault:"2"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATIONS_PATH" envDefault:"./data/migrations"`

	// Redis backs the mail outbox and the readiness probe.
	RedisURL string `env:"REDIS_URL,required"`

	// Access tokens
	JWTPrivKeyPath string        `env:"JWT_PRIVATE_KEY_PATH,required"`
	JWTPubKeyPath  string        `env:"JWT_PUBLIC_KEY_PATH,required"`
	JWTIssuer      string        `env:"JWT_ISSUER"       envDefault:"yamdb"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"24h"`

	// ConfirmationSecret keys the confirmation-code MAC.
	ConfirmationSecret string `env:"CONFIRMATION_SECRET,required"`

	// Outgoing mail
	MailFrom      string `env:"MAIL_FROM"       envDefault:"YA@yamdb.ru"`
	MailTransport string `env:"MAIL_TRANSPORT"  envDefault:"redis"`
	MailOutboxKey string `env:"MAIL_OUTBOX_KEY" envDefault:"yamdb:mail:outbox"`

	// Cross-Origin Resource Sharing
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	// Per-IP rate limiting
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"10"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"30"`
}

// Tooling is the subset of settings the yamdbctl command needs.
//
// Migrations and superuser creation talk to PostgreSQL and, for the
// confirmation mail, Redis. They never sign tokens.
type Tooling struct {
	DatabaseURL        string `env:"DATABASE_URL,required"`
	MigrationPath      string `env:"MIGRATIONS_PATH"     envDefault:"./data/migrations"`
	RedisURL           string `env:"REDIS_URL"`
	ConfirmationSecret string `env:"CONFIRMATION_SECRET,required"`
	MailFrom           string `env:"MAIL_FROM"           envDefault:"YA@yamdb.ru"`
	MailTransport      string `env:"MAIL_TRANSPORT"      envDefault:"log"`
	MailOutboxKey      string `env:"MAIL_OUTBOX_KEY"     envDefault:"yamdb:mail:outbox"`
}

// # Mail Transports

const (
	MailTransportRedis = "redis"
	MailTransportLog   = "log"
)

// # Configuration Loading

// Load reads an optional dotenv file (ENV_FILE, default ".env") and parses
// environment variables into a [Config].
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadTooling reads the dotenv file and parses the [Tooling] settings.
func LoadTooling() (*Tooling, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	tooling := &Tooling{}
	if err := env.Parse(tooling); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if tooling.MailTransport == MailTransportRedis && tooling.RedisURL == "" {
		return nil, fmt.Errorf("config: REDIS_URL is required when MAIL_TRANSPORT is %q", MailTransportRedis)
	}

	return tooling, nil
}

// loadDotEnv loads ENV_FILE (default ".env") without overriding the environment.
func loadDotEnv() error {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}

	// A missing dotenv file is normal outside local development.
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: failed to read %s: %w", envFile, err)
	}
	return nil
}

func (c *Config) validate() error {
	switch c.MailTransport {
	case MailTransportRedis, MailTransportLog:
	default:
		return fmt.Errorf("config: MAIL_TRANSPORT must be %q or %q, got %q", MailTransportRedis, MailTransportLog, c.MailTransport)
	}

	if c.AccessTokenTTL <= 0 {
		return fmt.Errorf("config: ACCESS_TOKEN_TTL must be positive")
	}

	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("config: DB_MIN_CONNS (%d) exceeds DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}

	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// OriginAllowed reports whether a CORS origin is in the configured allow-list.
func (c *Config) OriginAllowed(origin string) bool {
	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}
