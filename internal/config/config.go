// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Application environments.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// StructuredConfig is the top-level configuration container for the
// tour-booking service. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings: environment, token parameters
	// and password hashing cost.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the relational database and the
	// optional Redis instance backing the rate limiter.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address, timeout and request-limiting settings
	// for the HTTP and gRPC servers.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds configuration for outbound integrations (e-mail).
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds cron schedules of the background jobs.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control security
// and token lifecycle.
type App struct {
	// Env is either "development" or "production". Development responses
	// expose raw error text.
	// Env: APP_ENV
	Env string `env:"ENV"`

	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a JWT token remains valid (e.g. "90h").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// CookieDuration is the lifetime of the "jwt" cookie.
	// Env: APP_COOKIE_DURATION
	CookieDuration time.Duration `env:"COOKIE_DURATION"`

	// PasswordCost is the bcrypt cost used when hashing passwords.
	// Env: APP_PASSWORD_COST
	PasswordCost int `env:"PASSWORD_COST"`

	// ResetTokenDuration is how long a password reset token stays valid.
	// Env: APP_RESET_TOKEN_DURATION
	ResetTokenDuration time.Duration `env:"RESET_TOKEN_DURATION"`
}

// IsDevelopment reports whether the service runs in development mode.
func (a App) IsDevelopment() bool {
	return a.Env == EnvDevelopment
}

// Server holds network and request-limiting settings for the inbound
// transport layer.
type Server struct {
	// HTTPAddress is the TCP address of the HTTP server ("host:port").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the TCP address of the gRPC health server.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds reading and writing a single request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// RateLimit is the number of /api requests one IP may make per window.
	// Env: SERVER_RATE_LIMIT
	RateLimit int `env:"RATE_LIMIT"`

	// RateLimitWindow is the rate-limiting window.
	// Env: SERVER_RATE_LIMIT_WINDOW
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW"`

	// BodyLimit is the maximum accepted request body size in bytes.
	// Env: SERVER_BODY_LIMIT
	BodyLimit int64 `env:"BODY_LIMIT"`

	// TrustProxy takes the client address from X-Forwarded-For/X-Real-IP.
	// Enable only behind a reverse proxy that overwrites those headers.
	// Env: SERVER_TRUST_PROXY
	TrustProxy bool `env:"TRUST_PROXY"`
}

// Storage groups the configuration for all storage backends used by the
// application.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Redis holds the optional Redis connection used by the rate limiter.
	Redis Redis `envPrefix:"REDIS_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is the PostgreSQL connection string.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Redis holds connection settings for Redis. An empty Address disables it.
type Redis struct {
	// Env: STORAGE_REDIS_ADDRESS
	Address string `env:"ADDRESS"`
	// Env: STORAGE_REDIS_PASSWORD
	Password string `env:"PASSWORD"`
	// Env: STORAGE_REDIS_DB
	DB int `env:"DB"`
}

// Adapter holds configuration for outbound integrations.
type Adapter struct {
	Mail Mail `envPrefix:"MAIL_"`
}

// Mail configures the SendGrid sender. Without an API key messages are
// only logged.
type Mail struct {
	// Env: ADAPTER_MAIL_API_KEY
	APIKey string `env:"API_KEY"`
	// Env: ADAPTER_MAIL_FROM_ADDRESS
	FromAddress string `env:"FROM_ADDRESS"`
	// Env: ADAPTER_MAIL_FROM_NAME
	FromName string `env:"FROM_NAME"`
}

// Workers holds cron specs (robfig/cron syntax, e.g. "@every 1h") of the
// background jobs. An empty spec disables the job.
type Workers struct {
	// Env: WORKERS_RESET_TOKEN_CLEANUP
	ResetTokenCleanup string `env:"RESET_TOKEN_CLEANUP"`
	// Env: WORKERS_LIMITER_CLEANUP
	LimiterCleanup string `env:"LIMITER_CLEANUP"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
