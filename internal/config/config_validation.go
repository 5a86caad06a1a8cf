// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/crypto/bcrypt"
)

// Defaults applied to fields left empty by every configuration source.
const (
	DefaultTokenDuration      = 90 * 24 * time.Hour
	DefaultCookieDuration     = 90 * 24 * time.Hour
	DefaultResetTokenDuration = 10 * time.Minute
	DefaultRequestTimeout     = 30 * time.Second
	DefaultRateLimit          = 100
	DefaultRateLimitWindow    = time.Hour
	DefaultBodyLimit          = 10 << 10
	DefaultPasswordCost       = 12
)

// setDefaults fills zero-valued settings that have a sensible default.
func (cfg *StructuredConfig) setDefaults() {
	if cfg.App.Env == "" {
		cfg.App.Env = EnvDevelopment
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = DefaultTokenDuration
	}
	if cfg.App.CookieDuration == 0 {
		cfg.App.CookieDuration = DefaultCookieDuration
	}
	if cfg.App.ResetTokenDuration == 0 {
		cfg.App.ResetTokenDuration = DefaultResetTokenDuration
	}
	if cfg.App.PasswordCost == 0 {
		cfg.App.PasswordCost = DefaultPasswordCost
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Server.RateLimit == 0 {
		cfg.Server.RateLimit = DefaultRateLimit
	}
	if cfg.Server.RateLimitWindow == 0 {
		cfg.Server.RateLimitWindow = DefaultRateLimitWindow
	}
	if cfg.Server.BodyLimit == 0 {
		cfg.Server.BodyLimit = DefaultBodyLimit
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" {
		return ErrInvalidAppConfigs
	}
	if cfg.App.Env != EnvDevelopment && cfg.App.Env != EnvProduction {
		return ErrInvalidAppConfigs
	}
	if cfg.App.PasswordCost < bcrypt.MinCost || cfg.App.PasswordCost > bcrypt.MaxCost {
		return ErrInvalidAppConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" && cfg.Server.GRPCAddress == "" {
		return ErrInvalidServerConfigs
	}
	if cfg.Server.RateLimit < 0 || cfg.Server.BodyLimit < 0 {
		return ErrInvalidServerConfigs
	}

	for _, spec := range []string{cfg.Workers.ResetTokenCleanup, cfg.Workers.LimiterCleanup} {
		if spec == "" {
			continue
		}
		if _, err := cron.ParseStandard(spec); err != nil {
			return ErrInvalidWorkerConfigs
		}
	}

	return nil
}
