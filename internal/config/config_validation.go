// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "github.com/shopspring/decimal"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup, and fills in defaults
// for optional fields left unset by every source.
//
// Returns nil if the configuration is valid, or a sentinel error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = DefaultTokenDuration
	}

	if cfg.App.OTPTTL == 0 {
		cfg.App.OTPTTL = DefaultOTPTTL
	}

	if cfg.App.InitialBalance == "" {
		cfg.App.InitialBalance = DefaultInitialBalance
	}
	if _, err := decimal.NewFromString(cfg.App.InitialBalance); err != nil {
		return ErrInvalidAppConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = "localhost:8080"
	}

	return nil
}
