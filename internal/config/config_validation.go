// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MobileNest

package config

// Database driver names accepted by [DB.Driver].
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a sentinel error otherwise.
func (cfg *StructuredConfig) validate() error {
	switch cfg.Storage.DB.Driver {
	case "", DriverPostgres, DriverSQLite:
	default:
		return ErrInvalidStorageConfigs
	}

	switch cfg.Auth.ResolutionOrder {
	case "", ResolveAdminFirst, ResolveUserFirst:
	default:
		return ErrInvalidAuthConfigs
	}

	// bcrypt rejects costs outside [4, 31]; zero means DefaultCost
	if cfg.Auth.BcryptCost != 0 && (cfg.Auth.BcryptCost < 4 || cfg.Auth.BcryptCost > 31) {
		return ErrInvalidAuthConfigs
	}

	if cfg.Auth.SessionTTL < 0 {
		return ErrInvalidAuthConfigs
	}

	return nil
}
