// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [Base] satisfies the invariants the
// kit relies on at startup.
//
// Returns nil if the configuration is valid, or a descriptive error wrapping
// one of the package sentinels otherwise.
func (cfg *Base) validate() error {
	if cfg.Server.RequestTimeout < 0 ||
		cfg.Server.ReadTimeout < 0 ||
		cfg.Server.WriteTimeout < 0 ||
		cfg.Server.IdleTimeout < 0 {
		return fmt.Errorf("%w: negative timeout", ErrInvalidServerConfig)
	}

	switch cfg.Database.Driver {
	case "", DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidDatabaseConfig, cfg.Database.Driver)
	}
	if cfg.Database.Driver != "" && cfg.Database.DSN == "" {
		return fmt.Errorf("%w: driver %q requires a DSN", ErrInvalidDatabaseConfig, cfg.Database.Driver)
	}

	switch cfg.Auth.Mode {
	case "":
	case AuthModeHS256:
		if cfg.Auth.Secret == "" {
			return fmt.Errorf("%w: hs256 mode requires a secret", ErrInvalidAuthConfig)
		}
	case AuthModeJWKS:
		if cfg.Auth.JWKSURL == "" {
			return fmt.Errorf("%w: jwks mode requires a JWKS URL", ErrInvalidAuthConfig)
		}
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidAuthConfig, cfg.Auth.Mode)
	}

	return nil
}
