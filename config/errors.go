package config

import "errors"

// Validation and parsing errors returned by [Load] and [Watch].
var (
	// ErrInvalidServerConfig indicates invalid inbound server settings
	// (for example, a negative timeout).
	ErrInvalidServerConfig = errors.New("invalid server configuration")
	// ErrInvalidDatabaseConfig indicates invalid database settings
	// (for example, an unknown driver or a driver without a DSN).
	ErrInvalidDatabaseConfig = errors.New("invalid database configuration")
	// ErrInvalidAuthConfig indicates invalid token verification settings
	// (for example, hs256 mode without a secret).
	ErrInvalidAuthConfig = errors.New("invalid auth configuration")
	// ErrUnsupportedConfigFormat indicates a config file whose extension
	// is neither .json nor .yaml/.yml.
	ErrUnsupportedConfigFormat = errors.New("unsupported config file format")
)
