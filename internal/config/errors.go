package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid credential-store settings
	// (for example, an unsupported database driver).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAuthConfigs indicates invalid authentication settings
	// (for example, an out-of-range bcrypt cost or unknown resolution order).
	ErrInvalidAuthConfigs = errors.New("invalid auth configuration")
)
