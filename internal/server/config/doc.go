// Package config provides server configuration for simple-redis.
//
// This package defines the server configuration structure and validation:
//
//   - spec.go: ServerConfig struct definition
//   - default.go: Default configuration values
//   - verify.go: Validation (address formats, limits, log settings)
//   - summary.go: Flattened key/value view for startup logging
//   - keys.go: Dotted key list used to map environment variables
//
// Configuration is loaded via internal/infra/confloader and supports
// multiple sources: files, environment variables, and flags.
package config
