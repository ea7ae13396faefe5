// Package config provides simple-redis-cli configuration.
//
//   - spec.go: CLIConfig struct (~/.simple-redis/cli.yaml)
//   - loader.go: loading, saving and merging with env and flags
package config
