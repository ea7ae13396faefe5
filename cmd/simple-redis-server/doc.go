// Package main provides the entry point for simple-redis-server.
//
// The server provides:
//
//   - A RESP3 listener backed by the in-memory store
//   - An optional admin HTTP endpoint (/metrics, /healthz, /version)
//
// Usage:
//
//	simple-redis-server [flags]
//	simple-redis-server -config /path/to/config.yaml
//
// Settings come from defaults, the config file, SIMPLE_REDIS_* environment
// variables and flags, in increasing priority. When a config file is given
// it is watched and log.level changes apply without a restart.
package main
