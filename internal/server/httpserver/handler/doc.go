// Package handler provides HTTP request handlers for the admin endpoint.
//
// This package contains handlers for the admin routes:
//
//   - health.go: Liveness with keyspace and connection counts
//   - version.go: Build information
//
// JSON responses share the envelope in types.go. /metrics is served by
// the Prometheus handler and is not routed through this package.
package handler
