// Package httpserver provides the admin HTTP endpoint for simple-redis.
//
// Routes:
//
//   - GET /metrics: Prometheus exposition
//   - GET /healthz: liveness with key and connection counts
//   - GET /version: build information
//
// Every request passes through RequestID, Recover and AccessLog. The
// endpoint is disabled by default and binds to loopback when enabled.
package httpserver
