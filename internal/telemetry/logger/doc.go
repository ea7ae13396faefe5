// Package logger provides structured logging for simple-redis.
//
// It wraps the standard library log/slog:
//
//   - logger.go: Logger interface, ID-stamping handler, shared dynamic level
//   - context.go: Context-aware logging with connection and request IDs
//   - redact.go: Sensitive key redaction and long value truncation
//
// The protocol and storage packages never log; the server injects a Logger
// into each connection and tags it with the connection ID.
package logger
