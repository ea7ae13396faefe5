// Package shutdown provides graceful shutdown for simple-redis.
//
// This package handles process termination:
//
//   - Signal handling (SIGINT, SIGTERM)
//   - Programmatic trigger for fatal server errors
//   - Named hooks run in reverse registration order under one timeout
//
// Usage:
//
//	h := shutdown.NewHandler(10*time.Second, log)
//	h.OnShutdown("redis", srv.Shutdown)
//	err := h.Wait()
package shutdown
