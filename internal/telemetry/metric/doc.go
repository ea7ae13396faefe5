// Package metric provides Prometheus metrics for simple-redis.
//
//   - prometheus.go: registry, metric definitions and the HTTP handler
//   - collector.go: scrape-time collector for the keyspace size
//
// Metrics include connection counts, per-command counters and latency
// histograms, rate-limit rejections and protocol errors. They are exposed at
// /metrics on the admin HTTP endpoint.
package metric
