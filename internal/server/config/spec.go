package config

import "time"

// ServerConfig is the root configuration for simple-redis-server.
type ServerConfig struct {
	Server   ServerSection   `koanf:"server"`
	Protocol ProtocolSection `koanf:"protocol"`
	Storage  StorageSection  `koanf:"storage"`
	Log      LogSection      `koanf:"log"`
}

// ServerSection configures server endpoints.
type ServerSection struct {
	Redis RedisConfig `koanf:"redis"`
	Admin AdminConfig `koanf:"admin"`
}

// RedisConfig configures the RESP listener.
type RedisConfig struct {
	Addr string `koanf:"addr"`

	// Timeouts apply per connection. Zero disables them.
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// RateLimit is commands per second per client IP (0 = unlimited).
	RateLimit int `koanf:"rate_limit"`

	// MaxConnections caps concurrent clients (0 = unlimited).
	MaxConnections int `koanf:"max_connections"`
}

// AdminConfig configures the admin HTTP endpoint (metrics, health, version).
type AdminConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

// ProtocolSection bounds what a single request frame may allocate.
type ProtocolSection struct {
	MaxBulkLen      int `koanf:"max_bulk_len"`
	MaxAggregateLen int `koanf:"max_aggregate_len"`
	MaxDepth        int `koanf:"max_depth"`
}

// StorageSection configures the in-memory store.
type StorageSection struct {
	ShardCount int `koanf:"shard_count"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
