package config

import (
	"github.com/yndnr/simple-redis/internal/resp"
	"github.com/yndnr/simple-redis/pkg/cmap"
)

// Default configuration values.
const (
	DefaultRedisAddr = "0.0.0.0:7890"
	DefaultAdminAddr = "127.0.0.1:7891"

	DefaultMaxBulkLen      = resp.DefaultMaxBulkLen
	DefaultMaxAggregateLen = resp.DefaultMaxAggregateLen
	DefaultMaxDepth        = resp.DefaultMaxDepth

	DefaultShardCount = cmap.DefaultShardCount

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			Redis: RedisConfig{
				Addr: DefaultRedisAddr,
			},
			Admin: AdminConfig{
				Enabled: false,
				Addr:    DefaultAdminAddr,
			},
		},
		Protocol: ProtocolSection{
			MaxBulkLen:      DefaultMaxBulkLen,
			MaxAggregateLen: DefaultMaxAggregateLen,
			MaxDepth:        DefaultMaxDepth,
		},
		Storage: StorageSection{
			ShardCount: DefaultShardCount,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
