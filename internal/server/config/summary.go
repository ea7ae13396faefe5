package config

// Summary returns the effective settings as alternating key/value pairs,
// ready to pass to a logger call.
func Summary(cfg *ServerConfig) []any {
	return []any{
		"redis_addr", cfg.Server.Redis.Addr,
		"idle_timeout", cfg.Server.Redis.IdleTimeout.String(),
		"read_timeout", cfg.Server.Redis.ReadTimeout.String(),
		"write_timeout", cfg.Server.Redis.WriteTimeout.String(),
		"rate_limit", cfg.Server.Redis.RateLimit,
		"max_connections", cfg.Server.Redis.MaxConnections,
		"admin_enabled", cfg.Server.Admin.Enabled,
		"admin_addr", cfg.Server.Admin.Addr,
		"max_bulk_len", cfg.Protocol.MaxBulkLen,
		"max_aggregate_len", cfg.Protocol.MaxAggregateLen,
		"max_depth", cfg.Protocol.MaxDepth,
		"shard_count", cfg.Storage.ShardCount,
		"log_level", cfg.Log.Level,
		"log_format", cfg.Log.Format,
	}
}
