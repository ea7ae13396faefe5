package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/yndnr/simple-redis/internal/telemetry/logger"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if cfg == nil {
		return fmt.Errorf("%w: nil config", ErrInvalid)
	}
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	if err := verifyProtocol(&cfg.Protocol); err != nil {
		return err
	}
	if err := verifyStorage(&cfg.Storage); err != nil {
		return err
	}
	return verifyLog(&cfg.Log)
}

func verifyServer(cfg *ServerSection) error {
	if err := verifyAddr("server.redis.addr", cfg.Redis.Addr); err != nil {
		return err
	}
	r := cfg.Redis
	switch {
	case r.IdleTimeout < 0:
		return fmt.Errorf("%w: server.redis.idle_timeout must not be negative", ErrInvalid)
	case r.ReadTimeout < 0:
		return fmt.Errorf("%w: server.redis.read_timeout must not be negative", ErrInvalid)
	case r.WriteTimeout < 0:
		return fmt.Errorf("%w: server.redis.write_timeout must not be negative", ErrInvalid)
	case r.RateLimit < 0:
		return fmt.Errorf("%w: server.redis.rate_limit must not be negative", ErrInvalid)
	case r.MaxConnections < 0:
		return fmt.Errorf("%w: server.redis.max_connections must not be negative", ErrInvalid)
	}

	if !cfg.Admin.Enabled {
		return nil
	}
	if err := verifyAddr("server.admin.addr", cfg.Admin.Addr); err != nil {
		return err
	}
	if cfg.Admin.Addr == cfg.Redis.Addr {
		return fmt.Errorf("%w: server.admin.addr conflicts with server.redis.addr", ErrInvalid)
	}
	return nil
}

func verifyAddr(key, addr string) error {
	if addr == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalid, key)
	}
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalid, key, err)
	}
	n, err := strconv.Atoi(port)
	if err != nil || n < 0 || n > 65535 {
		return fmt.Errorf("%w: %s: invalid port %q", ErrInvalid, key, port)
	}
	return nil
}

func verifyProtocol(cfg *ProtocolSection) error {
	switch {
	case cfg.MaxBulkLen < 0:
		return fmt.Errorf("%w: protocol.max_bulk_len must not be negative", ErrInvalid)
	case cfg.MaxAggregateLen < 0:
		return fmt.Errorf("%w: protocol.max_aggregate_len must not be negative", ErrInvalid)
	case cfg.MaxDepth < 0:
		return fmt.Errorf("%w: protocol.max_depth must not be negative", ErrInvalid)
	}
	return nil
}

func verifyStorage(cfg *StorageSection) error {
	n := cfg.ShardCount
	if n <= 0 || n&(n-1) != 0 {
		return fmt.Errorf("%w: storage.shard_count must be a positive power of two, got %d", ErrInvalid, n)
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	if !logger.ValidLevel(cfg.Level) {
		return fmt.Errorf("%w: log.level %q", ErrInvalid, cfg.Level)
	}
	switch cfg.Format {
	case "json", "text":
		return nil
	}
	return fmt.Errorf("%w: log.format %q (want json or text)", ErrInvalid, cfg.Format)
}
