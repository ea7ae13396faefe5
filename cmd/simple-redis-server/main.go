package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/yndnr/simple-redis/internal/infra/buildinfo"
	"github.com/yndnr/simple-redis/internal/infra/confloader"
	"github.com/yndnr/simple-redis/internal/infra/shutdown"
	"github.com/yndnr/simple-redis/internal/resp"
	"github.com/yndnr/simple-redis/internal/server/config"
	"github.com/yndnr/simple-redis/internal/server/httpserver"
	"github.com/yndnr/simple-redis/internal/server/redisserver"
	"github.com/yndnr/simple-redis/internal/storage/memory"
	"github.com/yndnr/simple-redis/internal/telemetry/logger"
	"github.com/yndnr/simple-redis/internal/telemetry/metric"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("simple-redis-server", flag.ContinueOnError)
	var (
		configFile  = fs.String("config", "", "Path to configuration file")
		showVersion = fs.Bool("version", false, "Show version information")
		addr        = fs.String("addr", "", "RESP listen address (overrides server.redis.addr)")
		adminAddr   = fs.String("admin-addr", "", "Admin HTTP address; setting it enables the admin endpoint")
		logLevel    = fs.String("log-level", "", "Log level: debug, info, warn, error")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Printf("simple-redis-server %s\n", buildinfo.String())
		return nil
	}

	flags := make(map[string]any)
	if *addr != "" {
		flags["server.redis.addr"] = *addr
	}
	if *adminAddr != "" {
		flags["server.admin.addr"] = *adminAddr
		flags["server.admin.enabled"] = true
	}
	if *logLevel != "" {
		flags["log.level"] = *logLevel
	}

	loader := newLoader(*configFile, flags)
	cfg, err := loadConfig(loader)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)

	info := buildinfo.Get()
	log.Info("starting simple-redis-server",
		"version", info.Version,
		"commit", info.Commit,
		"config", *configFile)
	log.Debug("effective configuration", config.Summary(cfg)...)

	store := memory.New(memory.WithShardCount(cfg.Storage.ShardCount))

	metrics := metric.NewRegistry()
	metrics.MustRegister(metric.NewKeyspaceCollector(store))

	redisSrv := redisserver.New(redisConfig(cfg), store,
		redisserver.WithLogger(log.With("component", "redis")),
		redisserver.WithMetrics(metrics),
	)

	shutdownHandler := shutdown.NewHandler(shutdownTimeout, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := redisSrv.Start(ctx); err != nil {
		return err
	}
	// Hooks run in reverse order: admin first, then RESP connections.
	shutdownHandler.OnShutdown("redis", redisSrv.Shutdown)

	if cfg.Server.Admin.Enabled {
		router := httpserver.NewRouter(&httpserver.RouterConfig{
			Keyspace:    store,
			Connections: redisSrv,
			Metrics:     metrics.Handler(),
			Logger:      log.With("component", "admin"),
		})
		adminSrv := httpserver.New(cfg.Server.Admin.Addr, router, log.With("component", "admin"))
		if err := adminSrv.Start(); err != nil {
			_ = redisSrv.Shutdown(ctx)
			return err
		}
		shutdownHandler.OnShutdown("admin", adminSrv.Shutdown)
	}

	if *configFile != "" {
		watcher, err := confloader.NewWatcher(confloader.WithWatcherLogger(log.With("component", "config")))
		if err != nil {
			log.Warn("config watcher unavailable", "error", err)
		} else if err := watcher.Watch(*configFile); err != nil {
			log.Warn("config watcher unavailable", "error", err)
			_ = watcher.Stop()
		} else {
			watcher.OnChange(func(string) { reload(loader, cfg, log) })
			watcher.StartAsync()
			shutdownHandler.OnShutdown("config-watcher", func(context.Context) error {
				return watcher.Stop()
			})
		}
	}

	log.Info("server started, press Ctrl+C to stop")
	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

func newLoader(configFile string, flags map[string]any) *confloader.Loader {
	opts := []confloader.Option{
		confloader.WithKeys(config.Keys()),
	}
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}
	if len(flags) > 0 {
		opts = append(opts, confloader.WithFlags(flags))
	}
	return confloader.NewLoader(opts...)
}

// loadConfig layers every source over the defaults and validates the result.
func loadConfig(loader *confloader.Loader) (*config.ServerConfig, error) {
	cfg := config.Default()
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}
	if err := config.Verify(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// reload re-reads the configuration after the file changed. Only the log
// level is applied live; other differences are reported and need a restart.
func reload(loader *confloader.Loader, current *config.ServerConfig, log logger.Logger) {
	next := config.Default()
	if err := loader.Reload(next); err != nil {
		log.Warn("config reload failed", "error", err)
		return
	}
	if err := config.Verify(next); err != nil {
		log.Warn("config reload rejected", "error", err)
		return
	}

	if next.Log.Level != logger.GetLevel() {
		logger.SetLevel(next.Log.Level)
		log.Info("log level changed", "level", next.Log.Level)
	}

	next.Log.Level = current.Log.Level
	if *next != *current {
		log.Warn("config changed; restart to apply settings other than log.level")
	}
}

func redisConfig(cfg *config.ServerConfig) *redisserver.Config {
	r := cfg.Server.Redis
	return &redisserver.Config{
		Address:        r.Addr,
		IdleTimeout:    r.IdleTimeout,
		ReadTimeout:    r.ReadTimeout,
		WriteTimeout:   r.WriteTimeout,
		RateLimit:      r.RateLimit,
		MaxConnections: r.MaxConnections,
		Limits: resp.Decoder{
			MaxBulkLen:      cfg.Protocol.MaxBulkLen,
			MaxAggregateLen: cfg.Protocol.MaxAggregateLen,
			MaxDepth:        cfg.Protocol.MaxDepth,
		},
	}
}
