package command

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/simple-redis/internal/cli/config"
	"github.com/yndnr/simple-redis/internal/server/httpserver"
	"github.com/yndnr/simple-redis/internal/server/redisserver"
	"github.com/yndnr/simple-redis/internal/storage/memory"
	"github.com/yndnr/simple-redis/internal/telemetry/logger"
)

// isolate points HOME at a temp dir and clears the CLI environment so
// tests never touch the real ~/.simple-redis.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{config.EnvServer, config.EnvOutput, config.EnvTimeout} {
		t.Setenv(k, "")
	}
	return home
}

// startServer runs a RESP server on a random port and returns its address.
func startServer(t *testing.T) (*memory.Store, string) {
	t.Helper()
	store := memory.New()
	srv := redisserver.New(&redisserver.Config{Address: "127.0.0.1:0"}, store,
		redisserver.WithLogger(logger.Discard()))
	if err := srv.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})

	deadline := time.Now().Add(time.Second)
	for srv.Addr() == nil && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if srv.Addr() == nil {
		t.Fatal("server did not start")
	}
	return store, srv.Addr().String()
}

type fixedCount int

func (n fixedCount) Len() int               { return int(n) }
func (n fixedCount) ActiveConnections() int { return int(n) }

// startAdmin runs an admin endpoint reporting fixed counts.
func startAdmin(t *testing.T, keys, conns int) string {
	t.Helper()
	srv := httptest.NewServer(httpserver.NewRouter(&httpserver.RouterConfig{
		Keyspace:    fixedCount(keys),
		Connections: fixedCount(conns),
		Logger:      logger.Discard(),
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

// runApp runs the CLI with stdin and returns what it wrote to stdout.
func runApp(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := App()
	app.Writer = &out
	app.ErrWriter = io.Discard
	app.Reader = strings.NewReader(stdin)
	app.ExitErrHandler = func(*cli.Context, error) {}

	err := app.Run(append([]string{"simple-redis-cli"}, args...))
	return out.String(), err
}
