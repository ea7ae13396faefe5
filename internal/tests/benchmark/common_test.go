package benchmark

import (
	"context"
	"fmt"
	"runtime"
	"testing"
	"time"

	"github.com/yndnr/simple-redis/internal/resp"
	"github.com/yndnr/simple-redis/internal/server/redisserver"
	"github.com/yndnr/simple-redis/internal/storage/memory"
	"github.com/yndnr/simple-redis/internal/telemetry/logger"
)

// KeyCounts defines the keyspace sizes for benchmarking.
var KeyCounts = []int{1000, 10000, 100000}

// SmallKeyCounts for quick benchmarks.
var SmallKeyCounts = []int{1000, 10000}

func key(i int) string {
	return fmt.Sprintf("key:%08d", i)
}

// prefillStore writes count string keys.
func prefillStore(store *memory.Store, count int) {
	value := []byte("benchmark-value-0123456789")
	for i := 0; i < count; i++ {
		store.Set(key(i), value)
	}
}

// request builds a command frame the way clients send it.
func request(args ...string) resp.Array {
	out := make(resp.Array, len(args))
	for i, a := range args {
		out[i] = resp.BulkString(a)
	}
	return out
}

// startServer runs a RESP server on a loopback port.
func startServer(b *testing.B, store *memory.Store) string {
	b.Helper()
	srv := redisserver.New(&redisserver.Config{Address: "127.0.0.1:0"}, store,
		redisserver.WithLogger(logger.Discard()))
	if err := srv.Start(context.Background()); err != nil {
		b.Fatalf("Start() error = %v", err)
	}
	b.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})

	deadline := time.Now().Add(time.Second)
	for srv.Addr() == nil && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if srv.Addr() == nil {
		b.Fatal("server did not start")
	}
	return srv.Addr().String()
}

// reportMemory reports memory usage.
func reportMemory(b *testing.B, prefix string) {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.Alloc)/(1024*1024), prefix+"_MB")
	b.ReportMetric(float64(m.NumGC), prefix+"_GC")
}

// runWithKeyCounts runs a benchmark function with various keyspace sizes.
func runWithKeyCounts(b *testing.B, counts []int, benchFn func(b *testing.B, count int)) {
	for _, count := range counts {
		b.Run(fmt.Sprintf("keys_%d", count), func(b *testing.B) {
			benchFn(b, count)
		})
	}
}
