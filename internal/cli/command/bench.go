package command

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/simple-redis/internal/cli/connection"
	"github.com/yndnr/simple-redis/internal/cli/output"
	"github.com/yndnr/simple-redis/internal/resp"
)

// BenchCommand returns the bench command.
func BenchCommand() *cli.Command {
	return &cli.Command{
		Name:      "bench",
		Usage:     "Send a command repeatedly from concurrent clients and report throughput",
		ArgsUsage: "[COMMAND [ARGS...]]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "clients",
				Aliases: []string{"c"},
				Usage:   "concurrent connections",
				Value:   10,
			},
			&cli.IntFlag{
				Name:    "requests",
				Aliases: []string{"n"},
				Usage:   "total requests",
				Value:   10000,
			},
		},
		Action: benchAction,
	}
}

// benchResult summarises one run.
type benchResult struct {
	Requests int
	Failed   int64
	Elapsed  time.Duration
	P50      time.Duration
	P99      time.Duration
	Max      time.Duration
}

func benchAction(c *cli.Context) error {
	clients, requests := c.Int("clients"), c.Int("requests")
	if clients <= 0 || requests <= 0 {
		return errors.New("clients and requests must be positive")
	}
	if clients > requests {
		clients = requests
	}
	args := c.Args().Slice()
	if len(args) == 0 {
		args = []string{"PING"}
	}

	s := GetSettings(c)
	p, err := connection.NewPool(s.Server, clients, clients, s.Timeout)
	if err != nil {
		return err
	}
	defer p.Close()

	res := runBench(c, p, clients, requests, args)

	m := resp.NewMap(
		resp.MapEntry{Key: "server", Value: resp.BulkString(p.Addr())},
		resp.MapEntry{Key: "command", Value: resp.BulkString(args[0])},
		resp.MapEntry{Key: "clients", Value: resp.Integer(clients)},
		resp.MapEntry{Key: "requests", Value: resp.Integer(res.Requests)},
		resp.MapEntry{Key: "failed", Value: resp.Integer(res.Failed)},
		resp.MapEntry{Key: "elapsed", Value: resp.BulkString(res.Elapsed.String())},
		resp.MapEntry{Key: "requests_per_sec", Value: resp.Double(float64(res.Requests) / res.Elapsed.Seconds())},
		resp.MapEntry{Key: "latency_p50", Value: resp.BulkString(res.P50.String())},
		resp.MapEntry{Key: "latency_p99", Value: resp.BulkString(res.P99.String())},
		resp.MapEntry{Key: "latency_max", Value: resp.BulkString(res.Max.String())},
	)

	format := s.Output
	if format == output.FormatText {
		format = output.FormatTable
	}
	if err := output.NewFormatter(format).Format(stdout(c), m); err != nil {
		return err
	}
	if res.Failed > 0 {
		return fmt.Errorf("%d of %d requests failed", res.Failed, res.Requests)
	}
	return nil
}

// runBench splits requests across clients goroutines. Error replies count
// as failures.
func runBench(c *cli.Context, p *connection.Pool, clients, requests int, args []string) benchResult {
	var (
		next   atomic.Int64
		failed atomic.Int64
		wg     sync.WaitGroup
	)
	latencies := make([]time.Duration, requests)

	start := time.Now()
	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				n := int(next.Add(1)) - 1
				if n >= requests {
					return
				}
				t0 := time.Now()
				reply, err := p.Do(c.Context, args...)
				latencies[n] = time.Since(t0)
				if err != nil {
					failed.Add(1)
					continue
				}
				switch reply.(type) {
				case resp.SimpleError, resp.BulkError:
					failed.Add(1)
				}
			}
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
	return benchResult{
		Requests: requests,
		Failed:   failed.Load(),
		Elapsed:  elapsed,
		P50:      percentile(latencies, 50),
		P99:      percentile(latencies, 99),
		Max:      latencies[len(latencies)-1],
	}
}

// percentile expects sorted input.
func percentile(sorted []time.Duration, pct int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := (len(sorted)*pct + 99) / 100
	if idx > 0 {
		idx--
	}
	return sorted[idx]
}
