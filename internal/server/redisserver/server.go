package redisserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/time/rate"

	"github.com/yndnr/simple-redis/internal/resp"
	"github.com/yndnr/simple-redis/internal/storage/memory"
	"github.com/yndnr/simple-redis/internal/telemetry/logger"
	"github.com/yndnr/simple-redis/internal/telemetry/metric"
)

var (
	errRateLimited = resp.SimpleError("ERR rate limit exceeded")
	errMaxClients  = resp.SimpleError("ERR max number of clients reached")
)

// Config holds the RESP server configuration.
type Config struct {
	// Address is the TCP listen address.
	Address string
	// IdleTimeout bounds the wait for the next request. Zero disables it.
	IdleTimeout time.Duration
	// ReadTimeout bounds reading the rest of a partially received request.
	// Zero disables it.
	ReadTimeout time.Duration
	// WriteTimeout bounds writing one reply. Zero disables it.
	WriteTimeout time.Duration
	// RateLimit is the maximum number of commands per second per client IP.
	// Zero disables rate limiting.
	RateLimit int
	// MaxConnections caps concurrent client connections. Zero means no cap.
	MaxConnections int
	// Limits applies to every request frame.
	Limits resp.Decoder
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Address: "0.0.0.0:7890",
	}
}

// Server accepts RESP connections and runs their commands against a shared
// store, one goroutine per connection.
type Server struct {
	cfg     *Config
	store   *memory.Store
	logger  logger.Logger
	metrics *metric.Registry
	limiter *ipLimiter

	mu    sync.Mutex
	ln    net.Listener
	conns map[net.Conn]struct{}

	active   atomic.Int64
	running  atomic.Bool
	shutdown atomic.Bool
	wg       sync.WaitGroup
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics enables metric collection.
func WithMetrics(r *metric.Registry) Option {
	return func(s *Server) {
		s.metrics = r
	}
}

// New creates a server for store. A nil cfg uses DefaultConfig.
func New(cfg *Config, store *memory.Store, opts ...Option) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	s := &Server{
		cfg:     cfg,
		store:   store,
		logger:  logger.Default(),
		limiter: newIPLimiter(cfg.RateLimit),
		conns:   make(map[net.Conn]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return fmt.Errorf("redisserver: listen %s: %w", s.cfg.Address, err)
	}

	s.logger.Info("redis server listening", "address", ln.Addr().String())

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.Serve(ctx, ln); err != nil {
			s.logger.Error("redis server error", "error", err)
		}
	}()
	return nil
}

// Addr returns the listener address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Serve accepts connections on ln until it is closed. It returns nil after
// Shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()
	s.running.Store(true)

	for {
		c, err := ln.Accept()
		if err != nil {
			if !s.running.Load() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				s.logger.Warn("accept timeout", "error", err)
				time.Sleep(5 * time.Millisecond)
				continue
			}
			return err
		}

		// The slot is reserved before the handler starts so a burst of
		// accepts cannot overshoot the cap.
		if n := s.active.Add(1); s.cfg.MaxConnections > 0 && int(n) > s.cfg.MaxConnections {
			s.active.Add(-1)
			s.reject(c)
			continue
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConn(ctx, c)
		}()
	}
}

func (s *Server) reject(c net.Conn) {
	if s.metrics != nil {
		s.metrics.ConnectionsRejected.Inc()
	}
	s.logger.Warn("connection rejected", "remote", c.RemoteAddr().String(), "reason", "max_connections")
	_ = c.SetWriteDeadline(time.Now().Add(time.Second))
	_, _ = c.Write(resp.Encode(errMaxClients))
	_ = c.Close()
}

// Shutdown closes the listener and every live connection, then waits for
// their goroutines or for ctx to expire.
func (s *Server) Shutdown(ctx context.Context) error {
	s.running.Store(false)
	s.shutdown.Store(true)

	var firstErr error

	s.mu.Lock()
	if s.ln != nil {
		if err := s.ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			firstErr = err
		}
	}
	for c := range s.conns {
		_ = c.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	return firstErr
}

// ActiveConnections returns the number of open client connections.
func (s *Server) ActiveConnections() int {
	return int(s.active.Load())
}

// track registers or forgets c. Registration fails once Shutdown has begun.
func (s *Server) track(c net.Conn, add bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !add {
		delete(s.conns, c)
		return true
	}
	if s.shutdown.Load() {
		return false
	}
	s.conns[c] = struct{}{}
	return true
}

// handleConn owns c until the client leaves or the connection fails. The
// caller has already counted c in s.active.
func (s *Server) handleConn(ctx context.Context, c net.Conn) {
	if !s.track(c, true) {
		s.active.Add(-1)
		_ = c.Close()
		return
	}
	if s.metrics != nil {
		s.metrics.ConnectionsTotal.Inc()
		s.metrics.ConnectionsActive.Inc()
	}
	defer func() {
		_ = c.Close()
		s.track(c, false)
		s.active.Add(-1)
		if s.metrics != nil {
			s.metrics.ConnectionsActive.Dec()
		}
	}()

	connID := ulid.Make().String()
	ctx = logger.WithConnID(ctx, connID)
	ctx = logger.WithLogger(ctx, s.logger.With("remote", c.RemoteAddr().String()))
	log := logger.L(ctx)

	var lim *rate.Limiter
	if s.limiter != nil {
		ip := hostOf(c.RemoteAddr())
		lim = s.limiter.acquire(ip)
		defer s.limiter.release(ip)
	}

	log.Debug("connection opened")
	s.serveConn(c, lim, log)
	log.Debug("connection closed")
}

// serveConn runs the request/response loop. Replies are written in request
// order; the loop exits on QUIT, end of stream or any fatal error.
func (s *Server) serveConn(c net.Conn, lim *rate.Limiter, log logger.Logger) {
	dec := s.cfg.Limits
	codec := resp.NewCodec(c, resp.WithDecoder(&dec))

	for {
		timeout := s.cfg.IdleTimeout
		if codec.Buffered() > 0 {
			timeout = s.cfg.ReadTimeout
		}
		if err := setDeadline(c.SetReadDeadline, timeout); err != nil {
			return
		}

		frame, err := codec.ReadFrame()
		if err != nil {
			s.readFailed(c, err, log)
			return
		}

		reply, cmd := s.dispatch(frame, lim)

		if err := setDeadline(c.SetWriteDeadline, s.cfg.WriteTimeout); err != nil {
			return
		}
		if err := codec.WriteFrame(reply); err != nil {
			log.Debug("write failed", "error", err)
			return
		}

		if _, quit := cmd.(*Quit); quit {
			return
		}
	}
}

// dispatch parses and executes one request frame. cmd is nil when parsing
// failed.
func (s *Server) dispatch(frame resp.Frame, lim *rate.Limiter) (reply resp.Frame, cmd Command) {
	cmd, err := ParseCommand(frame)
	if err != nil {
		if s.metrics != nil {
			s.metrics.ObserveCommand("invalid", true, 0)
		}
		return ErrorReply(err), nil
	}

	if lim != nil && !lim.Allow() {
		if s.metrics != nil {
			s.metrics.RateLimited.Inc()
		}
		return errRateLimited, cmd
	}

	start := time.Now()
	reply = cmd.Execute(s.store)
	if s.metrics != nil {
		_, failed := reply.(resp.SimpleError)
		s.metrics.ObserveCommand(cmd.Name(), failed, time.Since(start))
	}
	return reply, cmd
}

// readFailed logs why reading stopped and, for protocol violations, sends a
// best-effort error reply before the connection is closed.
func (s *Server) readFailed(c net.Conn, err error, log logger.Logger) {
	var reason string
	switch {
	case errors.Is(err, io.EOF):
		return
	case errors.Is(err, resp.ErrLimitExceeded):
		reason = "limit"
	case errors.Is(err, resp.ErrInvalidFrame):
		reason = "invalid"
	case errors.Is(err, resp.ErrTruncated):
		reason = "truncated"
	}

	var ne net.Error
	switch {
	case reason == "" && errors.As(err, &ne) && ne.Timeout():
		log.Debug("connection timed out")
		return
	case reason == "":
		log.Debug("connection read error", "error", err)
		return
	}

	if s.metrics != nil {
		s.metrics.ProtocolErrors.WithLabelValues(reason).Inc()
	}
	log.Warn("protocol error", "reason", reason, "error", err)

	if reason == "truncated" {
		return
	}
	_ = setDeadline(c.SetWriteDeadline, time.Second)
	_, _ = c.Write(resp.Encode(resp.Errorf("ERR Protocol error: %s", err.Error())))
}

func setDeadline(set func(time.Time) error, d time.Duration) error {
	if d <= 0 {
		return set(time.Time{})
	}
	return set(time.Now().Add(d))
}
