package connection

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/yndnr/simple-redis/internal/resp"
)

// DefaultServer is the address used when none is configured.
const DefaultServer = "127.0.0.1:7890"

// ErrClosed is returned by Do after Close.
var ErrClosed = errors.New("connection: client closed")

const defaultTimeout = 5 * time.Second

// Client is a RESP client bound to one server address.
type Client struct {
	addr    string
	timeout time.Duration
	dialer  net.Dialer

	mu     sync.Mutex
	conn   net.Conn
	codec  *resp.Codec
	closed bool
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds dialing and each request round trip. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// New returns a client for addr. No connection is made until the first
// request.
func New(addr string, opts ...Option) *Client {
	if addr == "" {
		addr = DefaultServer
	}
	c := &Client{addr: addr, timeout: defaultTimeout}
	for _, opt := range opts {
		opt(c)
	}
	c.dialer.Timeout = c.timeout
	return c
}

// Addr returns the server address.
func (c *Client) Addr() string {
	return c.addr
}

// Connect dials the server if not already connected.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connectLocked(ctx)
}

func (c *Client) connectLocked(ctx context.Context) error {
	if c.closed {
		return ErrClosed
	}
	if c.conn != nil {
		return nil
	}
	conn, err := c.dialer.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return fmt.Errorf("connect %s: %w", c.addr, err)
	}
	c.conn = conn
	c.codec = resp.NewCodec(conn)
	return nil
}

// Do sends one command and waits for its reply. A transport failure drops
// the connection so the next call redials.
func (c *Client) Do(ctx context.Context, args ...string) (resp.Frame, error) {
	if len(args) == 0 {
		return nil, errors.New("connection: empty command")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.connectLocked(ctx); err != nil {
		return nil, err
	}

	if err := c.conn.SetDeadline(deadlineFor(ctx, c.timeout)); err != nil {
		c.dropLocked()
		return nil, err
	}

	if err := c.codec.WriteFrame(Request(args...)); err != nil {
		c.dropLocked()
		return nil, fmt.Errorf("send: %w", err)
	}
	reply, err := c.codec.ReadFrame()
	if err != nil {
		c.dropLocked()
		return nil, fmt.Errorf("receive: %w", err)
	}
	return reply, nil
}

// Close closes the connection. Further calls to Do fail with ErrClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn, c.codec = nil, nil
	return err
}

func (c *Client) dropLocked() {
	if c.conn != nil {
		_ = c.conn.Close()
	}
	c.conn, c.codec = nil, nil
}

// deadlineFor returns the earlier of now+timeout and the ctx deadline. The
// zero time means no deadline.
func deadlineFor(ctx context.Context, timeout time.Duration) time.Time {
	deadline := time.Time{}
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}
	if d, ok := ctx.Deadline(); ok && (deadline.IsZero() || d.Before(deadline)) {
		deadline = d
	}
	return deadline
}

// Request builds the request frame for args.
func Request(args ...string) resp.Array {
	out := make(resp.Array, len(args))
	for i, a := range args {
		out[i] = resp.BulkString(a)
	}
	return out
}
