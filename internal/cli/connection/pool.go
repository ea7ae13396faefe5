package connection

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"gopkg.in/fatih/pool.v2"

	"github.com/yndnr/simple-redis/internal/resp"
)

// Pool shares up to maxConns connections among concurrent callers. Each
// Do borrows one connection for a single round trip.
type Pool struct {
	addr    string
	timeout time.Duration
	p       pool.Pool
}

// NewPool dials initial connections up front and keeps at most maxConns
// idle ones.
func NewPool(addr string, initial, maxConns int, timeout time.Duration) (*Pool, error) {
	if addr == "" {
		addr = DefaultServer
	}
	dialer := net.Dialer{Timeout: timeout}
	factory := func() (net.Conn, error) {
		return dialer.Dial("tcp", addr)
	}

	p, err := pool.NewChannelPool(initial, maxConns, factory)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", addr, err)
	}
	return &Pool{addr: addr, timeout: timeout, p: p}, nil
}

// Addr returns the server address.
func (p *Pool) Addr() string {
	return p.addr
}

// Do sends one command on a pooled connection. Connections that fail are
// discarded instead of returned.
func (p *Pool) Do(ctx context.Context, args ...string) (resp.Frame, error) {
	if len(args) == 0 {
		return nil, errors.New("connection: empty command")
	}

	conn, err := p.p.Get()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	fail := func(err error) (resp.Frame, error) {
		if pc, ok := conn.(*pool.PoolConn); ok {
			pc.MarkUnusable()
		}
		return nil, err
	}

	if err := conn.SetDeadline(deadlineFor(ctx, p.timeout)); err != nil {
		return fail(err)
	}
	codec := resp.NewCodec(conn)
	if err := codec.WriteFrame(Request(args...)); err != nil {
		return fail(fmt.Errorf("send: %w", err))
	}
	reply, err := codec.ReadFrame()
	if err != nil {
		return fail(fmt.Errorf("receive: %w", err))
	}
	return reply, nil
}

// Len returns the number of idle connections.
func (p *Pool) Len() int {
	return p.p.Len()
}

// Close closes every idle connection. Borrowed connections are closed when
// returned.
func (p *Pool) Close() {
	p.p.Close()
}
