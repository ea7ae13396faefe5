package redisserver

import (
	"net"

	"golang.org/x/time/rate"

	"github.com/yndnr/simple-redis/pkg/cmap"
)

// ipLimiter hands out one token bucket per client IP. Buckets are shared by
// all connections from the same IP and dropped when the last one closes.
type ipLimiter struct {
	limit   rate.Limit
	burst   int
	entries *cmap.Map[string, *limiterEntry]
}

type limiterEntry struct {
	lim  *rate.Limiter
	refs int
}

// newIPLimiter returns nil when perSecond is not positive.
func newIPLimiter(perSecond int) *ipLimiter {
	if perSecond <= 0 {
		return nil
	}
	return &ipLimiter{
		limit:   rate.Limit(perSecond),
		burst:   perSecond,
		entries: cmap.New[string, *limiterEntry](),
	}
}

func (l *ipLimiter) acquire(ip string) *rate.Limiter {
	var lim *rate.Limiter
	l.entries.Compute(ip, func(e *limiterEntry, ok bool) (*limiterEntry, cmap.ComputeOp) {
		if !ok {
			e = &limiterEntry{lim: rate.NewLimiter(l.limit, l.burst)}
		}
		e.refs++
		lim = e.lim
		return e, cmap.Store
	})
	return lim
}

func (l *ipLimiter) release(ip string) {
	l.entries.Compute(ip, func(e *limiterEntry, ok bool) (*limiterEntry, cmap.ComputeOp) {
		if !ok {
			return nil, cmap.Keep
		}
		e.refs--
		if e.refs <= 0 {
			return nil, cmap.Remove
		}
		return e, cmap.Keep
	})
}

// hostOf strips the port from a remote address.
func hostOf(addr net.Addr) string {
	if addr == nil {
		return ""
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	return host
}
