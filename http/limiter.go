package http

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// limiterSweepSize is the client count above which idle limiters are dropped.
	limiterSweepSize = 10000

	// limiterIdle is how long a client must be quiet before its limiter is dropped.
	limiterIdle = 3 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientLimiter provides per-client rate limiting using token buckets.
// Each client address gets its own limiter, so one busy client cannot
// starve the others.
type ClientLimiter struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	rps      float64
	burst    int
}

// NewClientLimiter creates a new ClientLimiter allowing rps requests per
// second per client with the given burst.
func NewClientLimiter(rps float64, burst int) *ClientLimiter {
	if burst < 1 {
		burst = 1
	}
	return &ClientLimiter{
		limiters: make(map[string]*clientLimiter),
		rps:      rps,
		burst:    burst,
	}
}

// Allow reports whether client may make a request now.
func (c *ClientLimiter) Allow(client string) bool {
	now := time.Now()

	c.mu.Lock()
	if len(c.limiters) > limiterSweepSize {
		for k, l := range c.limiters {
			if now.Sub(l.lastSeen) > limiterIdle {
				delete(c.limiters, k)
			}
		}
	}
	l, ok := c.limiters[client]
	if !ok {
		l = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(c.rps), c.burst)}
		c.limiters[client] = l
	}
	l.lastSeen = now
	c.mu.Unlock()

	return l.limiter.AllowN(now, 1)
}

// Middleware rejects requests over the limit with 429 Too Many Requests.
func (c *ClientLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !c.Allow(clientAddr(r)) {
			w.Header().Set("Retry-After", "1")
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
