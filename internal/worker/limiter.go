package worker

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/ppiankov/evadvisor/internal/cache"
	"golang.org/x/time/rate"
)

// ClientIdleTTL is how long a client's bucket is kept after its last request
const ClientIdleTTL = 10 * time.Minute

// Limiter implements per-client rate limiting. Buckets of clients idle
// longer than the idle TTL are dropped, so a long-running server does not
// accumulate one bucket per address ever seen.
type Limiter struct {
	clients      *cache.MemoryCache[*rate.Limiter]
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a new rate limiter. A non-positive rate disables limiting.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	return newLimiter(requestsPerSecond, burst, ClientIdleTTL)
}

func newLimiter(requestsPerSecond float64, burst int, idle time.Duration) *Limiter {
	if burst <= 0 {
		burst = 5
	}

	limit := rate.Limit(requestsPerSecond)
	if requestsPerSecond <= 0 {
		limit = rate.Inf
	}

	return &Limiter{
		clients:      cache.NewMemoryCache[*rate.Limiter](idle, idle),
		defaultRate:  limit,
		defaultBurst: burst,
	}
}

// Allow reports whether the client may proceed now, consuming a token if so
func (l *Limiter) Allow(key string) bool {
	return l.getLimiter(key).Allow()
}

// getLimiter returns the client's bucket and re-arms its idle deadline
func (l *Limiter) getLimiter(key string) *rate.Limiter {
	if limiter, ok := l.clients.Get(key); ok {
		l.clients.Touch(key)
		return limiter
	}

	limiter := rate.NewLimiter(l.defaultRate, l.defaultBurst)
	if l.clients.Add(key, limiter, cache.DefaultTTL) {
		return limiter
	}

	// Another request created it meanwhile
	if existing, ok := l.clients.Get(key); ok {
		return existing
	}
	return limiter
}

// Len returns the number of tracked clients, including idle ones not yet
// cleaned up
func (l *Limiter) Len() int {
	return l.clients.Len()
}

// ClientKey derives the limiter key for a request: the host part of
// RemoteAddr, which chi's RealIP middleware has already rewritten
func ClientKey(r *http.Request) string {
	addr := strings.TrimSpace(r.RemoteAddr)
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
