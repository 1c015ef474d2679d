package api

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/okian/aav/pkg/metrics"
)

// MetricsMiddleware records request count and duration per route pattern.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		endpoint := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			endpoint = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.RecordHTTPRequest(endpoint, r.Method, strconv.Itoa(status),
			float64(time.Since(start).Microseconds())/1000)
	})
}

const (
	limiterIdleTTL       = 10 * time.Minute
	limiterSweepInterval = time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiter hands out one token bucket per client IP. Buckets idle for
// longer than limiterIdleTTL are dropped on the next sweep.
type ipLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*clientLimiter
	rate      rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

func newIPLimiter(rps float64, burst int) *ipLimiter {
	if burst < 1 {
		burst = max(1, int(rps))
	}
	return &ipLimiter{
		limiters:  make(map[string]*clientLimiter),
		rate:      rate.Limit(rps),
		burst:     burst,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (l *ipLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= limiterSweepInterval {
		l.sweep(now)
	}
	if c, ok := l.limiters[ip]; ok {
		c.lastSeen = now
		return c.limiter
	}
	c := &clientLimiter{limiter: rate.NewLimiter(l.rate, l.burst), lastSeen: now}
	l.limiters[ip] = c
	return c.limiter
}

// sweep must be called with mu held.
func (l *ipLimiter) sweep(now time.Time) {
	for ip, c := range l.limiters {
		if now.Sub(c.lastSeen) > limiterIdleTTL {
			delete(l.limiters, ip)
		}
	}
	l.lastSweep = now
}

func (l *ipLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

// RateLimitMiddleware rejects clients exceeding rps requests per second with
// 429. Clients are keyed by RemoteAddr, which only reflects forwarding
// headers when the router trusts a proxy.
func RateLimitMiddleware(rps float64, burst int) func(http.Handler) http.Handler {
	return newIPLimiter(rps, burst).middleware
}

func (l *ipLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil || ip == "" {
			ip = r.RemoteAddr
		}
		if !l.get(ip).Allow() {
			metrics.RecordRateLimited()
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusTooManyRequests, "rate_limited", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
