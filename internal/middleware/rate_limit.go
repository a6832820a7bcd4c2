package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"log/slog"

	"golang.org/x/time/rate"
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiter keys token buckets by client IP. Victim submissions often
// arrive from shared shelter networks, so each address gets a burst
// allowance instead of a flat per-request rule.
type ipLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   rate.Limit
	burst   int
	ttl     time.Duration
	logger  *slog.Logger
}

// Limit returns a per-IP rate limiting middleware. Rejections go out
// through the same JSON error envelope the handlers use.
func Limit(rps, burst int, ttl time.Duration, logger *slog.Logger) func(http.Handler) http.Handler {
	l := &ipLimiter{
		clients: make(map[string]*client),
		limit:   rate.Limit(rps),
		burst:   burst,
		ttl:     ttl,
		logger:  logger,
	}

	go l.sweep()

	return l.middleware()
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = time.Now()
	return c.limiter.Allow()
}

// sweep drops buckets idle longer than the ttl so one-off callers do
// not accumulate in the map.
func (l *ipLimiter) sweep() {
	for {
		time.Sleep(time.Minute)
		l.mu.Lock()
		for ip, c := range l.clients {
			if time.Since(c.lastSeen) > l.ttl {
				delete(l.clients, ip)
			}
		}
		l.mu.Unlock()
	}
}

func (l *ipLimiter) middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				l.logger.Error("rate limiter cannot parse remote address",
					slog.String("remote", r.RemoteAddr), slog.String("error", err.Error()))
				writeError(w, http.StatusInternalServerError, "cannot identify client")
				return
			}

			if !l.allow(ip) {
				l.logger.Warn("rate limit exceeded", slog.String("ip", ip), slog.String("path", r.URL.Path))
				writeError(w, http.StatusTooManyRequests, "too many requests, slow down")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
