package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/georgemunganga/hospo-ops/internal/httpx"
)

// FixedWindowLimiter counts requests per key inside non-sliding windows aligned
// to multiples of the window length. Excess requests are rejected, never queued.
type FixedWindowLimiter struct {
	permits int
	window  time.Duration
	now     func() time.Time

	mu        sync.Mutex
	counters  map[string]*windowCounter
	lastSweep time.Time
}

type windowCounter struct {
	start time.Time
	count int
}

// NewFixedWindowLimiter admits permits requests per key per window.
func NewFixedWindowLimiter(permits int, window time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		permits:  permits,
		window:   window,
		now:      time.Now,
		counters: make(map[string]*windowCounter),
	}
}

// Allow records a request for key. When the key is over its quota it returns
// false and the time left until the window resets.
func (l *FixedWindowLimiter) Allow(key string) (bool, time.Duration) {
	now := l.now()
	start := now.Truncate(l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.window {
		for k, c := range l.counters {
			if c.start.Before(start) {
				delete(l.counters, k)
			}
		}
		l.lastSweep = now
	}

	c, ok := l.counters[key]
	if !ok || !c.start.Equal(start) {
		c = &windowCounter{start: start}
		l.counters[key] = c
	}
	if c.count >= l.permits {
		return false, start.Add(l.window).Sub(now)
	}
	c.count++
	return true, 0
}

// RateLimit throttles every non-anonymous request by client address.
func RateLimit(l *FixedWindowLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if l == nil || IsAnonymous(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}
			ok, retryAfter := l.Allow(clientKey(r))
			if !ok {
				secs := int(math.Ceil(retryAfter.Seconds()))
				if secs < 1 {
					secs = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(secs))
				httpx.ErrorJSON(w, http.StatusTooManyRequests, "Too many requests.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if host == "" {
		return "anon"
	}
	return host
}
