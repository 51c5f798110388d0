package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// RateLimiter implements per-IP token bucket rate limiting. Buckets
// refill at rps tokens per second up to burst; idle buckets are swept
// by a background goroutine.
type RateLimiter struct {
	rps     float64
	burst   float64
	buckets sync.Map // map[string]*bucket
	stop    chan struct{}
}

type bucket struct {
	mu         sync.Mutex
	tokens     float64
	lastRefill time.Time
}

// NewRateLimiter creates a rate limiter with background cleanup.
// Call Stop() on shutdown.
func NewRateLimiter(rps float64, burst int, cleanupInterval time.Duration) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	rl := &RateLimiter{
		rps:   rps,
		burst: float64(burst),
		stop:  make(chan struct{}),
	}
	go rl.cleanup(cleanupInterval)
	return rl
}

// Stop terminates the background cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

// Limit returns middleware that rate-limits requests per client IP.
func (rl *RateLimiter) Limit() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.allow(clientIP(r)) {
				w.Header().Set("Retry-After", "1")
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) allow(key string) bool {
	val, _ := rl.buckets.LoadOrStore(key, &bucket{
		tokens:     rl.burst,
		lastRefill: time.Now(),
	})
	b := val.(*bucket)

	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens += now.Sub(b.lastRefill).Seconds() * rl.rps
	if b.tokens > rl.burst {
		b.tokens = rl.burst
	}
	b.lastRefill = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (rl *RateLimiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			now := time.Now()
			rl.buckets.Range(func(key, value any) bool {
				b := value.(*bucket)
				b.mu.Lock()
				idle := now.Sub(b.lastRefill)
				b.mu.Unlock()
				if idle > 10*time.Minute {
					rl.buckets.Delete(key)
				}
				return true
			})
		}
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
