// Package middleware provides HTTP middleware for the knowledge base service.
package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// maxBuckets caps the number of tracked client IPs.
const maxBuckets = 100_000

// bucketMaxIdle is how long an untouched bucket survives before eviction.
const bucketMaxIdle = 10 * time.Minute

// RateLimiter applies a token-bucket limit per client IP.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    float64
	burst   float64
}

type bucket struct {
	tokens  float64
	touched time.Time
}

// NewRateLimiter creates a limiter allowing ratePerSec requests with the
// given burst per client IP. A background goroutine evicts idle buckets and
// stops when ctx is cancelled.
func NewRateLimiter(ctx context.Context, ratePerSec, burst int) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		rate:    float64(ratePerSec),
		burst:   float64(burst),
	}
	go rl.evictLoop(ctx)

	return rl
}

// take refills the client's bucket for the elapsed time and consumes one
// token if available. Caller must hold rl.mu.
func (rl *RateLimiter) take(ip string, now time.Time) (allowed, known bool) {
	b, ok := rl.buckets[ip]
	if !ok {
		if len(rl.buckets) >= maxBuckets {
			return false, false
		}
		b = &bucket{tokens: rl.burst, touched: now}
		rl.buckets[ip] = b
	}

	b.tokens += now.Sub(b.touched).Seconds() * rl.rate
	if b.tokens > rl.burst {
		b.tokens = rl.burst
	}
	b.touched = now

	if b.tokens < 1 {
		return false, true
	}
	b.tokens--

	return true, true
}

func (rl *RateLimiter) evictLoop(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			for ip, b := range rl.buckets {
				if now.Sub(b.touched) > bucketMaxIdle {
					delete(rl.buckets, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// Handler returns gin middleware enforcing the per-IP limit.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// c.ClientIP() cannot be spoofed via X-Forwarded-For because the
		// router disables trusted proxies.
		ip := c.ClientIP()

		rl.mu.Lock()
		allowed, known := rl.take(ip, time.Now())
		rl.mu.Unlock()

		switch {
		case !known:
			respondError(c, http.StatusTooManyRequests, "rate_limited", "too many clients")
			return
		case !allowed:
			respondError(c, http.StatusTooManyRequests, "rate_limited", "rate limit exceeded")
			return
		}

		c.Next()
	}
}
