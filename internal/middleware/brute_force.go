package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	authFailureThreshold = 5
	authFailureWindow    = 10 * time.Minute
	authLockoutDuration  = 5 * time.Minute
	guardSweepInterval   = 60 * time.Second
	guardMaxTracked      = 10000
)

type authFailure struct {
	count    int
	since    time.Time
	lockedAt time.Time
}

// BruteForceGuard tracks authentication failures per key hash and locks out
// keys that keep failing within the tracking window.
type BruteForceGuard struct {
	mu       sync.Mutex
	failures map[string]*authFailure
	log      *logrus.Logger
}

// NewBruteForceGuard creates a guard and starts its background sweep
// goroutine, which exits when ctx is cancelled.
func NewBruteForceGuard(ctx context.Context, log *logrus.Logger) *BruteForceGuard {
	g := &BruteForceGuard{
		failures: make(map[string]*authFailure),
		log:      log,
	}
	go g.sweep(ctx)
	return g
}

func keyHash(apiKey string) string {
	h := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(h[:])
}

// IsBlocked reports whether the key is currently locked out.
func (g *BruteForceGuard) IsBlocked(apiKey string) bool {
	kh := keyHash(apiKey)

	g.mu.Lock()
	defer g.mu.Unlock()

	f, ok := g.failures[kh]
	if !ok || f.lockedAt.IsZero() {
		return false
	}

	return time.Since(f.lockedAt) < authLockoutDuration
}

// RecordFailure counts a failed authentication attempt for the key. Crossing
// the threshold inside the tracking window locks the key out.
func (g *BruteForceGuard) RecordFailure(apiKey string) {
	kh := keyHash(apiKey)
	now := time.Now()

	g.mu.Lock()
	defer g.mu.Unlock()

	f, ok := g.failures[kh]
	if !ok || now.Sub(f.since) > authFailureWindow {
		g.failures[kh] = &authFailure{count: 1, since: now}
		return
	}

	f.count++
	if f.count >= authFailureThreshold && f.lockedAt.IsZero() {
		f.lockedAt = now
		g.log.WithField("key_hash", kh[:12]).Warn("api key locked out after repeated auth failures")
	}
}

// ResetKey clears failure tracking for a key. Called on successful auth.
func (g *BruteForceGuard) ResetKey(apiKey string) {
	kh := keyHash(apiKey)

	g.mu.Lock()
	delete(g.failures, kh)
	g.mu.Unlock()
}

func (g *BruteForceGuard) sweep(ctx context.Context) {
	ticker := time.NewTicker(guardSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.expireStale(time.Now())
		}
	}
}

func (g *BruteForceGuard) expireStale(now time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for kh, f := range g.failures {
		lockExpired := !f.lockedAt.IsZero() && now.Sub(f.lockedAt) >= authLockoutDuration
		windowStale := now.Sub(f.since) >= authFailureWindow
		if lockExpired || windowStale {
			delete(g.failures, kh)
		}
	}

	// Keep the map bounded; drop the oldest trackers first.
	if excess := len(g.failures) - guardMaxTracked; excess > 0 {
		type tracked struct {
			key   string
			since time.Time
		}
		oldest := make([]tracked, 0, len(g.failures))
		for kh, f := range g.failures {
			oldest = append(oldest, tracked{kh, f.since})
		}
		sort.Slice(oldest, func(i, j int) bool { return oldest[i].since.Before(oldest[j].since) })
		for _, t := range oldest[:excess] {
			delete(g.failures, t.key)
		}
	}
}

// BruteForceMiddleware rejects requests that carry a locked-out API key.
func BruteForceMiddleware(guard *BruteForceGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := ExtractBearerToken(c)
		if apiKey != "" && guard.IsBlocked(apiKey) {
			respondError(c, http.StatusTooManyRequests,
				"rate_limited", "too many failed authentication attempts")
			c.Abort()
			return
		}

		c.Next()
	}
}
