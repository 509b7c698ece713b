package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/fdestra28/kasirtta-sub000/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const purgeInterval = 5 * time.Minute

type rateEntry struct {
	count     int
	windowEnd time.Time
}

// rateLimiter is a fixed-window per-IP limiter. Each middleware instance owns
// its entry map and purge goroutine, so the login route and the general API
// can carry independent budgets wired from config.
type rateLimiter struct {
	mu      sync.Mutex
	entries map[string]*rateEntry
	limit   int
	window  time.Duration
}

// RateLimiter allows limit requests per window per client IP and answers the
// rest with 429 and a Retry-After header.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	l := &rateLimiter{
		entries: make(map[string]*rateEntry),
		limit:   limit,
		window:  window,
	}
	go l.purge()
	return l.handle
}

func (l *rateLimiter) handle(c *gin.Context) {
	now := time.Now()

	l.mu.Lock()
	entry, ok := l.entries[c.ClientIP()]
	if !ok || now.After(entry.windowEnd) {
		entry = &rateEntry{windowEnd: now.Add(l.window)}
		l.entries[c.ClientIP()] = entry
	}
	entry.count++
	over := entry.count > l.limit
	retryAt := entry.windowEnd
	l.mu.Unlock()

	if over {
		c.Header("Retry-After", retryAt.Format(time.RFC1123))
		c.AbortWithStatusJSON(http.StatusTooManyRequests,
			apierror.WithCode("rate_limited", "too many requests, try again shortly"))
		return
	}
	c.Next()
}

// purge drops expired windows so IPs that never return do not accumulate.
func (l *rateLimiter) purge() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		purged := 0

		l.mu.Lock()
		for ip, entry := range l.entries {
			if now.After(entry.windowEnd) {
				delete(l.entries, ip)
				purged++
			}
		}
		l.mu.Unlock()

		if purged > 0 {
			log.Debug().Int("entries_purged", purged).Msg("rate limiter purged")
		}
	}
}
