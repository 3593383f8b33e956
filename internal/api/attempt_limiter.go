package api

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// attemptLimiter counts failures per key in a sliding window.
type attemptLimiter struct {
	mu       sync.Mutex
	limit    int
	window   time.Duration
	failures map[string][]time.Time
}

func newAttemptLimiter(limit int, window time.Duration) *attemptLimiter {
	return &attemptLimiter{
		limit:    limit,
		window:   window,
		failures: make(map[string][]time.Time),
	}
}

func (limiter *attemptLimiter) blocked(key string, now time.Time) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	return len(limiter.activeLocked(key, now)) >= limiter.limit
}

// retryAfter is how long until the oldest counted failure leaves the window.
func (limiter *attemptLimiter) retryAfter(key string, now time.Time) time.Duration {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	active := limiter.activeLocked(key, now)
	if len(active) < limiter.limit {
		return 0
	}
	return active[0].Add(limiter.window).Sub(now)
}

func (limiter *attemptLimiter) addFailure(key string, now time.Time) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	limiter.failures[key] = append(limiter.activeLocked(key, now), now)
}

func (limiter *attemptLimiter) reset(key string) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	delete(limiter.failures, key)
}

func (limiter *attemptLimiter) activeLocked(key string, now time.Time) []time.Time {
	values := limiter.failures[key]
	threshold := now.Add(-limiter.window)

	active := values[:0]
	for _, value := range values {
		if value.After(threshold) {
			active = append(active, value)
		}
	}
	if len(active) == 0 {
		delete(limiter.failures, key)
		return nil
	}
	limiter.failures[key] = active
	return active
}

func requestLimiterKey(c *fiber.Ctx) string {
	key := strings.TrimSpace(c.IP())
	if key == "" {
		return "unknown"
	}
	return key
}
