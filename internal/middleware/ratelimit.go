// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// maxLimiters bounds the limiter cache; it is reset when exceeded.
const maxLimiters = 10000

// limiterCache is a generic rate limiter cache with double-check locking.
type limiterCache[K comparable] struct {
	limiters map[K]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
}

// newLimiterCache creates a new limiter cache.
func newLimiterCache[K comparable](rps float64, burst int) *limiterCache[K] {
	return &limiterCache[K]{
		limiters: make(map[K]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
	}
}

// get returns the rate limiter for a specific key, creating one if needed.
func (lc *limiterCache[K]) get(key K) *rate.Limiter {
	lc.mu.RLock()
	limiter, exists := lc.limiters[key]
	lc.mu.RUnlock()

	if exists {
		return limiter
	}

	lc.mu.Lock()
	defer lc.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists = lc.limiters[key]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(lc.rate, lc.burst)
	lc.limiters[key] = limiter
	return limiter
}

// clearIfExceeds clears all entries if the cache exceeds maxSize.
// Returns true if the cache was cleared.
func (lc *limiterCache[K]) clearIfExceeds(maxSize int) bool {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	if len(lc.limiters) > maxSize {
		lc.limiters = make(map[K]*rate.Limiter)
		return true
	}
	return false
}

// size returns the number of cached limiters.
func (lc *limiterCache[K]) size() int {
	lc.mu.RLock()
	defer lc.mu.RUnlock()
	return len(lc.limiters)
}

// KeyFunc picks the rate limiting key of a request. An empty key falls back
// to the client IP.
type KeyFunc func(r *http.Request) string

// DispatchRateLimiter limits console commands per browser session.
type DispatchRateLimiter struct {
	cache *limiterCache[string]
	key   KeyFunc
}

// NewDispatchRateLimiter creates a limiter allowing rps commands per second
// with the given burst. key may be nil.
func NewDispatchRateLimiter(rps float64, burst int, key KeyFunc) *DispatchRateLimiter {
	return &DispatchRateLimiter{
		cache: newLimiterCache[string](rps, burst),
		key:   key,
	}
}

// Sweep drops all limiters once the cache grows past its bound. It returns
// the number of limiters removed.
func (rl *DispatchRateLimiter) Sweep() int {
	n := rl.cache.size()
	if rl.cache.clearIfExceeds(maxLimiters) {
		return n
	}
	return 0
}

// Middleware returns the rate limiting middleware (plain text errors).
func (rl *DispatchRateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := ""
			if rl.key != nil {
				key = rl.key(r)
			}
			if key == "" {
				key = "ip:" + clientIP(r)
			}
			if !rl.cache.get(key).Allow() {
				slog.WarnContext(r.Context(), "dispatch rate limit exceeded", "key", key, "path", r.URL.Path)
				http.Error(w, "Too many requests. Please wait a moment and try again.", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP returns the remote host. chi's RealIP middleware has already
// applied X-Real-IP / X-Forwarded-For when it runs first.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
