package cache

import (
	"log/slog"
	"time"
)

// Config holds configuration for cache creation.
type Config struct {
	// RedisURL selects the Redis backend when set, e.g. redis://localhost:6379/0
	RedisURL string

	// Prefix is the key prefix for Redis
	Prefix string

	// DefaultTTL is the default TTL for cache entries
	DefaultTTL time.Duration

	// FallbackToMemory uses the memory cache when Redis cannot be reached.
	FallbackToMemory bool
}

// New creates a cache based on the provided configuration.
// The second return value reports whether the Redis backend is in use.
func New(cfg Config, logger *slog.Logger) (Cacher, bool, error) {
	if cfg.RedisURL == "" {
		return NewMemoryCache(cfg.DefaultTTL), false, nil
	}

	opts := DefaultRedisCacheOptions()
	opts.URL = cfg.RedisURL
	if cfg.Prefix != "" {
		opts.Prefix = cfg.Prefix
	}
	if cfg.DefaultTTL > 0 {
		opts.DefaultTTL = cfg.DefaultTTL
	}

	rc, err := NewRedisCache(opts)
	if err != nil {
		if !cfg.FallbackToMemory {
			return nil, false, err
		}
		logger.Warn("redis unavailable, falling back to memory cache", "error", err)
		return NewMemoryCache(cfg.DefaultTTL), false, nil
	}
	return rc, true, nil
}
