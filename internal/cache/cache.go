// Package cache stores lookup results. Values are JSON-encoded so both
// backends hand back independent copies.
package cache

import (
	"context"
	"fmt"

	"github.com/jwalitptl/clinic-directory/internal/config"
)

type Cache interface {
	// Get decodes the cached value into dest and reports whether it was found.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	// Name labels the backend in metrics.
	Name() string
	Close() error
}

// New builds the backend selected by cfg, or returns nil when caching is off.
func New(ctx context.Context, cfg config.CacheConfig) (Cache, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	switch cfg.Backend {
	case config.CacheMemory:
		return NewMemory(cfg.TTL), nil
	case config.CacheRedis:
		return NewRedis(ctx, cfg.RedisURL, cfg.TTL)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
