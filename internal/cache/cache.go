// Package cache provides a small key-value caching capability used by the
// services as an optimization layer. Entries are advisory: every consumer
// must stay correct when the cache is disabled or empty.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned when a key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Cache is the capability injected into services: get/set/delete with TTL.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Disabled is a no-op cache; every read misses. Used in tests and when no
// Redis instance is configured.
type Disabled struct{}

func (Disabled) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, ErrMiss
}

func (Disabled) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}

func (Disabled) Delete(ctx context.Context, keys ...string) error {
	return nil
}
