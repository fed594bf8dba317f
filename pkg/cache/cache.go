package cache

import (
	"context"
	"time"
)

// Cache defines the interface for caching services. Implementations treat a
// missing key as an empty value, not an error, so callers can fall through
// to recomputation.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
}
