package cache

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidResultType indicates a cached value did not match the type the
// caller asked for. It usually means two endpoints share a cache key.
var ErrInvalidResultType = errors.New("cached result has unexpected type")

// KeySerializer builds a cache key from an endpoint name + the call's
// arguments. It is responsible for producing stable keys across calls so that
// identical queries share one cache entry.
type KeySerializer interface {
	SerializeKey(endpoint string, args ...any) string
}

// FetchFn is the function signature CacheService expects when fetching from
// the backend.
type FetchFn[T any] func(ctx context.Context) (T, error)

// CacheService exposes the read-through caching operations the query layer
// needs. Entry lifecycle (TTL, eviction, missing-record handling) is owned by
// the backing store, not by callers.
type CacheService interface {
	// GetOrFetch returns the cached value for key, or runs fetch and
	// caches its result.
	GetOrFetch(ctx context.Context, key string, fetch func(ctx context.Context) (any, error)) (any, error)
	// Delete removes a single entry.
	Delete(ctx context.Context, key string) error
	// InvalidateKeys removes multiple entries in one call.
	InvalidateKeys(ctx context.Context, keys []string) error
	// ScanKeys lists the keys currently resident in the cache.
	ScanKeys() []string
}

// GetOrFetch is the type-safe wrapper over CacheService used by the endpoint
// layer.
func GetOrFetch[T any](ctx context.Context, service CacheService, key string, fetch FetchFn[T]) (T, error) {
	var zero T
	result, err := service.GetOrFetch(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		return zero, err
	}
	if result == nil {
		return zero, nil
	}
	value, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("%w: key %q holds %T", ErrInvalidResultType, key, result)
	}
	return value, nil
}
