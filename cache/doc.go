// Package cache provides the caching interfaces and key serialization used by
// the query layer.
//
// # Overview
//
// Two interfaces make up the package's surface:
//
//   - CacheService: a read-through cache for query results
//   - KeySerializer: builds stable cache keys from endpoint names and call
//     arguments
//
// Query results are cached per (endpoint, serialized-args) pair, so two
// widgets asking for the same page of products share one entry while
// different filter combinations stay independent.
//
// # Basic Usage
//
//	serializer := cache.NewDefaultKeySerializer()
//	key := serializer.SerializeKey("ListProducts", params)
//
//	result, err := cache.GetOrFetch(ctx, service, key, func(ctx context.Context) (ProductPage, error) {
//		return fetchFromBackend(ctx, params)
//	})
//
// # Key Serialization Strategy
//
// The default serializer handles the argument shapes endpoints actually pass:
// basic types, pointers, slices, maps (sorted for determinism), and structs
// (exported fields as name:value pairs). Anything else falls back to JSON,
// and a JSON failure degrades to type information rather than panicking, so
// key generation never takes a request down with it.
//
// # Invalidation
//
// CacheService only removes entries when told to; deciding which entries a
// mutation makes stale is the querycache package's job. See querycache for
// the tag-based invalidation contract.
package cache
