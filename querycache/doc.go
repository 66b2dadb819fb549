// Package querycache implements tag-based invalidation over the cache
// package, making mutation side-effects visible to cached queries without
// manual refetch calls.
//
// # Overview
//
// Every cached query result carries a set of tags, each a (type, id) pair.
// List results carry the LIST sentinel plus one tag per item; single-entity
// results carry the instance tag keyed off the request argument; computed
// results (nearest-route pricing, report summaries) carry a synthetic id
// built from their parameters.
//
// Mutations declare which tags they invalidate:
//
//   - Create invalidates only the LIST tag: the new item's id is unknowable
//     beforehand, but list queries always carry LIST.
//   - Update, delete, and state transitions invalidate the instance tag plus
//     LIST, along with any dependent derived tags (an inventory adjustment
//     also invalidates the low-stock aggregate and the depot's history).
//   - Logout invalidates every LIST tag across all entity types, because the
//     principal changed; no ordinary mutation gets that blanket reach.
//
// The Coordinator maintains the tag-to-entry index and is its only writer.
// Invalidation runs only after a mutation resolves successfully, so failure
// leaves the cache untouched; there is no partially-invalidated state.
package querycache
