package api

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cementops/go-admin-client/cache"
	"github.com/cementops/go-admin-client/client"
	"github.com/cementops/go-admin-client/querycache"
)

// Client is the typed endpoint surface over the authenticated pipeline and
// the tag-based query cache. Queries read through the cache and register the
// tags their results carry; mutations dispatch directly and invalidate by
// tag once they resolve.
type Client struct {
	pipe   *client.Pipeline
	cache  cache.CacheService
	keys   cache.KeySerializer
	tags   *querycache.Coordinator
	logger zerolog.Logger
}

// Option customises client construction.
type Option func(*Client)

// WithLogger attaches a structured logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New wires the typed client. It registers a logout hook on the pipeline so
// that every logout, explicit or after a failed refresh, also drops all
// cached lists, since the next session may see different data.
func New(pipe *client.Pipeline, service cache.CacheService, keys cache.KeySerializer, coordinator *querycache.Coordinator, opts ...Option) *Client {
	c := &Client{
		pipe:   pipe,
		cache:  service,
		keys:   keys,
		tags:   coordinator,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	pipe.OnLogout(func() {
		if err := coordinator.InvalidateLists(context.Background()); err != nil {
			c.logger.Warn().Err(err).Msg("failed to drop cached lists on logout")
		}
	})
	return c
}

// Page pairs a decoded collection with its pagination block.
type Page[T any] struct {
	Items      []T
	Pagination *client.Pagination
}

// staticTags adapts a fixed tag set to the provides callback shape, for
// endpoints whose tags are keyed off the request arguments rather than the
// response.
func staticTags[T any](tags ...querycache.Tag) func(T) []querycache.Tag {
	return func(T) []querycache.Tag { return tags }
}

// runQuery executes a cached query: the cache key is built from the endpoint
// name and call arguments, the fetch goes through the pipeline, and the
// result's tags are registered with the coordinator.
func runQuery[T any](ctx context.Context, c *Client, endpoint string, req *client.Request, provides func(T) []querycache.Tag, args ...any) (T, error) {
	key := c.keys.SerializeKey(endpoint, args...)
	value, err := cache.GetOrFetch(ctx, c.cache, key, func(ctx context.Context) (T, error) {
		var out T
		env, err := c.pipe.Do(ctx, req)
		if err != nil {
			return out, err
		}
		if err := env.Decode(&out); err != nil {
			return out, fmt.Errorf("failed to decode %s response: %w", endpoint, err)
		}
		return out, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	if provides != nil {
		c.tags.Register(key, provides(value))
	}
	return value, nil
}

// runListQuery is runPageQuery for plain collection endpoints: it registers
// the LIST tag plus one instance tag per item, so both broad and narrow
// invalidation can reach the entry.
func runListQuery[T any](ctx context.Context, c *Client, endpoint string, req *client.Request, entity querycache.EntityType, idOf func(T) string, args ...any) (Page[T], error) {
	provides := func(page Page[T]) []querycache.Tag {
		ids := make([]string, 0, len(page.Items))
		for _, item := range page.Items {
			ids = append(ids, idOf(item))
		}
		return querycache.ListTags(entity, ids)
	}
	return runPageQuery(ctx, c, endpoint, req, provides, args...)
}

// runPageQuery executes a cached collection query, keeping the pagination
// block alongside the decoded items. Derived collection endpoints pass their
// own provides callback instead of the standard LIST shape.
func runPageQuery[T any](ctx context.Context, c *Client, endpoint string, req *client.Request, provides func(Page[T]) []querycache.Tag, args ...any) (Page[T], error) {
	key := c.keys.SerializeKey(endpoint, args...)
	page, err := cache.GetOrFetch(ctx, c.cache, key, func(ctx context.Context) (Page[T], error) {
		env, err := c.pipe.Do(ctx, req)
		if err != nil {
			return Page[T]{}, err
		}
		var items []T
		if err := env.Decode(&items); err != nil {
			return Page[T]{}, fmt.Errorf("failed to decode %s response: %w", endpoint, err)
		}
		return Page[T]{Items: items, Pagination: env.Pagination}, nil
	})
	if err != nil {
		return Page[T]{}, err
	}
	c.tags.Register(key, provides(page))
	return page, nil
}

// runMutation dispatches a mutation and, only after it resolves
// successfully, invalidates the declared tags. A failed mutation leaves the
// cache untouched.
func runMutation[T any](ctx context.Context, c *Client, endpoint string, req *client.Request, invalidates []querycache.Tag) (T, error) {
	var out T
	env, err := c.pipe.Do(ctx, req)
	if err != nil {
		return out, err
	}
	if err := env.Decode(&out); err != nil {
		return out, fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	if len(invalidates) > 0 {
		if err := c.tags.Invalidate(ctx, invalidates...); err != nil {
			return out, fmt.Errorf("failed to invalidate after %s: %w", endpoint, err)
		}
	}
	return out, nil
}
