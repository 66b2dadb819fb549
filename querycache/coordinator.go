package querycache

import (
	"context"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/rs/zerolog"

	"github.com/cementops/go-admin-client/cache"
)

// Coordinator is the sole writer of the tag-to-entry index. Queries register
// the tags their cached result carries; mutations invalidate by tag, and the
// coordinator drops every registered entry the tags reach, nothing more.
type Coordinator struct {
	cache  cache.CacheService
	logger zerolog.Logger

	// keyTags maps a cache key to the tags its entry carries; tagKeys is
	// the reverse index from a tag's string form to the keys carrying it.
	keyTags *xsync.MapOf[string, []Tag]
	tagKeys *xsync.MapOf[string, *xsync.MapOf[string, struct{}]]

	listeners []func(keys []string)
}

// CoordinatorOption customises coordinator construction.
type CoordinatorOption func(*Coordinator)

// WithLogger attaches a structured logger. The default discards everything.
func WithLogger(logger zerolog.Logger) CoordinatorOption {
	return func(c *Coordinator) { c.logger = logger }
}

// WithInvalidationListener registers a callback invoked with the cache keys
// dropped by each invalidation. Hosts use it to trigger refetches for
// queries that are still on screen.
func WithInvalidationListener(fn func(keys []string)) CoordinatorOption {
	return func(c *Coordinator) { c.listeners = append(c.listeners, fn) }
}

// NewCoordinator creates a coordinator over the given cache service.
func NewCoordinator(service cache.CacheService, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		cache:   service,
		logger:  zerolog.Nop(),
		keyTags: xsync.NewMapOf[string, []Tag](),
		tagKeys: xsync.NewMapOf[string, *xsync.MapOf[string, struct{}]](),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register records the tags a successful query result carries. Re-registering
// a key (a refetch after invalidation) replaces its previous tag set, since
// the new result may contain different items.
func (c *Coordinator) Register(key string, tags []Tag) {
	if previous, ok := c.keyTags.Load(key); ok {
		c.removeFromIndex(key, previous)
	}

	c.keyTags.Store(key, append([]Tag(nil), tags...))
	for _, tag := range tags {
		keys, _ := c.tagKeys.LoadOrStore(tag.String(), xsync.NewMapOf[string, struct{}]())
		keys.Store(key, struct{}{})
	}
}

// TagsFor returns the tags registered for a cache key, primarily for
// diagnostics and tests.
func (c *Coordinator) TagsFor(key string) ([]Tag, bool) {
	tags, ok := c.keyTags.Load(key)
	if !ok {
		return nil, false
	}
	return append([]Tag(nil), tags...), true
}

// Invalidate drops every registered cache entry carrying any of the given
// tags. It is called only after a mutation resolves successfully, so a failed
// mutation never leaves the index partially invalidated.
func (c *Coordinator) Invalidate(ctx context.Context, tags ...Tag) error {
	stale := make(map[string]struct{})
	for _, tag := range tags {
		keys, ok := c.tagKeys.Load(tag.String())
		if !ok {
			continue
		}
		keys.Range(func(key string, _ struct{}) bool {
			stale[key] = struct{}{}
			return true
		})
	}
	if len(stale) == 0 {
		return nil
	}

	dropped := make([]string, 0, len(stale))
	for key := range stale {
		if registered, ok := c.keyTags.LoadAndDelete(key); ok {
			c.removeFromIndex(key, registered)
		}
		dropped = append(dropped, key)
	}

	if err := c.cache.InvalidateKeys(ctx, dropped); err != nil {
		return err
	}

	c.logger.Debug().
		Int("tags", len(tags)).
		Int("entries", len(dropped)).
		Msg("cache entries invalidated")
	for _, listener := range c.listeners {
		listener(dropped)
	}
	return nil
}

// InvalidateLists drops the LIST tag of every entity type. This is the
// logout path: the whole client-side cache is considered stale once the
// session ends. Ordinary mutations never invalidate this broadly.
func (c *Coordinator) InvalidateLists(ctx context.Context) error {
	tags := make([]Tag, 0, len(AllEntityTypes))
	for _, entity := range AllEntityTypes {
		tags = append(tags, ListTag(entity))
	}
	return c.Invalidate(ctx, tags...)
}

func (c *Coordinator) removeFromIndex(key string, tags []Tag) {
	for _, tag := range tags {
		if keys, ok := c.tagKeys.Load(tag.String()); ok {
			keys.Delete(key)
		}
	}
}
