package di

import (
	"github.com/rs/zerolog"

	"github.com/cementops/go-admin-client/api"
	"github.com/cementops/go-admin-client/cache"
	"github.com/cementops/go-admin-client/client"
	"github.com/cementops/go-admin-client/querycache"
	"github.com/cementops/go-admin-client/session"
)

// Config aggregates the configuration for every component the container
// wires: the HTTP pipeline, the cache, and session persistence.
type Config struct {
	Client client.Config
	Cache  cache.Config

	// SessionFile is the path session state is persisted to. Empty keeps
	// the session in memory only.
	SessionFile string
}

// DefaultConfig returns a Config for the given backend origin with every
// section populated with defaults. Sessions stay in memory unless
// SessionFile is set afterwards.
func DefaultConfig(baseURL string) Config {
	return Config{
		Client: client.DefaultConfig(baseURL),
		Cache:  cache.DefaultConfig(),
	}
}

// Container wires the full client stack: session store, authenticated
// pipeline, cache service, tag coordinator, and the typed API surface. It
// manages singleton instances of each.
type Container struct {
	config        Config
	store         session.Store
	pipeline      *client.Pipeline
	cacheService  cache.CacheService
	keySerializer cache.KeySerializer
	coordinator   *querycache.Coordinator
	api           *api.Client
}

// Option customises container construction.
type Option func(*options)

type options struct {
	store        session.Store
	logger       zerolog.Logger
	pipelineOpts []client.Option
}

// WithSessionStore overrides the session store the container would build
// from Config.SessionFile.
func WithSessionStore(store session.Store) Option {
	return func(o *options) { o.store = store }
}

// WithLogger attaches a structured logger to every component.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithPipelineOptions forwards extra options to the pipeline constructor,
// such as a custom transport or navigator.
func WithPipelineOptions(opts ...client.Option) Option {
	return func(o *options) { o.pipelineOpts = append(o.pipelineOpts, opts...) }
}

// NewContainer builds the full stack from the provided configuration.
func NewContainer(cfg Config, opts ...Option) (*Container, error) {
	o := &options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(o)
	}

	store := o.store
	if store == nil {
		if cfg.SessionFile != "" {
			store = session.NewFileStore(cfg.SessionFile)
		} else {
			store = session.NewMemoryStore()
		}
	}

	pipelineOpts := append([]client.Option{client.WithLogger(o.logger)}, o.pipelineOpts...)
	pipeline, err := client.New(cfg.Client, store, pipelineOpts...)
	if err != nil {
		return nil, err
	}

	cacheService, err := cache.NewCacheService(cfg.Cache)
	if err != nil {
		return nil, err
	}

	keySerializer := cache.NewDefaultKeySerializer()
	coordinator := querycache.NewCoordinator(cacheService, querycache.WithLogger(o.logger))
	apiClient := api.New(pipeline, cacheService, keySerializer, coordinator, api.WithLogger(o.logger))

	return &Container{
		config:        cfg,
		store:         store,
		pipeline:      pipeline,
		cacheService:  cacheService,
		keySerializer: keySerializer,
		coordinator:   coordinator,
		api:           apiClient,
	}, nil
}

// NewContainerWithDefaults builds the stack for a backend origin using
// default configuration throughout.
func NewContainerWithDefaults(baseURL string) (*Container, error) {
	return NewContainer(DefaultConfig(baseURL))
}

// API returns the typed endpoint surface.
func (c *Container) API() *api.Client {
	return c.api
}

// Pipeline returns the authenticated request pipeline, for callers that
// need raw dispatch outside the typed surface.
func (c *Container) Pipeline() *client.Pipeline {
	return c.pipeline
}

// SessionStore returns the store holding the current login record.
func (c *Container) SessionStore() session.Store {
	return c.store
}

// CacheService returns the singleton cache service instance.
func (c *Container) CacheService() cache.CacheService {
	return c.cacheService
}

// KeySerializer returns the singleton key serializer instance.
func (c *Container) KeySerializer() cache.KeySerializer {
	return c.keySerializer
}

// Coordinator returns the tag coordinator, for callers that need manual
// invalidation beyond what mutations perform.
func (c *Container) Coordinator() *querycache.Coordinator {
	return c.coordinator
}

// Config returns a copy of the configuration used by this container.
func (c *Container) Config() Config {
	return c.config
}
