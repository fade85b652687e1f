// Package di assembles the portal client: value store, key serializer,
// query cache, transport, session, and the admin/member/franchise services,
// as singletons sharing one coherent cache.
package di

import (
	"github.com/goliatone/go-portal-client/adminapi"
	"github.com/goliatone/go-portal-client/cache"
	"github.com/goliatone/go-portal-client/franchiseapi"
	"github.com/goliatone/go-portal-client/memberapi"
	"github.com/goliatone/go-portal-client/query"
	"github.com/goliatone/go-portal-client/session"
	"github.com/goliatone/go-portal-client/transport"
)

// Container provides dependency injection for the portal client components.
type Container struct {
	config     Config
	store      cache.Store
	serializer cache.KeySerializer
	queries    *query.Client
	api        *transport.Client
	session    *session.Session
	admin      *adminapi.Service
	member     *memberapi.Service
	franchise  *franchiseapi.Service
}

// NewContainer creates a container from the provided configuration.
func NewContainer(cfg Config) (*Container, error) {
	store, err := cache.NewStore(cfg.Cache)
	if err != nil {
		return nil, err
	}

	serializer := cache.NewStructuralKeySerializer()
	queries := query.New(store, serializer)
	sess := session.New()

	tokenSource := func() string {
		if tok := sess.Token(); tok != "" {
			return tok
		}
		return cfg.APIToken
	}

	opts := []transport.Option{transport.WithTokenSource(tokenSource)}
	if cfg.RequestTimeout > 0 {
		opts = append(opts, transport.WithTimeout(cfg.RequestTimeout))
	}
	api, err := transport.New(cfg.APIBaseURL, opts...)
	if err != nil {
		return nil, err
	}

	return &Container{
		config:     cfg,
		store:      store,
		serializer: serializer,
		queries:    queries,
		api:        api,
		session:    sess,
		admin:      adminapi.New(api, queries),
		member:     memberapi.New(api, queries),
		franchise:  franchiseapi.New(api, queries),
	}, nil
}

// NewContainerWithDefaults creates a container from environment
// configuration. Convenience constructor for typical use.
func NewContainerWithDefaults() (*Container, error) {
	return NewContainer(LoadConfig())
}

// Config returns a copy of the configuration used by this container.
func (c *Container) Config() Config {
	return c.config
}

// Store returns the singleton value store instance.
func (c *Container) Store() cache.Store {
	return c.store
}

// KeySerializer returns the singleton key serializer instance.
func (c *Container) KeySerializer() cache.KeySerializer {
	return c.serializer
}

// Queries returns the shared query cache client.
func (c *Container) Queries() *query.Client {
	return c.queries
}

// Transport returns the shared REST client.
func (c *Container) Transport() *transport.Client {
	return c.api
}

// Session returns the session holder feeding the transport's auth token.
func (c *Container) Session() *session.Session {
	return c.session
}

// Admin returns the administrative service.
func (c *Container) Admin() *adminapi.Service {
	return c.admin
}

// Member returns the member-facing service.
func (c *Container) Member() *memberapi.Service {
	return c.member
}

// Franchise returns the franchise-facing service.
func (c *Container) Franchise() *franchiseapi.Service {
	return c.franchise
}

// Logout clears the session and drops every cached value; nothing
// user-scoped survives into the next login.
func (c *Container) Logout() {
	c.session.Clear()
	c.queries.Clear()
}
