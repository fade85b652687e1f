package query

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/goliatone/go-portal-client/cache"
)

// Status describes the lifecycle state of a cache entry or mutation.
type Status string

// Lifecycle states. Entries move idle → loading → {success, error}, and back
// to loading on refetch. Mutations reuse the same set with StatusLoading
// standing in for "pending".
const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// entry carries per-key lifecycle state. The data payload itself lives in the
// shared store under the serialized key; the entry only tracks how it got
// there and whether it is still trustworthy.
type entry struct {
	mu        sync.Mutex
	status    Status
	err       error
	updatedAt time.Time
	stale     bool
	gen       uint64 // bumped on every invalidation; a load only clears stale when no invalidation landed after it began
	fetched   bool   // at least one load for this key has succeeded
	inflight  *load
}

// load is a single in-flight fetch shared by every concurrent requester of
// one key. Result fields are set before done is closed.
type load struct {
	done     chan struct{}
	cancel   context.CancelFunc
	value    any
	err      error
	detached bool // result must not be written back to the cache
}

// Client is the query cache: it owns the entry registry, the shared value
// store, and the key serializer every query and mutation goes through.
//
// Entry metadata outlives the values: the store evicts payloads per its
// retention policy, while the registry keeps one small record per distinct
// key until Drop, DropResource or Clear. The key space is bounded by the
// resources and parameter shapes the services expose, so the registry does
// not grow with traffic, only with distinct keys.
type Client struct {
	store      cache.Store
	serializer cache.KeySerializer
	logger     *slog.Logger
	entries    *xsync.MapOf[string, *entry]
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for background diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a query Client over the provided store and key serializer.
func New(store cache.Store, serializer cache.KeySerializer, opts ...Option) *Client {
	c := &Client{
		store:      store,
		serializer: serializer,
		logger:     slog.Default().With("component", "query"),
		entries:    xsync.NewMapOf[string, *entry](),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) keyFor(k Key) string {
	return c.serializer.SerializeKey(k.Resource, k.Params...)
}

func (c *Client) entryFor(keyStr string) *entry {
	e, _ := c.entries.LoadOrCompute(keyStr, func() *entry {
		return &entry{status: StatusIdle}
	})
	return e
}

// Invalidate marks the entry for key stale. The cached data stays visible;
// the next read triggers a fresh load. Invalidating an already-stale or
// unknown key is a no-op, which is what makes settle-time invalidation
// idempotent.
func (c *Client) Invalidate(k Key) {
	e := c.entryFor(c.keyFor(k))
	e.mu.Lock()
	e.stale = true
	e.gen++
	e.mu.Unlock()
}

// InvalidateResource marks every entry under the resource stale, regardless
// of parameters. Resource names are case-normalized by the serializer, so a
// mutation declaring "WalletOverview" reaches the entries a query registered
// as "walletOverview".
func (c *Client) InvalidateResource(resource string) {
	prefix := c.serializer.SerializeKey(resource)
	c.entries.Range(func(keyStr string, e *entry) bool {
		if keyStr == prefix || strings.HasPrefix(keyStr, prefix+cache.KeySeparator) {
			e.mu.Lock()
			e.stale = true
			e.gen++
			e.mu.Unlock()
		}
		return true
	})
}

// CancelQueries detaches and cancels any in-flight load for key. The load's
// eventual result is discarded rather than written to the cache; waiters
// observe ErrLoadCanceled. Call this before writing to a key outside the
// fetch path, otherwise a late-arriving response can clobber the write.
func (c *Client) CancelQueries(k Key) {
	e := c.entryFor(c.keyFor(k))
	e.mu.Lock()
	if l := e.inflight; l != nil {
		l.detached = true
		l.cancel()
		e.inflight = nil
	}
	e.mu.Unlock()
}

// Snapshot returns the current cached value for key, if any.
func (c *Client) Snapshot(k Key) (any, bool) {
	return c.store.Get(c.keyFor(k))
}

// SetData writes value under key directly, bypassing the loader. The entry
// is considered populated from then on.
func (c *Client) SetData(k Key, value any) {
	keyStr := c.keyFor(k)
	e := c.entryFor(keyStr)
	e.mu.Lock()
	c.store.Set(keyStr, value)
	e.fetched = true
	e.updatedAt = time.Now()
	if e.status == StatusIdle {
		e.status = StatusSuccess
	}
	e.mu.Unlock()
}

// Patch applies fn to the current cached value for key. fn receives the
// value and whether one exists, and returns the replacement plus whether to
// write it. fn must return a new value; mutating the current one in place
// breaks rollback snapshots. Reports whether a write happened.
func (c *Client) Patch(k Key, fn func(current any, ok bool) (any, bool)) bool {
	keyStr := c.keyFor(k)
	e := c.entryFor(keyStr)
	e.mu.Lock()
	defer e.mu.Unlock()

	cur, ok := c.store.Get(keyStr)
	next, write := fn(cur, ok)
	if !write {
		return false
	}
	c.store.Set(keyStr, next)
	e.fetched = true
	e.updatedAt = time.Now()
	if e.status == StatusIdle {
		e.status = StatusSuccess
	}
	return true
}

// Drop removes the cached value for key and resets the entry, as if it had
// never been fetched.
func (c *Client) Drop(k Key) {
	keyStr := c.keyFor(k)
	e := c.entryFor(keyStr)
	e.mu.Lock()
	c.store.Delete(keyStr)
	e.status = StatusIdle
	e.err = nil
	e.stale = false
	e.fetched = false
	e.updatedAt = time.Time{}
	e.mu.Unlock()
}

// DropResource removes every cached value under the resource. Used when a
// whole surface becomes meaningless, e.g. member-scoped data at logout.
func (c *Client) DropResource(resource string) {
	prefix := c.serializer.SerializeKey(resource)
	c.store.DeleteByPrefix(prefix)
	c.entries.Range(func(keyStr string, e *entry) bool {
		if keyStr == prefix || strings.HasPrefix(keyStr, prefix+cache.KeySeparator) {
			e.mu.Lock()
			e.status = StatusIdle
			e.err = nil
			e.stale = false
			e.fetched = false
			e.updatedAt = time.Time{}
			e.mu.Unlock()
		}
		return true
	})
}

// Clear wipes the whole cache: every value and every entry. Session logout
// goes through here.
func (c *Client) Clear() {
	for _, key := range c.store.ScanKeys() {
		c.store.Delete(key)
	}
	c.entries.Clear()
}

// restore puts a pre-patch snapshot back, or removes the value if there was
// nothing cached before the patch.
func (c *Client) restore(k Key, snapshot any, existed bool) {
	if existed {
		c.SetData(k, snapshot)
		return
	}
	c.Drop(k)
}
