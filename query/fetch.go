package query

import (
	"context"
	"time"
)

// FetchFn loads the value for a key from the source of truth.
type FetchFn[T any] func(ctx context.Context) (T, error)

// Result is the outcome of a Fetch call.
//
// Data is the zero value until the first successful load for the key; after
// that it always carries the last good value, even when the call itself
// failed. IsLoading is true only for the very first load of a key, so
// revalidation of an already-populated entry never regresses rendered data.
// IsFetching reports whether this call hit the network at all.
type Result[T any] struct {
	Data       T
	IsLoading  bool
	IsFetching bool
	IsError    bool
	Err        error
	UpdatedAt  time.Time

	// Refetch forces a reload for the same key, ignoring freshness.
	Refetch func(ctx context.Context) Result[T]
}

type fetchConfig struct {
	enabled bool
	force   bool
}

// FetchOption configures a single Fetch call.
type FetchOption func(*fetchConfig)

// WithEnabled defers the fetch when false: the loader is not invoked and the
// current cache state is returned as-is. Used when a key parameter (e.g. a
// selected member id) is not available yet.
func WithEnabled(enabled bool) FetchOption {
	return func(cfg *fetchConfig) {
		cfg.enabled = enabled
	}
}

func withForce() FetchOption {
	return func(cfg *fetchConfig) {
		cfg.force = true
	}
}

// Fetch resolves the value for key through the cache.
//
// A fresh hit returns without invoking fn. A stale or missing entry invokes
// fn, sharing a single in-flight load between concurrent callers of the same
// key. Loader failures are recorded on the entry but never purge previously
// cached data.
func Fetch[T any](ctx context.Context, c *Client, k Key, fn FetchFn[T], opts ...FetchOption) Result[T] {
	cfg := fetchConfig{enabled: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	res := fetchOnce(ctx, c, k, fn, cfg)
	res.Refetch = func(ctx context.Context) Result[T] {
		forced := cfg
		forced.force = true
		r := fetchOnce(ctx, c, k, fn, forced)
		r.Refetch = res.Refetch
		return r
	}
	return res
}

func fetchOnce[T any](ctx context.Context, c *Client, k Key, fn FetchFn[T], cfg fetchConfig) Result[T] {
	keyStr := c.keyFor(k)
	e := c.entryFor(keyStr)

	e.mu.Lock()
	cur, hadData := c.store.Get(keyStr)

	if !cfg.enabled {
		res := currentState[T](e, cur, hadData)
		e.mu.Unlock()
		return res
	}

	if hadData && !e.stale && !cfg.force {
		updatedAt := e.updatedAt
		e.mu.Unlock()
		return hitResult[T](cur, updatedAt)
	}

	if l := e.inflight; l != nil {
		first := !hadData && !e.fetched
		e.mu.Unlock()
		return awaitLoad[T](ctx, e, l, cur, hadData, first)
	}

	first := !hadData && !e.fetched
	startGen := e.gen
	loadCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	l := &load{done: make(chan struct{}), cancel: cancel}
	e.inflight = l
	e.status = StatusLoading
	e.mu.Unlock()

	value, err := fn(loadCtx)
	cancel()

	e.mu.Lock()
	detached := l.detached
	if !detached {
		if e.inflight == l {
			e.inflight = nil
		}
		if err != nil {
			e.status = StatusError
			e.err = err
		} else {
			c.store.Set(keyStr, value)
			e.status = StatusSuccess
			e.err = nil
			// An invalidation that landed while this load was in flight
			// refers to data newer than what the load fetched; it must
			// survive, so the next read still revalidates.
			if e.gen == startGen {
				e.stale = false
			}
			e.fetched = true
			e.updatedAt = time.Now()
		}
	}
	updatedAt := e.updatedAt
	e.mu.Unlock()

	if detached {
		l.err = ErrLoadCanceled
	} else {
		l.value = value
		l.err = err
	}
	close(l.done)

	if detached {
		res := errorResult[T](cur, hadData, ErrLoadCanceled, updatedAt)
		res.IsFetching = true
		return res
	}
	if err != nil {
		res := errorResult[T](cur, hadData, err, updatedAt)
		res.IsLoading = first
		res.IsFetching = true
		return res
	}

	return Result[T]{
		Data:       value,
		IsLoading:  first,
		IsFetching: true,
		UpdatedAt:  updatedAt,
	}
}

// awaitLoad joins an in-flight load started by another caller.
func awaitLoad[T any](ctx context.Context, e *entry, l *load, prior any, hadPrior bool, first bool) Result[T] {
	select {
	case <-l.done:
	case <-ctx.Done():
		res := errorResult[T](prior, hadPrior, ctx.Err(), time.Time{})
		res.IsLoading = first
		return res
	}

	e.mu.Lock()
	updatedAt := e.updatedAt
	e.mu.Unlock()

	if l.err != nil {
		res := errorResult[T](prior, hadPrior, l.err, updatedAt)
		res.IsLoading = first
		res.IsFetching = true
		return res
	}

	data, terr := assertData[T](l.value, true)
	if terr != nil {
		res := errorResult[T](nil, false, terr, updatedAt)
		res.IsFetching = true
		return res
	}
	return Result[T]{Data: data, IsLoading: first, IsFetching: true, UpdatedAt: updatedAt}
}

func hitResult[T any](value any, updatedAt time.Time) Result[T] {
	data, err := assertData[T](value, true)
	if err != nil {
		return errorResult[T](nil, false, err, updatedAt)
	}
	return Result[T]{Data: data, UpdatedAt: updatedAt}
}

func errorResult[T any](prior any, hadPrior bool, err error, updatedAt time.Time) Result[T] {
	data, terr := assertData[T](prior, hadPrior)
	if terr != nil {
		var zero T
		data = zero
	}
	return Result[T]{Data: data, IsError: true, Err: err, UpdatedAt: updatedAt}
}

func currentState[T any](e *entry, value any, hadData bool) Result[T] {
	res := Result[T]{UpdatedAt: e.updatedAt}
	if hadData {
		data, err := assertData[T](value, true)
		if err != nil {
			return Result[T]{IsError: true, Err: err, UpdatedAt: e.updatedAt}
		}
		res.Data = data
	}
	if e.status == StatusError {
		res.IsError = true
		res.Err = e.err
	}
	if e.status == StatusLoading && !hadData && !e.fetched {
		res.IsLoading = true
	}
	return res
}

// assertData converts a cached any back to the caller's type without
// panicking on mismatches.
func assertData[T any](v any, ok bool) (T, error) {
	var zero T
	if !ok || v == nil {
		return zero, nil
	}
	t, good := v.(T)
	if !good {
		return zero, ErrInvalidResultType
	}
	return t, nil
}

// GetData returns the cached value for key, typed. The second return is
// false when nothing is cached or the cached value has a different type.
func GetData[T any](c *Client, k Key) (T, bool) {
	v, ok := c.Snapshot(k)
	if !ok {
		var zero T
		return zero, false
	}
	t, good := v.(T)
	if !good {
		var zero T
		return zero, false
	}
	return t, true
}

// TypedPatch adapts a typed patch function to the Client.Patch signature.
// When the cached value has an unexpected type the patch is skipped.
func TypedPatch[T any](fn func(current T, ok bool) (T, bool)) func(any, bool) (any, bool) {
	return func(cur any, ok bool) (any, bool) {
		var t T
		if ok {
			v, good := cur.(T)
			if !good {
				return cur, false
			}
			t = v
		}
		next, write := fn(t, ok)
		if !write {
			return cur, false
		}
		return next, true
	}
}
