package query

import (
	"context"
	"sync"
	"sync/atomic"
)

// MutateFn performs the write operation a Mutation wraps.
type MutateFn[I, R any] func(ctx context.Context, input I) (R, error)

// Validatable inputs are checked before a mutation does any work. A failing
// input never reaches the network and never touches the cache: no optimistic
// patch, no cancellation, no settle-time invalidation.
type Validatable interface {
	Validate() error
}

// Optimistic configures the optimistic patch applied to a source key before
// the server confirms a mutation.
type Optimistic struct {
	// Source is the key patched before the request is sent.
	Source Key

	// Patch produces the anticipated post-mutation value. It must return a
	// new value; the pre-patch one is kept as the rollback snapshot.
	Patch func(current any, ok bool) (any, bool)

	// OnSuccessInvalidate lists keys refreshed only when the server
	// confirms, e.g. the destination list an item moved to.
	OnSuccessInvalidate []Key
}

type mutationConfig struct {
	invalidateKeys      []Key
	invalidateResources []string
}

// MutationOption configures a Mutation.
type MutationOption func(*mutationConfig)

// WithInvalidateKeys declares cache keys marked stale after a successful
// mutation. The set must cover every key whose data the mutation could have
// changed; under-declaring causes visible staleness.
func WithInvalidateKeys(keys ...Key) MutationOption {
	return func(cfg *mutationConfig) {
		cfg.invalidateKeys = append(cfg.invalidateKeys, keys...)
	}
}

// WithInvalidateResources declares whole resources marked stale after a
// successful mutation, covering every parameter variant of each resource.
func WithInvalidateResources(resources ...string) MutationOption {
	return func(cfg *mutationConfig) {
		cfg.invalidateResources = append(cfg.invalidateResources, resources...)
	}
}

// Callbacks receive the outcome of a fire-and-forget Mutate call. They may
// fire after the initiating caller has moved on, so they must be safe to run
// in a detached context.
type Callbacks[R any] struct {
	OnSuccess func(R)
	OnError   func(error)
	OnSettled func()
}

// Mutation wraps a write operation with pending-state tracking, declarative
// cache invalidation and optional optimistic updates. A single Mutation
// value is safe for concurrent use; IsPending is conservative and reports
// true while any invocation is in flight.
type Mutation[I, R any] struct {
	client     *Client
	name       string
	fn         MutateFn[I, R]
	cfg        mutationConfig
	optimistic func(input I) Optimistic

	pending atomic.Int64

	mu      sync.Mutex
	status  Status
	lastErr error
}

// NewMutation builds a Mutation executor. name identifies the action in logs.
func NewMutation[I, R any](c *Client, name string, fn MutateFn[I, R], opts ...MutationOption) *Mutation[I, R] {
	var cfg mutationConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Mutation[I, R]{
		client: c,
		name:   name,
		fn:     fn,
		cfg:    cfg,
		status: StatusIdle,
	}
}

// WithOptimistic attaches an optimistic patch to the mutation. The builder
// runs once per invocation with that invocation's input, so the patch can
// target the specific record being mutated. See the package documentation
// for the full protocol. Returns m for chaining at construction time; not
// safe to call concurrently with Mutate.
func (m *Mutation[I, R]) WithOptimistic(build func(input I) Optimistic) *Mutation[I, R] {
	m.optimistic = build
	return m
}

// IsPending reports whether any invocation is currently in flight.
func (m *Mutation[I, R]) IsPending() bool {
	return m.pending.Load() > 0
}

// Status returns the state of the most recently settled invocation, or
// StatusLoading while one is pending.
func (m *Mutation[I, R]) Status() Status {
	if m.IsPending() {
		return StatusLoading
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// LastErr returns the error of the most recent failed invocation, if any.
func (m *Mutation[I, R]) LastErr() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// MutateAsync executes the mutation and blocks until it settles.
func (m *Mutation[I, R]) MutateAsync(ctx context.Context, input I) (R, error) {
	m.pending.Add(1)
	defer m.pending.Add(-1)

	// Validation precedes the optimistic preamble: rejecting the input after
	// cancelling loads or patching the source would dirty the cache for a
	// request that was never sent.
	if v, ok := any(input).(Validatable); ok {
		if err := v.Validate(); err != nil {
			m.settle(StatusError, err)
			var zero R
			return zero, err
		}
	}

	var (
		o        *Optimistic
		snapshot any
		existed  bool
	)
	if m.optimistic != nil {
		built := m.optimistic(input)
		o = &built

		// A load already in flight for the source key could land after the
		// patch and clobber it; cancel first, then snapshot, then patch.
		m.client.CancelQueries(o.Source)
		snapshot, existed = m.client.Snapshot(o.Source)
		m.client.Patch(o.Source, o.Patch)

		// The source key reconciles with the server no matter how this
		// invocation ends.
		defer m.client.Invalidate(o.Source)
	}

	result, err := m.fn(ctx, input)
	if err != nil {
		if o != nil {
			m.client.restore(o.Source, snapshot, existed)
		}
		m.settle(StatusError, err)
		var zero R
		return zero, err
	}

	for _, k := range m.cfg.invalidateKeys {
		m.client.Invalidate(k)
	}
	for _, r := range m.cfg.invalidateResources {
		m.client.InvalidateResource(r)
	}
	if o != nil {
		for _, k := range o.OnSuccessInvalidate {
			m.client.Invalidate(k)
		}
	}

	m.settle(StatusSuccess, nil)
	return result, nil
}

// Mutate executes the mutation without blocking the caller. Errors reach the
// OnError callback; when none is provided they are logged so a failure is
// never silently swallowed. Once dispatched the request is not cancellable.
func (m *Mutation[I, R]) Mutate(ctx context.Context, input I, cbs ...Callbacks[R]) {
	var cb Callbacks[R]
	if len(cbs) > 0 {
		cb = cbs[0]
	}

	go func() {
		result, err := m.MutateAsync(context.WithoutCancel(ctx), input)
		if err != nil {
			if cb.OnError != nil {
				cb.OnError(err)
			} else {
				m.client.logger.Error("mutation failed", "mutation", m.name, "error", err)
			}
		} else if cb.OnSuccess != nil {
			cb.OnSuccess(result)
		}
		if cb.OnSettled != nil {
			cb.OnSettled()
		}
	}()
}

func (m *Mutation[I, R]) settle(status Status, err error) {
	m.mu.Lock()
	m.status = status
	m.lastErr = err
	m.mu.Unlock()
}
