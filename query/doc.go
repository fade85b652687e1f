// Package query implements the client-side fetch-cache and mutation layer
// the portal services are built on.
//
// # Overview
//
// Reads go through Fetch: a keyed, deduplicated, stale-while-revalidate
// lookup backed by a shared cache.Store. Writes go through Mutation: an
// executor that tracks pending state, invalidates the cache keys the caller
// declares, and optionally applies an optimistic patch with rollback.
//
// # Queries
//
//	res := query.Fetch(ctx, client, query.NewKey("members", "Pending"), loadMembers)
//	if res.IsError {
//		// res.Data still holds the last good value, if any
//	}
//
// Concurrent fetches for one key share a single in-flight load. A fresh
// cache hit never invokes the loader. An invalidated (stale) entry keeps its
// data visible and reloads on the next read; IsLoading is only reported while
// the very first load for a key runs, so revalidation never regresses an
// already-rendered result.
//
// # Mutations
//
//	approve := query.NewMutation(client, "approve_withdrawal", doApprove,
//		query.WithInvalidateResources("withdrawals"),
//	)
//	approve.Mutate(ctx, input, query.Callbacks[Receipt]{OnError: notify})
//
// # Optimistic updates
//
// A mutation configured WithOptimistic cancels any in-flight load for the
// source key, snapshots it, applies the patch, and then settles: on failure
// the snapshot is restored, on success the declared destination keys are
// invalidated, and in either case the source key is marked stale so the next
// read reconciles with the server.
//
// Patch functions must return a new value rather than mutate the current one
// in place; the rollback snapshot is the value itself, not a deep copy.
//
// # Coherency model
//
// There is no ordering between independent mutations: the last network
// response to land wins the cache write. The one ordering guarantee is that
// an optimistic patch is never clobbered by a load that was already in
// flight when the patch was applied — those loads are cancelled first.
package query
