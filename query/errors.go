package query

import "errors"

// ErrInvalidResultType is returned when a cached value does not match the
// type a Fetch call expects. It indicates two call sites sharing a key with
// different result types.
var ErrInvalidResultType = errors.New("query: cached value has unexpected type")

// ErrLoadCanceled is observed by callers that were waiting on a load which
// was cancelled (CancelQueries, or an optimistic patch on the same key)
// before it completed. The cancelled load's result never enters the cache.
var ErrLoadCanceled = errors.New("query: load canceled")
