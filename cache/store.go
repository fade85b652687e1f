package cache

// Store is the shared value store backing the query layer. Implementations
// own the retention policy (capacity, TTL, eviction); callers own coherency
// via the invalidation discipline in the query package.
type Store interface {
	// Get returns the value stored under key, if present and not expired.
	Get(key string) (any, bool)

	// Set stores value under key, overwriting any previous value.
	Set(key string, value any)

	// Delete removes the entry for key, if any.
	Delete(key string)

	// ScanKeys returns a snapshot of all live keys.
	ScanKeys() []string

	// DeleteByPrefix removes every entry whose key starts with prefix.
	// Used for resource-wide invalidation (e.g. all "members" variants).
	DeleteByPrefix(prefix string)
}
