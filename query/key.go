package query

// Key identifies a cache entry: a resource name plus every parameter the
// loader depends on. A parameter used inside the loader but omitted from the
// key makes two different result sets share one slot, which is exactly the
// staleness bug the structural key exists to prevent.
type Key struct {
	Resource string
	Params   []any
}

// NewKey builds a Key from a resource name and loader parameters.
func NewKey(resource string, params ...any) Key {
	return Key{Resource: resource, Params: params}
}
