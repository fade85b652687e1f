// Package cache provides the key serialization and value-store contracts that
// back the query layer.
//
// # Overview
//
// Two contracts live here:
//
//   - KeySerializer: builds a stable cache key from a resource name plus every
//     parameter the loader depends on
//   - Store: the shared value store holding query payloads, with prefix-based
//     deletion for resource-wide invalidation
//
// The default Store implementation (constructed via NewStore) is backed by
// sturdyc and applies the retention policy configured through Config:
// capacity, shard count, TTL and eviction percentage.
//
// # Key Serialization Strategy
//
// Keys are structural: the resource segment is normalized to snake_case and
// every parameter is encoded deterministically, so two call sites that spell
// the same resource differently ("walletOverview" vs "WalletOverview") still
// share one cache slot. A parameter that influences the loader but is left
// out of the key is a staleness bug; the serializer exists so call sites have
// no excuse to build keys by hand.
//
//	serializer := cache.NewStructuralKeySerializer()
//	key := serializer.SerializeKey("members", "Pending")
//	// "members::Pending"
package cache
