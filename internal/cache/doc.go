// Package cache provides a small generic LRU used to keep derived data
// keyed by frame geometry.
//
//	maps := cache.New[geometryKey, *Map](2)
//	m := maps.GetOrCreate(key, func() *Map { return build(key) })
//
// Entries past the limit are evicted oldest-first. An eviction callback
// lets the owner observe invalidation.
//
// Cache is not safe for concurrent use; it belongs to one owner.
package cache
