package cache

// Cache is an LRU cache holding at most limit entries.
type Cache[K comparable, V any] struct {
	entries map[K]*entry[V]
	limit   int
	tick    int64 // monotonic access counter
	onEvict func(K, V)
}

// entry holds a cached value with its last access time.
type entry[V any] struct {
	value V
	atime int64
}

// New creates a cache holding at most limit entries.
// A limit below 1 is treated as 1.
func New[K comparable, V any](limit int) *Cache[K, V] {
	if limit < 1 {
		limit = 1
	}
	return &Cache[K, V]{
		entries: make(map[K]*entry[V]),
		limit:   limit,
	}
}

// OnEvict registers fn to be called for every entry removed by eviction,
// Remove or Purge.
func (c *Cache[K, V]) OnEvict(fn func(K, V)) {
	c.onEvict = fn
}

// Get returns the value for key and marks it most recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.tick++
	e.atime = c.tick
	return e.value, true
}

// Set stores value under key, evicting the least recently used entries
// while the cache is over its limit.
func (c *Cache[K, V]) Set(key K, value V) {
	c.tick++
	c.entries[key] = &entry[V]{value: value, atime: c.tick}
	for len(c.entries) > c.limit {
		c.evictOldest()
	}
}

// GetOrCreate returns the cached value for key, calling create on a miss.
// The second result reports whether create was called.
func (c *Cache[K, V]) GetOrCreate(key K, create func() V) (V, bool) {
	if v, ok := c.Get(key); ok {
		return v, false
	}
	v := create()
	c.Set(key, v)
	return v, true
}

// Remove drops key. It reports whether the key was present.
func (c *Cache[K, V]) Remove(key K) bool {
	e, ok := c.entries[key]
	if !ok {
		return false
	}
	delete(c.entries, key)
	c.evicted(key, e.value)
	return true
}

// Purge drops every entry.
func (c *Cache[K, V]) Purge() {
	for k, e := range c.entries {
		delete(c.entries, k)
		c.evicted(k, e.value)
	}
	c.tick = 0
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int {
	return len(c.entries)
}

// Limit returns the maximum number of entries.
func (c *Cache[K, V]) Limit() int {
	return c.limit
}

func (c *Cache[K, V]) evictOldest() {
	var (
		oldest K
		atime  int64 = -1
	)
	for k, e := range c.entries {
		if atime < 0 || e.atime < atime {
			oldest, atime = k, e.atime
		}
	}
	e := c.entries[oldest]
	delete(c.entries, oldest)
	c.evicted(oldest, e.value)
}

func (c *Cache[K, V]) evicted(k K, v V) {
	if c.onEvict != nil {
		c.onEvict(k, v)
	}
}
