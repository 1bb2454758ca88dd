package filter

import "sync"

// kernelLRU is a small thread-safe cache with least-recently-used
// eviction. Kernels are pure functions of their parameters, so an evicted
// entry is simply rebuilt on the next request.
type kernelLRU[K comparable, V any] struct {
	mu        sync.Mutex
	entries   map[K]*lruEntry[V]
	softLimit int
	tick      int64 // monotonic access counter
}

type lruEntry[V any] struct {
	value V
	atime int64
}

func newKernelLRU[K comparable, V any](softLimit int) *kernelLRU[K, V] {
	return &kernelLRU[K, V]{
		entries:   make(map[K]*lruEntry[V]),
		softLimit: softLimit,
	}
}

// getOrCreate returns the cached value for key, calling create on a miss.
// create runs under the lock so concurrent misses build the value once.
func (c *kernelLRU[K, V]) getOrCreate(key K, create func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tick++
	if e, ok := c.entries[key]; ok {
		e.atime = c.tick
		return e.value
	}

	v := create()
	c.entries[key] = &lruEntry[V]{value: v, atime: c.tick}
	if len(c.entries) > c.softLimit {
		c.evictOldest()
	}
	return v
}

// len returns the number of cached entries.
func (c *kernelLRU[K, V]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictOldest trims the cache to three quarters of its soft limit,
// dropping the least recently used entries. Caller must hold c.mu.
func (c *kernelLRU[K, V]) evictOldest() {
	target := max(c.softLimit*3/4, 1)
	for len(c.entries) > target {
		var (
			oldestKey K
			oldest    int64 = -1
		)
		for k, e := range c.entries {
			if oldest < 0 || e.atime < oldest {
				oldestKey, oldest = k, e.atime
			}
		}
		delete(c.entries, oldestKey)
	}
}
