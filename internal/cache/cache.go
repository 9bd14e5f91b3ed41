package cache

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// DefaultCapacity is the capacity used when a non-positive capacity is
// passed to NewFIFO.
const DefaultCapacity = 4096

// FIFO is a bounded cache that evicts entries strictly in insertion order.
// Lookups never reorder entries: a frequently requested old entry is still
// evicted once Capacity newer distinct entries have been inserted.
//
// FIFO is not safe for concurrent use.
type FIFO[K comparable, V any] struct {
	entries  *linkedhashmap.Map
	capacity int

	hits      uint64
	misses    uint64
	evictions uint64

	onEvict func(K, V)
}

// NewFIFO creates a FIFO cache holding at most capacity entries.
func NewFIFO[K comparable, V any](capacity int) *FIFO[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &FIFO[K, V]{
		entries:  linkedhashmap.New(),
		capacity: capacity,
	}
}

// OnEvict registers fn to be called with every evicted entry.
func (c *FIFO[K, V]) OnEvict(fn func(K, V)) {
	c.onEvict = fn
}

// Get returns the value stored for key. It does not change eviction order.
func (c *FIFO[K, V]) Get(key K) (V, bool) {
	v, ok := c.entries.Get(key)
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	return v.(V), true
}

// Contains reports whether key is cached without touching the statistics.
func (c *FIFO[K, V]) Contains(key K) bool {
	_, ok := c.entries.Get(key)
	return ok
}

// Put inserts key. Re-putting an existing key replaces its value but keeps
// its original position in the eviction queue.
func (c *FIFO[K, V]) Put(key K, value V) {
	if _, ok := c.entries.Get(key); !ok && c.entries.Size() >= c.capacity {
		c.evictOldest()
	}
	c.entries.Put(key, value)
}

// GetOrCreate returns the cached value for key, or calls create, stores its
// result and returns it. When the cache is full the oldest entry is evicted
// before create runs.
func (c *FIFO[K, V]) GetOrCreate(key K, create func() V) V {
	if v, ok := c.Get(key); ok {
		return v
	}
	if c.entries.Size() >= c.capacity {
		c.evictOldest()
	}
	v := create()
	c.entries.Put(key, v)
	return v
}

// Oldest returns the key that would be evicted next.
func (c *FIFO[K, V]) Oldest() (K, bool) {
	it := c.entries.Iterator()
	if !it.First() {
		var zero K
		return zero, false
	}
	return it.Key().(K), true
}

func (c *FIFO[K, V]) evictOldest() {
	it := c.entries.Iterator()
	if !it.First() {
		return
	}
	key, value := it.Key(), it.Value()
	// Removing the head of the ordering list is constant time.
	c.entries.Remove(key)
	c.evictions++
	if c.onEvict != nil {
		c.onEvict(key.(K), value.(V))
	}
}

// Clear removes all entries. Statistics are kept.
func (c *FIFO[K, V]) Clear() {
	c.entries.Clear()
}

// Len returns the number of entries.
func (c *FIFO[K, V]) Len() int {
	return c.entries.Size()
}

// Capacity returns the maximum number of entries.
func (c *FIFO[K, V]) Capacity() int {
	return c.capacity
}

// Stats returns a snapshot of the cache statistics.
func (c *FIFO[K, V]) Stats() Stats {
	s := Stats{
		Len:       c.entries.Size(),
		Capacity:  c.capacity,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Capacity is the maximum number of entries.
	Capacity int
	// Hits is the number of lookups that found an entry.
	Hits uint64
	// Misses is the number of lookups that did not.
	Misses uint64
	// HitRate is Hits / (Hits + Misses), or 0 before the first lookup.
	HitRate float64
	// Evictions is the number of entries dropped to make room.
	Evictions uint64
}
