// Package cache provides the bounded FIFO cache used by the shaper and the
// layouter.
//
// # FIFO[K, V]
//
// An insertion-ordered map capped at a fixed capacity. When a new key is
// inserted into a full cache, the key inserted first is evicted. Lookups
// do not refresh an entry's position, so eviction order is exactly
// insertion order.
//
//	c := cache.NewFIFO[string, int](2)
//	c.Put("a", 1)
//	c.Put("b", 2)
//	c.Get("a")    // does not protect "a"
//	c.Put("c", 3) // evicts "a"
//
// # Thread Safety
//
// FIFO is not safe for concurrent use. Owners serialize access, typically
// behind the single mutex of gtext.Fonts.
package cache
