// Package cache holds clustering results between passes.
package cache

const (
	DEFAULT_CAPACITY = 50
)

// Key. zoom level + size of the input set. the identity of the campsites is NOT part
// of the key, so a different set with the same length at the same zoom gets the old entry.
// callers that swap datasets must Clear.
type Key struct {
	Zoom  int
	Count int
}

// ResultCache. bounded map with oldest-insertion-first eviction (reads do not refresh an entry).
// not safe for concurrent use, the owner serialises access.
type ResultCache[V any] struct {
	capacity int
	entries  map[Key]V
	order    []Key // insertion order, oldest first
}

func NewResultCache[V any](capacity int) *ResultCache[V] {
	if capacity <= 0 {
		capacity = DEFAULT_CAPACITY
	}
	return &ResultCache[V]{
		capacity: capacity,
		entries:  make(map[Key]V, capacity),
		order:    make([]Key, 0, capacity),
	}
}

func (c *ResultCache[V]) Get(zoom, count int) (V, bool) {
	v, ok := c.entries[Key{Zoom: zoom, Count: count}]
	return v, ok
}

// Set stores v. overwriting a key keeps its original insertion slot.
func (c *ResultCache[V]) Set(zoom, count int, v V) {
	key := Key{Zoom: zoom, Count: count}
	if _, ok := c.entries[key]; ok {
		c.entries[key] = v
		return
	}

	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = v
	c.order = append(c.order, key)
}

func (c *ResultCache[V]) Clear() {
	c.entries = make(map[Key]V, c.capacity)
	c.order = make([]Key, 0, c.capacity)
}

func (c *ResultCache[V]) Len() int {
	return len(c.entries)
}

func (c *ResultCache[V]) Capacity() int {
	return c.capacity
}

// Keys. cached keys, oldest first.
func (c *ResultCache[V]) Keys() []Key {
	keys := make([]Key, len(c.order))
	copy(keys, c.order)
	return keys
}
