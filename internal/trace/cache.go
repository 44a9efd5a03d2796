package trace

import "sync"

// Cache memoizes a generator by instance key. Traces are immutable, so a hit
// returns the same value the generator would.
type Cache[I, P any] struct {
	gen   Generator[I, P]
	key   func(I) string
	limit int

	mu      sync.Mutex
	entries map[string]Trace[P]
	order   []string
}

// NewCache wraps gen. limit bounds the number of retained traces; the oldest
// entry is evicted first. A non-positive limit keeps 16.
func NewCache[I, P any](gen Generator[I, P], key func(I) string, limit int) *Cache[I, P] {
	if limit <= 0 {
		limit = 16
	}
	return &Cache[I, P]{
		gen:     gen,
		key:     key,
		limit:   limit,
		entries: make(map[string]Trace[P]),
	}
}

func (c *Cache[I, P]) Generate(in I) Trace[P] {
	k := c.key(in)

	c.mu.Lock()
	if tr, ok := c.entries[k]; ok {
		c.mu.Unlock()
		return tr
	}
	c.mu.Unlock()

	tr := c.gen(in)

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[k]; !ok {
		c.entries[k] = tr
		c.order = append(c.order, k)
		if len(c.order) > c.limit {
			delete(c.entries, c.order[0])
			c.order = c.order[1:]
		}
	}
	return tr
}

func (c *Cache[I, P]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
