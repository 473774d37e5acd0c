package catalog

import (
	"sync"
	"time"
)

type cacheEntry struct {
	products  []Product
	fetchedAt time.Time
}

// listCache keeps recent product listings keyed by their query so rapid
// browsing does not hammer the upstream. Entries go stale after the TTL and
// the whole cache is dropped when a checkout succeeds. Overlapping fills for
// the same key are last-write-wins.
type listCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

func newListCache(ttl time.Duration) *listCache {
	return &listCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *listCache) get(key string) ([]Product, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || c.now().Sub(entry.fetchedAt) > c.ttl {
		return nil, false
	}
	return entry.products, true
}

func (c *listCache) put(key string, products []Product) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{products: products, fetchedAt: c.now()}
}

func (c *listCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}
