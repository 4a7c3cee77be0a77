package topology

import (
	"context"
	"sync"

	"github.com/couchcryptid/zonal-anomaly-viz/internal/observability"
)

// CachedProvider wraps a Provider with an in-memory LRU cache keyed by the
// resource URL. The basemap rarely changes, so one successful fetch serves
// the whole process lifetime; the LRU bound only matters when the topology
// URL is reconfigured across reloads.
type CachedProvider struct {
	inner   Provider
	key     string
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedProvider creates a cache decorator around a boundaries provider.
func NewCachedProvider(inner Provider, key string, maxEntries int, metrics *observability.Metrics) *CachedProvider {
	return &CachedProvider{
		inner:   inner,
		key:     key,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedProvider) Boundaries(ctx context.Context) (World, error) {
	if world, ok := c.cache.get(c.key); ok {
		c.metrics.TopologyCache.WithLabelValues("hit").Inc()
		return world, nil
	}
	c.metrics.TopologyCache.WithLabelValues("miss").Inc()

	world, err := c.inner.Boundaries(ctx)
	if err != nil {
		return world, err
	}
	// Only cache non-empty worlds so a transient empty response can be retried.
	if len(world.Rings) > 0 {
		c.cache.put(c.key, world)
	}
	return world, nil
}

// lruCache is a simple thread-safe LRU cache of decoded worlds.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value World
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (World, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return World{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value World) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
