package routecache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/aicc6/weather-flick-back-sub000/internal/models"
)

// MemoryCache is a bounded LRU cache with per-entry TTL. It is the default
// estimate cache when no Redis is configured.
type MemoryCache struct {
	mu         sync.Mutex
	entries    map[string]*list.Element
	order      *list.List // front = most recently used
	maxEntries int
	ttl        time.Duration
	now        func() time.Time
}

type memoryEntry struct {
	key       string
	est       models.RouteEstimate
	expiresAt time.Time
}

const (
	defaultMaxEntries = 10000
	defaultTTL        = 10 * time.Minute
)

// NewMemoryCache creates a cache bounded to maxEntries with the given TTL.
// Zero values select the defaults (10000 entries, 10 minutes).
func NewMemoryCache(maxEntries int, ttl time.Duration) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &MemoryCache{
		entries:    make(map[string]*list.Element),
		order:      list.New(),
		maxEntries: maxEntries,
		ttl:        ttl,
		now:        time.Now,
	}
}

// Get returns the cached estimate if present and not expired
func (c *MemoryCache) Get(_ context.Context, key string) (models.RouteEstimate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return models.RouteEstimate{}, false
	}

	entry := el.Value.(*memoryEntry)
	if c.now().After(entry.expiresAt) {
		c.order.Remove(el)
		delete(c.entries, key)
		return models.RouteEstimate{}, false
	}

	c.order.MoveToFront(el)
	return entry.est, true
}

// Set stores the estimate, evicting the least recently used entry when full
func (c *MemoryCache) Set(_ context.Context, key string, est models.RouteEstimate) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		entry := el.Value.(*memoryEntry)
		entry.est = est
		entry.expiresAt = c.now().Add(c.ttl)
		c.order.MoveToFront(el)
		return
	}

	el := c.order.PushFront(&memoryEntry{
		key:       key,
		est:       est,
		expiresAt: c.now().Add(c.ttl),
	})
	c.entries[key] = el

	if c.order.Len() > c.maxEntries {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*memoryEntry).key)
		}
	}
}

// Len reports the number of live entries, expired ones included
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
