package cache

import (
	"container/list"
	"sync"
	"time"
)

const DefaultCapacity = 1000

// Stats is a point-in-time snapshot of cache counters. Hit, miss and
// request counters grow monotonically and reset only on Clear.
type Stats struct {
	Size          int     `json:"size"`
	Capacity      int     `json:"capacity"`
	Hits          uint64  `json:"hit_count"`
	Misses        uint64  `json:"miss_count"`
	TotalRequests uint64  `json:"total_requests"`
	HitRate       float64 `json:"hit_rate_percent"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

type lruEntry[K comparable, V any] struct {
	key   K
	value V
}

// LRU is a fixed-capacity key/value store with least-recently-used
// eviction. All operations serialize on one coarse mutex; cache work is
// cheap next to the network calls it avoids, so per-key locking buys
// nothing here. The lock is never held across I/O.
type LRU[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // front is most recently used
	items    map[K]*list.Element

	hits      uint64
	misses    uint64
	requests  uint64
	createdAt time.Time
}

func NewLRU[K comparable, V any](capacity int) *LRU[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &LRU[K, V]{
		capacity:  capacity,
		order:     list.New(),
		items:     make(map[K]*list.Element, capacity),
		createdAt: time.Now(),
	}
}

// Get returns the value for key and promotes it to most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.requests++
	el, ok := c.items[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}

	c.order.MoveToFront(el)
	c.hits++
	return el.Value.(*lruEntry[K, V]).value, true
}

// Set stores the value, bumping recency for existing keys and evicting
// the least-recently-used entry when a new key would exceed capacity.
func (c *LRU[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		el.Value.(*lruEntry[K, V]).value = value
		c.order.MoveToFront(el)
		return
	}

	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*lruEntry[K, V]).key)
		}
	}

	c.items[key] = c.order.PushFront(&lruEntry[K, V]{key: key, value: value})
}

// Contains is a pure membership test: no recency bump, no counter change.
func (c *LRU[K, V]) Contains(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	return ok
}

func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Clear drops all entries and resets the statistics counters.
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order.Init()
	c.items = make(map[K]*list.Element, c.capacity)
	c.hits = 0
	c.misses = 0
	c.requests = 0
}

func (c *LRU[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := c.requests
	if total == 0 {
		total = 1
	}
	return Stats{
		Size:          c.order.Len(),
		Capacity:      c.capacity,
		Hits:          c.hits,
		Misses:        c.misses,
		TotalRequests: c.requests,
		HitRate:       float64(c.hits) / float64(total) * 100,
		UptimeSeconds: time.Since(c.createdAt).Seconds(),
	}
}
