// Package cache stores query→response pairs so repeated questions get an
// instant answer without hitting the agent again. Keys are normalized for
// fuzzy matching; entries expire by TTL and evict LRU-first.
package cache

import (
	"container/list"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultMaxEntries bounds the cache size before LRU eviction.
	DefaultMaxEntries = 500

	// DefaultTTL keeps fee/admission answers reasonably fresh.
	DefaultTTL = 15 * time.Minute
)

var (
	punctRe      = regexp.MustCompile(`[^\w\s]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

type entry struct {
	key      string
	response string
	storedAt time.Time
}

// Stats is the monitoring snapshot served by /api/cache/stats.
type Stats struct {
	Size       int    `json:"size"`
	MaxEntries int    `json:"max_size"`
	TTLSeconds int    `json:"ttl_seconds"`
	Hits       int    `json:"hits"`
	Misses     int    `json:"misses"`
	HitRate    string `json:"hit_rate"`
}

// Cache is a thread-safe LRU response cache with TTL expiry.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]*list.Element
	order      *list.List // front = most recently used
	maxEntries int
	ttl        time.Duration
	hits       int
	misses     int

	now func() time.Time
}

// New creates a cache. Non-positive arguments fall back to the defaults.
func New(maxEntries int, ttl time.Duration) *Cache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		entries:    make(map[string]*list.Element),
		order:      list.New(),
		maxEntries: maxEntries,
		ttl:        ttl,
		now:        time.Now,
	}
}

// normalize lowercases, strips punctuation and collapses whitespace so
// "What programs does MUL offer?" matches "what programs does mul offer".
func normalize(query string) string {
	q := strings.ToLower(strings.TrimSpace(query))
	q = punctRe.ReplaceAllString(q, "")
	return whitespaceRe.ReplaceAllString(q, " ")
}

// Get looks up a cached response. The empty string plus false means a
// miss or an expired entry.
func (c *Cache) Get(query string) (string, bool) {
	key := normalize(query)

	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		c.misses++
		return "", false
	}

	e := el.Value.(*entry)
	if c.now().Sub(e.storedAt) > c.ttl {
		c.order.Remove(el)
		delete(c.entries, key)
		c.misses++
		return "", false
	}

	c.order.MoveToFront(el)
	c.hits++
	return e.response, true
}

// Put stores a query→response pair, evicting the least recently used
// entries when over capacity.
func (c *Cache) Put(query, response string) {
	key := normalize(query)

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		e := el.Value.(*entry)
		e.response = response
		e.storedAt = c.now()
		c.order.MoveToFront(el)
		return
	}

	c.entries[key] = c.order.PushFront(&entry{key: key, response: response, storedAt: c.now()})

	for c.order.Len() > c.maxEntries {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*entry).key)
	}
}

// Stats returns a monitoring snapshot.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	rate := "0%"
	if total := c.hits + c.misses; total > 0 {
		rate = fmt.Sprintf("%.1f%%", float64(c.hits)/float64(total)*100)
	}
	return Stats{
		Size:       c.order.Len(),
		MaxEntries: c.maxEntries,
		TTLSeconds: int(c.ttl.Seconds()),
		Hits:       c.hits,
		Misses:     c.misses,
		HitRate:    rate,
	}
}

// Clear drops every entry and resets the counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*list.Element)
	c.order.Init()
	c.hits = 0
	c.misses = 0
}
