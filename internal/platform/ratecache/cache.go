package ratecache

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Entry is one cached rate with the instant it was fetched from the provider.
type Entry struct {
	Rate      decimal.Decimal
	FetchedAt time.Time
}

// Cache is a thread-safe in-memory TTL cache for provider-sourced rates, keyed
// by currency pair. It is owned by the resolver that receives it, never shared
// as a module-level singleton, so each test can inject a fresh instance.
// Concurrent writes for the same pair may race; writes are idempotent upserts
// of a freshly fetched rate, so a lost update is benign.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	ttl     time.Duration
}

// New creates a cache whose entries are considered fresh for ttl.
func New(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]Entry),
		ttl:     ttl,
	}
}

func key(baseCurrency, targetCurrency string) string {
	return baseCurrency + "_" + targetCurrency
}

// Get returns the cached entry for a pair if it is still within the TTL window
// relative to now.
func (c *Cache) Get(baseCurrency, targetCurrency string, now time.Time) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key(baseCurrency, targetCurrency)]
	if !ok {
		return Entry{}, false
	}
	if now.Sub(entry.FetchedAt) >= c.ttl {
		return Entry{}, false
	}
	return entry, true
}

// Put stores a freshly fetched rate for a pair.
func (c *Cache) Put(baseCurrency, targetCurrency string, rate decimal.Decimal, fetchedAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key(baseCurrency, targetCurrency)] = Entry{Rate: rate, FetchedAt: fetchedAt}
}

// Evict removes a pair from the cache. Used when an override is set or removed
// so the next resolution goes back through the chain.
func (c *Cache) Evict(baseCurrency, targetCurrency string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key(baseCurrency, targetCurrency))
}

// Len reports the number of cached pairs, fresh or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
