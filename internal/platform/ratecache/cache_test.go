package ratecache_test

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tipstack/marketplace_backend/internal/platform/ratecache"
)

func TestCache_GetWithinTTL(t *testing.T) {
	c := ratecache.New(time.Hour)
	fetchedAt := time.Now()
	c.Put("EUR", "USD", decimal.NewFromFloat(1.08), fetchedAt)

	entry, ok := c.Get("EUR", "USD", fetchedAt.Add(30*time.Minute))
	require.True(t, ok)
	assert.True(t, entry.Rate.Equal(decimal.NewFromFloat(1.08)))
	assert.Equal(t, fetchedAt, entry.FetchedAt)
}

func TestCache_ExpiresAfterTTL(t *testing.T) {
	c := ratecache.New(time.Hour)
	fetchedAt := time.Now()
	c.Put("EUR", "USD", decimal.NewFromFloat(1.08), fetchedAt)

	_, ok := c.Get("EUR", "USD", fetchedAt.Add(time.Hour))
	assert.False(t, ok, "entry exactly at TTL boundary should be stale")

	_, ok = c.Get("EUR", "USD", fetchedAt.Add(2*time.Hour))
	assert.False(t, ok)
}

func TestCache_PairsAreIndependent(t *testing.T) {
	c := ratecache.New(time.Hour)
	now := time.Now()
	c.Put("EUR", "USD", decimal.NewFromFloat(1.08), now)
	c.Put("USD", "EUR", decimal.NewFromFloat(0.93), now)

	entry, ok := c.Get("USD", "EUR", now)
	require.True(t, ok)
	assert.True(t, entry.Rate.Equal(decimal.NewFromFloat(0.93)))

	c.Evict("EUR", "USD")
	_, ok = c.Get("EUR", "USD", now)
	assert.False(t, ok)
	_, ok = c.Get("USD", "EUR", now)
	assert.True(t, ok, "evicting one pair must not touch the other")
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := ratecache.New(time.Hour)
	now := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.Put("EUR", "USD", decimal.NewFromFloat(1.08), now)
		}()
		go func() {
			defer wg.Done()
			c.Get("EUR", "USD", now)
		}()
	}
	wg.Wait()

	entry, ok := c.Get("EUR", "USD", now)
	require.True(t, ok)
	assert.True(t, entry.Rate.Equal(decimal.NewFromFloat(1.08)))
}
