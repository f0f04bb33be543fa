package feed

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type cacheEntry struct {
	body  []byte
	built time.Time
}

// CachedFetcher caches successful payloads per URL for a TTL.
// Concurrent misses for the same URL share one upstream request.
type CachedFetcher struct {
	next    Fetcher
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]cacheEntry
	sf      singleflight.Group
	now     func() time.Time
}

// NewCachedFetcher wraps next. A zero TTL disables caching.
func NewCachedFetcher(next Fetcher, ttl time.Duration) *CachedFetcher {
	return &CachedFetcher{
		next:    next,
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

func (c *CachedFetcher) lookup(url string) ([]byte, bool) {
	c.mu.RLock()
	entry, ok := c.entries[url]
	c.mu.RUnlock()
	if !ok || c.now().Sub(entry.built) > c.ttl {
		return nil, false
	}
	return entry.body, true
}

func (c *CachedFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if c.ttl <= 0 {
		return c.next.Fetch(ctx, url)
	}

	if body, ok := c.lookup(url); ok {
		return body, nil
	}

	result, err, _ := c.sf.Do(url, func() (interface{}, error) {
		if body, ok := c.lookup(url); ok {
			return body, nil
		}

		body, err := c.next.Fetch(ctx, url)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[url] = cacheEntry{body: body, built: c.now()}
		c.mu.Unlock()
		return body, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

// Invalidate drops every cached payload.
func (c *CachedFetcher) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}
