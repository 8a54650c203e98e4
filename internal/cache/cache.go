// Package cache holds the rendered-page cache used by the global feed. The
// cache is time-boxed and invalidated only by expiry or an explicit Clear:
// content mutations deliberately do not touch it, so a cached page stays
// stale for the full TTL unless an operator clears it.
package cache

import (
	"context"
	"sync"
	"time"
)

// Entry is one cached rendered response.
type Entry struct {
	Body        []byte `json:"body"`
	ContentType string `json:"content_type"`
}

// PageCache stores rendered response bodies keyed by feed identity and page.
type PageCache interface {
	Get(ctx context.Context, key string) (*Entry, bool, error)
	Set(ctx context.Context, key string, entry *Entry, ttl time.Duration) error
	// Clear drops every cached page. This is the only invalidation path
	// besides expiry.
	Clear(ctx context.Context) error
}

type memoryEntry struct {
	entry     Entry
	expiresAt time.Time
}

// MemoryCache is a map-backed PageCache for tests and deployments without
// Redis.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryCache creates an empty MemoryCache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get returns the cached entry for key if it has not expired
func (c *MemoryCache) Get(ctx context.Context, key string) (*Entry, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	me, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if c.now().After(me.expiresAt) {
		delete(c.entries, key)
		return nil, false, nil
	}
	entry := me.entry
	return &entry, true, nil
}

// Set stores entry under key for ttl
func (c *MemoryCache) Set(ctx context.Context, key string, entry *Entry, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{entry: *entry, expiresAt: c.now().Add(ttl)}
	return nil
}

// Clear drops all cached entries
func (c *MemoryCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]memoryEntry)
	return nil
}
