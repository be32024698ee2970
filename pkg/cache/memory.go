package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// MemoryCache is an in-process cache with per-entry TTL and LRU eviction.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry
	maxSize int
}

type memoryEntry struct {
	value     string
	expiresAt time.Time

	// lastAccess is touched by concurrent Gets holding only the read lock,
	// so it is stored as unix nanos and updated atomically
	lastAccess atomic.Int64
}

// NewMemoryCache creates a new in-memory cache holding at most maxSize entries.
func NewMemoryCache(maxSize int) *MemoryCache {
	if maxSize <= 0 {
		maxSize = 1000
	}
	return &MemoryCache{
		entries: make(map[string]*memoryEntry),
		maxSize: maxSize,
	}
}

// Get implements Cache.
func (c *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[key]
	if !exists {
		return "", false
	}

	// Expired entries are left for Cleanup to remove
	if time.Now().After(entry.expiresAt) {
		return "", false
	}

	entry.lastAccess.Store(time.Now().UnixNano())
	return entry.value, true
}

// Set implements Cache.
func (c *MemoryCache) Set(_ context.Context, key, value string, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxSize {
		c.evictLRU()
	}

	entry := &memoryEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	entry.lastAccess.Store(time.Now().UnixNano())
	c.entries[key] = entry
}

// evictLRU removes the least recently used entry.
func (c *MemoryCache) evictLRU() {
	var oldestKey string
	var oldestNanos int64

	for key, entry := range c.entries {
		if nanos := entry.lastAccess.Load(); oldestKey == "" || nanos < oldestNanos {
			oldestKey = key
			oldestNanos = nanos
		}
	}

	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

// Cleanup removes expired entries.
func (c *MemoryCache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}

// StartCleanup starts a background goroutine that periodically removes
// expired entries. It stops when ctx is cancelled.
func (c *MemoryCache) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Cleanup()
			}
		}
	}()
}

var _ Cache = (*MemoryCache)(nil)
