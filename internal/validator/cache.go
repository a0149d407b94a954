package validator

import (
	"sync"

	"salaryengine/internal/domain"
)

// DefaultCacheSize bounds the number of cached field results.
const DefaultCacheSize = 1024

// cacheEntry is a cached field outcome. A nil err means the field passed.
type cacheEntry struct {
	err *domain.ValidationError
}

// CacheStats is a point-in-time view of cache usage.
type CacheStats struct {
	Size   int `json:"size"`
	Hits   int `json:"hits"`
	Misses int `json:"misses"`
}

// Cache provides thread-safe caching of field validation outcomes keyed by
// Checker.Key. When full it is cleared rather than evicting entry by entry.
type Cache struct {
	entries map[string]cacheEntry
	maxSize int
	hits    int
	misses  int
	mu      sync.RWMutex
}

// NewCache creates a cache holding at most maxSize entries.
func NewCache(maxSize int) *Cache {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	return &Cache{
		entries: make(map[string]cacheEntry),
		maxSize: maxSize,
	}
}

// Get returns the cached outcome for key.
func (c *Cache) Get(key string) (*domain.ValidationError, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[key]
	if !exists {
		c.misses++
		return nil, false
	}
	c.hits++
	return copyError(entry.err), true
}

// Set stores the outcome for key.
func (c *Cache) Set(key string, err *domain.ValidationError) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		c.entries = make(map[string]cacheEntry)
	}
	c.entries[key] = cacheEntry{err: copyError(err)}
}

// Clear removes all entries from the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// Stats returns the current size and hit counters.
func (c *Cache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return CacheStats{Size: len(c.entries), Hits: c.hits, Misses: c.misses}
}

func copyError(err *domain.ValidationError) *domain.ValidationError {
	if err == nil {
		return nil
	}
	cp := *err
	return &cp
}
