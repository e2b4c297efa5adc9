package data

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/sentinel-energy/uncertainty-cascade/internal/model"
)

// CacheEntry represents a cached ninja response.
type CacheEntry struct {
	Rows      []model.Observation
	ExpiresAt time.Time
}

// ResponseCache provides in-memory caching for renewables.ninja responses.
//
// This cache is for LOCAL DEVELOPMENT ONLY: the ninja API is rate limited
// per token and re-fetching identical site profiles while iterating on a
// model wastes the budget. It is disabled unless ENABLE_NINJA_CACHE=true,
// and always disabled when APP_ENV=production.
type ResponseCache struct {
	mu    sync.RWMutex
	store map[string]*CacheEntry
	ttl   time.Duration
}

var globalCache *ResponseCache
var cacheOnce sync.Once

// GetCache returns the global cache instance if caching is enabled, nil
// otherwise.
func GetCache() *ResponseCache {
	if os.Getenv("ENABLE_NINJA_CACHE") != "true" {
		return nil
	}
	if os.Getenv("APP_ENV") == "production" {
		return nil
	}
	cacheOnce.Do(func() {
		globalCache = &ResponseCache{
			store: map[string]*CacheEntry{},
			ttl:   6 * time.Hour,
		}
	})
	return globalCache
}

// GenerateCacheKey derives a stable key from the request parameters.
func GenerateCacheKey(params FetchParams) string {
	raw := fmt.Sprintf("%s|%.4f|%.4f|%s|%s",
		params.Dataset,
		params.Latitude,
		params.Longitude,
		params.From.Format("2006-01-02"),
		params.To.Format("2006-01-02"),
	)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Get returns a cached row set if present and not expired.
func (c *ResponseCache) Get(key string) ([]model.Observation, bool) {
	c.mu.RLock()
	entry, ok := c.store[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.ExpiresAt) {
		c.mu.Lock()
		delete(c.store, key)
		c.mu.Unlock()
		return nil, false
	}
	return entry.Rows, true
}

// Put stores a row set with the cache TTL.
func (c *ResponseCache) Put(key string, rows []model.Observation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = &CacheEntry{
		Rows:      rows,
		ExpiresAt: time.Now().Add(c.ttl),
	}
}
