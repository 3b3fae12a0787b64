package places

import (
	"sync"
	"time"

	"github.com/plazahub/plazadir/internal/models"
)

// Cache is an in-memory TTL store of place details keyed by place ID.
// Entries are not persisted and not shared across restarts. Concurrent
// misses for the same key may both fetch; the value is idempotent upstream
// data, so the duplicate request is harmless.
type Cache struct {
	ttl   time.Duration
	clock func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	details  *models.PlaceDetails
	storedAt time.Time
}

// NewCache creates a cache with the given TTL. clock may be nil, in which
// case time.Now is used; tests inject a fake clock.
func NewCache(ttl time.Duration, clock func() time.Time) *Cache {
	if clock == nil {
		clock = time.Now
	}
	return &Cache{
		ttl:     ttl,
		clock:   clock,
		entries: make(map[string]cacheEntry),
	}
}

// Get returns the cached details for placeID, or false when absent or
// expired. Expired entries are removed on access.
func (c *Cache) Get(placeID string) (*models.PlaceDetails, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[placeID]
	if !ok {
		return nil, false
	}
	if c.clock().Sub(e.storedAt) >= c.ttl {
		delete(c.entries, placeID)
		return nil, false
	}
	return e.details, true
}

// Set stores details for placeID, resetting its TTL.
func (c *Cache) Set(placeID string, details *models.PlaceDetails) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[placeID] = cacheEntry{details: details, storedAt: c.clock()}
}

// Len returns the number of entries currently stored, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
