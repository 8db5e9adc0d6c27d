package cache

import (
	"context"
	"sync"

	"github.com/damon-houk/exchange-rate-overview/internal/domain/entity"
)

// MemoryRateCache is a thread-safe in-process rate cache. Entries never expire.
type MemoryRateCache struct {
	cache map[string]float64
	mutex sync.RWMutex
}

// NewMemoryRateCache creates an empty in-memory rate cache
func NewMemoryRateCache() *MemoryRateCache {
	return &MemoryRateCache{
		cache: make(map[string]float64),
	}
}

// Get retrieves a rate from the cache if available
func (c *MemoryRateCache) Get(_ context.Context, key entity.RateKey) (float64, bool, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	rate, ok := c.cache[key.String()]
	return rate, ok, nil
}

// Put stores a rate in the cache
func (c *MemoryRateCache) Put(_ context.Context, key entity.RateKey, rate float64) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.cache[key.String()] = rate
	return nil
}

// Size returns the number of items in the cache
func (c *MemoryRateCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.cache)
}
