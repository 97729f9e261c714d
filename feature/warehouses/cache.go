package warehouses

import (
	"context"
	"sync"
	"time"

	"stock-reconciler/core/reconcile"

	"golang.org/x/sync/singleflight"
)

// loadFunc loads a fresh mapping.
type loadFunc func(ctx context.Context) (reconcile.StoreMapping, error)

// Cache keeps the last loaded mapping for a TTL.
type Cache struct {
	mu    sync.RWMutex
	value reconcile.StoreMapping
	built time.Time
	valid bool
	// gen is bumped by Invalidate; a load started under an older generation
	// does not store its result.
	gen uint64

	ttl  time.Duration
	load loadFunc
	sf   singleflight.Group
	now  func() time.Time
}

// NewCache creates a cache around load. A zero ttl disables caching.
func NewCache(ttl time.Duration, load loadFunc) *Cache {
	return &Cache{ttl: ttl, load: load, now: time.Now}
}

func (c *Cache) fresh() bool {
	return c.valid && c.ttl > 0 && c.now().Sub(c.built) <= c.ttl
}

// Get returns the cached mapping or loads it. Concurrent misses share a
// single load. Callers must not modify the returned map.
func (c *Cache) Get(ctx context.Context) (reconcile.StoreMapping, error) {
	c.mu.RLock()
	if c.fresh() {
		v := c.value
		c.mu.RUnlock()
		return v, nil
	}
	c.mu.RUnlock()

	res, err, _ := c.sf.Do("mapping", func() (interface{}, error) {
		c.mu.RLock()
		if c.fresh() {
			v := c.value
			c.mu.RUnlock()
			return v, nil
		}
		gen := c.gen
		c.mu.RUnlock()

		v, err := c.load(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if c.gen == gen {
			c.value, c.built, c.valid = v, c.now(), true
		}
		c.mu.Unlock()
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return res.(reconcile.StoreMapping), nil
}

// Invalidate drops the cached mapping.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.gen++
	c.valid = false
	c.value = nil
	c.mu.Unlock()
}
