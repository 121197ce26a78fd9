package cache

import (
	"time"

	"github.com/ppiankov/trustlens/internal/model"
)

// LayeredCache reads through memory into disk, promoting disk hits.
// The disk layer is optional: with no directory configured, the cache
// is memory only.
type LayeredCache struct {
	memory Cache
	disk   Cache
}

// NewLayeredCache builds the cache stack from the configuration.
// Returns nil when caching is disabled, which callers treat as
// cache-off.
func NewLayeredCache(cfg model.CacheConfig) *LayeredCache {
	if !cfg.Enabled {
		return nil
	}
	c := &LayeredCache{memory: NewMemoryCache(cfg.TTL)}
	if cfg.Dir != "" {
		c.disk = NewDiskCache(cfg.Dir, cfg.TTL)
	}
	return c
}

func (c *LayeredCache) Get(key string) ([]byte, bool) {
	if val, found := c.memory.Get(key); found {
		return val, true
	}
	if c.disk != nil {
		if val, found := c.disk.Get(key); found {
			_ = c.memory.Set(key, val, 0)
			return val, true
		}
	}
	return nil, false
}

func (c *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	if err := c.memory.Set(key, value, ttl); err != nil {
		return err
	}
	if c.disk != nil {
		return c.disk.Set(key, value, ttl)
	}
	return nil
}

func (c *LayeredCache) Delete(key string) error {
	_ = c.memory.Delete(key)
	if c.disk != nil {
		_ = c.disk.Delete(key)
	}
	return nil
}

func (c *LayeredCache) Clear() error {
	_ = c.memory.Clear()
	if c.disk != nil {
		return c.disk.Clear()
	}
	return nil
}
