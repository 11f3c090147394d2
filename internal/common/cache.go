package common

import (
	"time"

	"github.com/patrickmn/go-cache"
)

type Cache struct {
	*cache.Cache
}

func NewCache(expirationTime, cleanupTime time.Duration) *Cache {
	return &Cache{cache.New(expirationTime, cleanupTime)}
}

// NewPersistentCache returns a cache whose entries never expire and that runs no janitor.
func NewPersistentCache() *Cache {
	return NewCache(cache.NoExpiration, 0)
}

func (c *Cache) Set(key string, value interface{}, expiration ...time.Duration) {
	if len(expiration) > 0 {
		c.Cache.Set(key, value, expiration[0])
		return
	}
	c.Cache.Set(key, value, cache.DefaultExpiration)
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.Cache.Get(key)
}

// Values returns every live entry. Order is unspecified.
func (c *Cache) Values() []interface{} {
	items := c.Cache.Items()
	values := make([]interface{}, 0, len(items))
	for _, item := range items {
		values = append(values, item.Object)
	}
	return values
}

func (c *Cache) Flush() {
	c.Cache.Flush()
}

func CacheKeyBlog(blogID string) string {
	return "blog:" + blogID
}
