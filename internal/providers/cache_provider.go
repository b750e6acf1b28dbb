package providers

import (
	"context"
	"errors"
	"scopewatch/internal/structures"
	"sync"
	"time"
	"unsafe"

	"github.com/coocood/freecache"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
)

const (
	CacheBackendFreecache = "freecache"
	CacheBackendLRU       = "lru"
	CacheBackendRedis     = "redis"

	// DefaultCacheSizeMB keeps freecache's per-entry limit (size/1024) above a
	// full 50-scope page.
	DefaultCacheSizeMB = 64
)

type CacheProviderInterface interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration)
}

// NewCacheProvider picks the configured backend. The returned cleanup releases
// backend connections and is safe to call for every backend.
func NewCacheProvider(conf *structures.Config, logger Logger) (CacheProviderInterface, func()) {
	noCleanup := func() {}
	if !conf.Cache.Enabled {
		logger.Infof(TypeApp, "Cache disabled")
		return &noopCache{}, noCleanup
	}

	switch conf.Cache.Backend {
	case CacheBackendRedis:
		c, err := newRedisCache(conf.Cache.Redis, logger)
		if err != nil {
			logger.Warnf(TypeCache, "Redis cache at %s unavailable, falling back to in-process cache: %s", conf.Cache.Redis.Addr, err)
			break
		}
		logger.Infof(TypeApp, "Cache initialized: redis at %s", conf.Cache.Redis.Addr)
		return c, c.Close
	case CacheBackendLRU:
		entries := orDefault(conf.Cache.Entries, 1024)
		logger.Infof(TypeApp, "Cache initialized: lru, %d entries per ttl class", entries)
		return newLRUCache(entries), noCleanup
	}

	if conf.Cache.Size <= 0 {
		logger.Infof(TypeApp, "Cache disabled")
		return &noopCache{}, noCleanup
	}
	logger.Infof(TypeApp, "Cache initialized: freecache %dMB", conf.Cache.Size)
	return newFreeCache(conf.Cache.Size, logger), noCleanup
}

// unsafeStringToBytes converts string to []byte without allocation.
// freecache only reads the key and copies it internally.
func unsafeStringToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

func ttlSeconds(ttl time.Duration) int {
	return max(int(ttl/time.Second), 1)
}

type CacheProvider struct {
	cache  *freecache.Cache
	logger Logger
}

func newFreeCache(sizeMB int, logger Logger) *CacheProvider {
	return &CacheProvider{cache: freecache.NewCache(sizeMB * 1024 * 1024), logger: logger}
}

func (c *CacheProvider) Get(key string) ([]byte, bool) {
	val, err := c.cache.Get(unsafeStringToBytes(key))
	if err != nil {
		return nil, false
	}
	return val, true
}

func (c *CacheProvider) Set(key string, value []byte, ttl time.Duration) {
	if err := c.cache.Set(unsafeStringToBytes(key), value, ttlSeconds(ttl)); err != nil {
		c.logger.Warnf(TypeCache, "freecache set %s (%d bytes): %s", key, len(value), err)
	}
}

// lruCache keeps one expirable LRU per TTL, since expirable fixes the TTL at
// construction. A key lives in at most one class.
type lruCache struct {
	mu      sync.Mutex
	entries int
	classes map[time.Duration]*expirable.LRU[string, []byte]
}

func newLRUCache(entries int) *lruCache {
	return &lruCache{
		entries: entries,
		classes: make(map[time.Duration]*expirable.LRU[string, []byte]),
	}
}

func (c *lruCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, class := range c.classes {
		if val, ok := class.Get(key); ok {
			return val, true
		}
	}
	return nil, false
}

func (c *lruCache) Set(key string, value []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	class, ok := c.classes[ttl]
	if !ok {
		class = expirable.NewLRU[string, []byte](c.entries, nil, ttl)
		c.classes[ttl] = class
	}
	for d, other := range c.classes {
		if d != ttl {
			other.Remove(key)
		}
	}
	class.Add(key, value)
}

type redisCache struct {
	client  *redis.Client
	logger  Logger
	prefix  string
	timeout time.Duration
}

func newRedisCache(conf structures.RedisConfig, logger Logger) (*redisCache, error) {
	client := redis.NewClient(&redis.Options{Addr: conf.Addr, Password: conf.Password, DB: conf.DB})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	prefix := conf.Prefix
	if prefix == "" {
		prefix = "scopewatch:response:"
	}
	timeout := conf.Timeout
	if timeout <= 0 {
		timeout = 250 * time.Millisecond
	}
	return &redisCache{client: client, logger: logger, prefix: prefix, timeout: timeout}, nil
}

func (c *redisCache) Get(key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warnf(TypeCache, "redis get %s: %s", key, err)
		}
		return nil, false
	}
	return val, true
}

func (c *redisCache) Set(key string, value []byte, ttl time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		c.logger.Warnf(TypeCache, "redis set %s: %s", key, err)
	}
}

func (c *redisCache) Close() {
	_ = c.client.Close()
}

type noopCache struct{}

func (n *noopCache) Get(_ string) ([]byte, bool)          { return nil, false }
func (n *noopCache) Set(_ string, _ []byte, _ time.Duration) {}
