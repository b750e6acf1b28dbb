package services

import (
	"scopewatch/internal/models"
	"scopewatch/internal/providers"
	"time"

	json "github.com/goccy/go-json"
)

type ResponseCacheInterface interface {
	Cached(key string, ttl time.Duration, compute func() (any, error)) ([]byte, error)
}

type ResponseCache struct {
	cache      providers.CacheProviderInterface
	compressor providers.CompressorInterface
	logger     providers.Logger
}

func NewResponseCache(cache providers.CacheProviderInterface, compressor providers.CompressorInterface, logger providers.Logger) ResponseCacheInterface {
	return &ResponseCache{
		cache:      cache,
		compressor: compressor,
		logger:     logger,
	}
}

// CacheKey derives the cache key of a read: the endpoint and request path,
// qualified by the unit filter when one is given.
func CacheKey(endpoint, path string, unit *models.TimeUnit) string {
	key := endpoint + " " + path
	if unit == nil {
		return key
	}
	return key + "|unit=" + unit.String()
}

// Cached returns the JSON body stored under key, or computes, encodes and
// stores it. Errors from compute are never cached. A ttl <= 0 disables storing.
func (rc *ResponseCache) Cached(key string, ttl time.Duration, compute func() (any, error)) ([]byte, error) {
	if stored, ok := rc.cache.Get(key); ok {
		body, err := rc.compressor.Decompress(stored)
		if err == nil {
			return body, nil
		}
		rc.logger.Warnf(providers.TypeCache, "Discarding unreadable cache entry %s: %v", key, err)
	}

	result, err := compute()
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}

	if ttl > 0 {
		packed, err := rc.compressor.Compress(body)
		if err != nil {
			rc.logger.Warnf(providers.TypeCache, "Unable to compress cache entry %s: %v", key, err)
			return body, nil
		}
		rc.cache.Set(key, packed, ttl)
	}

	return body, nil
}
