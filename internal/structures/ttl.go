package structures

import (
	"fmt"
	"slices"
	"time"
)

// SignedURLEndpoints names the endpoints whose responses embed a signed URL.
var SignedURLEndpoints = []string{"scope_watch", "scope_url"}

// CheckSignedURLTTL fails when a response embedding a signed URL could outlive
// the URL in the cache.
func CheckSignedURLTTL(cacheTTL, urlExpiry time.Duration) error {
	if urlExpiry <= 0 {
		return fmt.Errorf("signed url expiry must be positive, got %s", urlExpiry)
	}
	if cacheTTL > urlExpiry {
		return fmt.Errorf("cache ttl %s exceeds signed url expiry %s", cacheTTL, urlExpiry)
	}
	return nil
}

// SignedTTL caps a cache TTL at the signed URL expiry.
func SignedTTL(cacheTTL, urlExpiry time.Duration) time.Duration {
	return min(cacheTTL, urlExpiry)
}

// Endpoints lists every cached logical endpoint.
var Endpoints = []string{"home", "monitor_detail", "monitor_scopes", "scope_watch", "scope_url"}

// ConfiguredTTL is the TTL as written in the config.
func (c *Config) ConfiguredTTL(endpoint string) time.Duration {
	switch endpoint {
	case "home":
		return c.Cache.TTL.Home
	case "scope_watch", "scope_url":
		return c.Cache.TTL.Scope
	default:
		return c.Cache.TTL.Monitor
	}
}

// EndpointTTL is the TTL actually applied, capped for signed URL endpoints.
func (c *Config) EndpointTTL(endpoint string) time.Duration {
	ttl := c.ConfiguredTTL(endpoint)
	if EmbedsSignedURL(endpoint) {
		return SignedTTL(ttl, c.ObjectStore.URLExpiry)
	}
	return ttl
}

func EmbedsSignedURL(endpoint string) bool {
	return slices.Contains(SignedURLEndpoints, endpoint)
}
