package api

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// DefaultCacheTTL bounds how stale a cached API response may be.
const DefaultCacheTTL = 5 * time.Minute

// ResponseCache stores GET response bodies keyed by full request URL
// (including encoded query parameters). Entries expire after a fixed TTL,
// so callers must treat cached data as up to TTL seconds stale.
type ResponseCache interface {
	Get(key string) ([]byte, bool)
	Set(key string, body []byte)
}

// TTLCache is the default in-process ResponseCache.
type TTLCache struct {
	c *gocache.Cache
}

// NewTTLCache creates a TTLCache with the given expiry. A non-positive ttl
// falls back to DefaultCacheTTL.
func NewTTLCache(ttl time.Duration) *TTLCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &TTLCache{c: gocache.New(ttl, 2*ttl)}
}

func (t *TTLCache) Get(key string) ([]byte, bool) {
	v, ok := t.c.Get(key)
	if !ok {
		return nil, false
	}
	body, ok := v.([]byte)
	return body, ok
}

func (t *TTLCache) Set(key string, body []byte) {
	t.c.Set(key, body, gocache.DefaultExpiration)
}
