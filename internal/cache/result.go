// Package cache memoizes pipeline results for the MCP server.
package cache

import (
	"crypto/sha256"
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ResultCache is a thread-safe LRU cache of results keyed by request digest.
type ResultCache[V any] struct {
	cache *lru.Cache[string, V]
}

// New creates a cache holding at most maxItems results.
func New[V any](maxItems int) (*ResultCache[V], error) {
	c, err := lru.New[string, V](maxItems)
	if err != nil {
		return nil, err
	}
	return &ResultCache[V]{cache: c}, nil
}

// Get returns the cached result for key.
func (c *ResultCache[V]) Get(key string) (V, bool) {
	return c.cache.Get(key)
}

// Put adds or replaces the result for key.
func (c *ResultCache[V]) Put(key string, v V) {
	c.cache.Add(key, v)
}

// Len returns the current number of items in the cache.
func (c *ResultCache[V]) Len() int {
	return c.cache.Len()
}

// Key digests parts into a cache key. Parts are length-prefixed so that
// ("ab", "c") and ("a", "bc") differ.
func Key(parts ...string) string {
	h := sha256.New()
	var n [8]byte
	for _, p := range parts {
		l := uint64(len(p))
		for i := range n {
			n[i] = byte(l >> (8 * i))
		}
		h.Write(n[:])
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}
