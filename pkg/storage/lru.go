package storage

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/adfharrison1/go-sortdex/pkg/indexing"
)

// LRUCache keeps compiled path accessors for the residue filter, so scanning
// a collection compiles each dotted path once rather than once per document.
// It is safe for concurrent use.
type LRUCache struct {
	capacity int
	cache    *lru.Cache[string, indexing.Accessor]
	hits     atomic.Int64
	misses   atomic.Int64
}

func NewLRUCache(capacity int) *LRUCache {
	if capacity < 1 {
		capacity = 1
	}
	cache, _ := lru.New[string, indexing.Accessor](capacity)
	return &LRUCache{capacity: capacity, cache: cache}
}

// compiledPaths serves MatchesFilter
var compiledPaths = NewLRUCache(512)

func (c *LRUCache) Get(key string) (indexing.Accessor, bool) {
	get, ok := c.cache.Get(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return get, ok
}

func (c *LRUCache) Put(key string, accessor indexing.Accessor) {
	c.cache.Add(key, accessor)
}

// Accessor returns the cached accessor for path, compiling it on a miss.
func (c *LRUCache) Accessor(path string) indexing.Accessor {
	if get, ok := c.Get(path); ok {
		return get
	}
	get := indexing.CompilePath(path)
	c.Put(path, get)
	return get
}

func (c *LRUCache) Remove(key string) {
	c.cache.Remove(key)
}

func (c *LRUCache) Capacity() int {
	return c.capacity
}

func (c *LRUCache) Len() int {
	return c.cache.Len()
}

// Stats returns the hit and miss counts.
func (c *LRUCache) Stats() (hits, misses int) {
	return int(c.hits.Load()), int(c.misses.Load())
}
