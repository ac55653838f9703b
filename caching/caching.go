// Package caching keeps short-lived copies of values read on every request.
package caching

import (
	"time"

	"github.com/patrickmn/go-cache"
)

const DefaultTTL = 30 * time.Second

// Cache is an in-memory TTL cache. A nil *Cache is valid and caches nothing.
type Cache struct {
	memoryCache *cache.Cache
}

func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{memoryCache: cache.New(ttl, 2*ttl)}
}

func (s *Cache) Get(key string) (any, bool) {
	if s == nil {
		return nil, false
	}
	return s.memoryCache.Get(key)
}

func (s *Cache) Set(key string, value any) {
	if s == nil {
		return
	}
	s.memoryCache.SetDefault(key, value)
}

// Increment adds one to the counter at key and returns the new value. A
// missing counter starts at 1 and expires after ttl.
func (s *Cache) Increment(key string, ttl time.Duration) int {
	if s == nil {
		return 0
	}
	if err := s.memoryCache.Add(key, 1, ttl); err == nil {
		return 1
	}
	n, err := s.memoryCache.IncrementInt(key, 1)
	if err != nil {
		s.memoryCache.Set(key, 1, ttl)
		return 1
	}
	return n
}

func (s *Cache) Delete(key string) {
	if s == nil {
		return
	}
	s.memoryCache.Delete(key)
}
