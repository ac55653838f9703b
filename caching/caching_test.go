package caching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache(t *testing.T) {
	c := NewCache(time.Minute)

	c.Set("admin", "NeNoOD")
	v, ok := c.Get("admin")
	assert.True(t, ok)
	assert.Equal(t, "NeNoOD", v)

	c.Delete("admin")
	_, ok = c.Get("admin")
	assert.False(t, ok)
}

func TestCacheExpires(t *testing.T) {
	c := NewCache(10 * time.Millisecond)
	c.Set("admin", 1)
	time.Sleep(30 * time.Millisecond)
	_, ok := c.Get("admin")
	assert.False(t, ok)
}

func TestNilCache(t *testing.T) {
	var c *Cache
	c.Set("admin", 1)
	_, ok := c.Get("admin")
	assert.False(t, ok)
	c.Delete("admin")
}

func TestCacheIncrement(t *testing.T) {
	c := NewCache(time.Minute)

	assert.Equal(t, 1, c.Increment("login:127.0.0.1", time.Minute))
	assert.Equal(t, 2, c.Increment("login:127.0.0.1", time.Minute))
	assert.Equal(t, 1, c.Increment("login:10.0.0.1", time.Minute))

	c.Set("name", "NeNoOD")
	assert.Equal(t, 1, c.Increment("name", time.Minute))
}

func TestNilCacheIncrement(t *testing.T) {
	var c *Cache
	assert.Zero(t, c.Increment("a", time.Minute))
}
