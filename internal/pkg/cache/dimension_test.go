package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLRUDimensionCache(t *testing.T) {
	ctx := context.Background()
	c := NewLRUDimensionCache(2, time.Minute)

	_, ok := c.Get(ctx, "os", "linux")
	assert.False(t, ok)

	c.Set(ctx, "os", "linux", 7)
	c.Set(ctx, "arch", "linux", 9)

	id, ok := c.Get(ctx, "os", "linux")
	assert.True(t, ok)
	assert.Equal(t, uint64(7), id)

	id, ok = c.Get(ctx, "arch", "linux")
	assert.True(t, ok)
	assert.Equal(t, uint64(9), id)

	// 超出容量淘汰最久未使用的条目
	c.Set(ctx, "domain", "example.com", 3)
	assert.Equal(t, 2, c.Len())
	_, ok = c.Get(ctx, "os", "linux")
	assert.False(t, ok)

	c.Invalidate(ctx, "domain", "example.com")
	_, ok = c.Get(ctx, "domain", "example.com")
	assert.False(t, ok)
}

func TestLRUDimensionCacheExpires(t *testing.T) {
	ctx := context.Background()
	c := NewLRUDimensionCache(10, 20*time.Millisecond)
	c.Set(ctx, "os", "linux", 1)

	assert.Eventually(t, func() bool {
		_, ok := c.Get(ctx, "os", "linux")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestNoopDimensionCache(t *testing.T) {
	ctx := context.Background()
	var c DimensionCache = NoopDimensionCache{}
	c.Set(ctx, "os", "linux", 1)
	_, ok := c.Get(ctx, "os", "linux")
	assert.False(t, ok)
}
