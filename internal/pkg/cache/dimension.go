/**
 * 维度缓存
 * @description: 维度表 (os/arch/domain) 名称到ID的缓存，减少主机入库时的重复查询
 * @func: DimensionCache 接口、进程内过期LRU实现、空实现
 */
package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DimensionCache 维度名称 -> ID 缓存
// kind 区分维度表 (os / arch / domain)，同名不同维度互不影响
type DimensionCache interface {
	Get(ctx context.Context, kind, name string) (uint64, bool)
	Set(ctx context.Context, kind, name string, id uint64)
	Invalidate(ctx context.Context, kind, name string)
}

// LRUDimensionCache 进程内过期LRU缓存
type LRUDimensionCache struct {
	lru *expirable.LRU[string, uint64]
}

// NewLRUDimensionCache 创建LRU维度缓存
// ttl 为 0 时条目不过期
func NewLRUDimensionCache(size int, ttl time.Duration) *LRUDimensionCache {
	return &LRUDimensionCache{
		lru: expirable.NewLRU[string, uint64](size, nil, ttl),
	}
}

func (c *LRUDimensionCache) Get(_ context.Context, kind, name string) (uint64, bool) {
	return c.lru.Get(Key(kind, name))
}

func (c *LRUDimensionCache) Set(_ context.Context, kind, name string, id uint64) {
	c.lru.Add(Key(kind, name), id)
}

func (c *LRUDimensionCache) Invalidate(_ context.Context, kind, name string) {
	c.lru.Remove(Key(kind, name))
}

// Len 当前缓存条目数
func (c *LRUDimensionCache) Len() int {
	return c.lru.Len()
}

// NoopDimensionCache 不缓存 (cache.driver = none)
type NoopDimensionCache struct{}

func (NoopDimensionCache) Get(context.Context, string, string) (uint64, bool) { return 0, false }
func (NoopDimensionCache) Set(context.Context, string, string, uint64)        {}
func (NoopDimensionCache) Invalidate(context.Context, string, string)         {}

// Key 生成缓存键 kind:name
func Key(kind, name string) string {
	return kind + ":" + name
}
