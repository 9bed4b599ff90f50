/**
 * 仓库层:维度缓存
 * @description: 维度名称 -> ID 缓存 (Redis存储,适合多实例部署)
 * @func: 单纯数据访问,缓存读写失败只记录日志并按未命中处理
 */
package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/faust64/pakiti3/internal/pkg/logger"

	"github.com/go-redis/redis/v8"
)

// DimensionCache Redis维度缓存
type DimensionCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewDimensionCache 创建Redis维度缓存实例
func NewDimensionCache(client *redis.Client, prefix string, ttl time.Duration) *DimensionCache {
	return &DimensionCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Get 读取缓存
func (c *DimensionCache) Get(ctx context.Context, kind, name string) (uint64, bool) {
	data, err := c.client.Get(ctx, c.key(kind, name)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.LogError(err, "get_dimension_cache", "REPO", map[string]interface{}{
				"kind": kind,
				"name": name,
			})
		}
		return 0, false
	}

	id, err := strconv.ParseUint(data, 10, 64)
	if err != nil {
		logger.LogError(err, "parse_dimension_cache", "REPO", map[string]interface{}{
			"kind":  kind,
			"name":  name,
			"value": data,
		})
		return 0, false
	}
	return id, true
}

// Set 写入缓存
func (c *DimensionCache) Set(ctx context.Context, kind, name string, id uint64) {
	err := c.client.Set(ctx, c.key(kind, name), strconv.FormatUint(id, 10), c.ttl).Err()
	if err != nil {
		logger.LogError(err, "set_dimension_cache", "REPO", map[string]interface{}{
			"kind": kind,
			"name": name,
		})
	}
}

// Invalidate 删除缓存
func (c *DimensionCache) Invalidate(ctx context.Context, kind, name string) {
	if err := c.client.Del(ctx, c.key(kind, name)).Err(); err != nil {
		logger.LogError(err, "invalidate_dimension_cache", "REPO", map[string]interface{}{
			"kind": kind,
			"name": name,
		})
	}
}

// key 生成缓存键 [KEY:{prefix}{kind}:{name}]
func (c *DimensionCache) key(kind, name string) string {
	return c.prefix + kind + ":" + name
}
