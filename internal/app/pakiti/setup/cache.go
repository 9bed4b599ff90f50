package setup

import (
	"fmt"

	"github.com/faust64/pakiti3/internal/config"
	"github.com/faust64/pakiti3/internal/pkg/cache"
	"github.com/faust64/pakiti3/internal/pkg/logger"
	redisRepo "github.com/faust64/pakiti3/internal/repo/redis"

	"github.com/go-redis/redis/v8"
)

// BuildDimensionCache 按 cache.driver 构建维度缓存
// driver 为 redis 时 client 不能为空
func BuildDimensionCache(cfg *config.CacheConfig, client *redis.Client) (cache.DimensionCache, error) {
	logger.WithFields(map[string]interface{}{
		"path":      "setup.cache",
		"operation": "build_cache",
		"driver":    cfg.Driver,
	}).Info("初始化维度缓存")

	switch cfg.Driver {
	case "", "none":
		return cache.NoopDimensionCache{}, nil
	case "lru":
		return cache.NewLRUDimensionCache(cfg.Size, cfg.TTL), nil
	case "redis":
		if client == nil {
			return nil, fmt.Errorf("redis dimension cache requires a redis client")
		}
		return redisRepo.NewDimensionCache(client, cfg.KeyPrefix, cfg.TTL), nil
	default:
		return nil, fmt.Errorf("unsupported cache driver: %s", cfg.Driver)
	}
}
