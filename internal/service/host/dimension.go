package host

import (
	"context"

	"github.com/faust64/pakiti3/internal/model/host"
	"github.com/faust64/pakiti3/internal/model/system"
	"github.com/faust64/pakiti3/internal/pkg/cache"
	"github.com/faust64/pakiti3/internal/pkg/logger"
)

// 维度缓存的 kind
const (
	KindOs     = "os"
	KindArch   = "arch"
	KindDomain = "domain"
)

// storeDimension 维度表 get-or-create
// 创建失败 (通常是并发写入触发唯一索引) 时按名称重读一次
func storeDimension(
	ctx context.Context,
	c cache.DimensionCache,
	kind, name string,
	find func(ctx context.Context) (uint64, bool, error),
	create func(ctx context.Context) (uint64, error),
) (uint64, bool, error) {
	if name == "" {
		return 0, false, system.NewFieldValidationError(kind, "name is required")
	}

	if id, ok := c.Get(ctx, kind, name); ok {
		return id, false, nil
	}

	id, found, err := find(ctx)
	if err != nil {
		return 0, false, err
	}
	if found {
		c.Set(ctx, kind, name, id)
		return id, false, nil
	}

	id, createErr := create(ctx)
	if createErr != nil {
		id, found, err = find(ctx)
		if err != nil || !found {
			return 0, false, createErr
		}
		c.Set(ctx, kind, name, id)
		return id, false, nil
	}

	logger.LogBusinessOperation("store_"+kind, "SERVICE", "success", "dimension created", map[string]interface{}{
		"kind": kind,
		"name": name,
		"id":   id,
	})
	c.Set(ctx, kind, name, id)
	return id, true, nil
}

func cacheOrNoop(c cache.DimensionCache) cache.DimensionCache {
	if c == nil {
		return cache.NoopDimensionCache{}
	}
	return c
}

// OsesManager 操作系统管理器
type OsesManager struct {
	repo  OsRepository
	cache cache.DimensionCache
}

// NewOsesManager 创建 OsesManager 实例，c 为 nil 时不缓存
func NewOsesManager(repo OsRepository, c cache.DimensionCache) *OsesManager {
	return &OsesManager{repo: repo, cache: cacheOrNoop(c)}
}

// Store 按名称获取操作系统ID，不存在则创建
func (m *OsesManager) Store(ctx context.Context, name string) (uint64, bool, error) {
	return storeDimension(ctx, m.cache, KindOs, name,
		func(ctx context.Context) (uint64, bool, error) {
			os, err := m.repo.GetByName(ctx, name)
			if err != nil || os == nil {
				return 0, false, err
			}
			return os.ID, true, nil
		},
		func(ctx context.Context) (uint64, error) {
			os := &host.Os{Name: name}
			err := m.repo.Create(ctx, os)
			return os.ID, err
		},
	)
}

// Forget 移除名称对应的缓存ID
func (m *OsesManager) Forget(ctx context.Context, name string) {
	m.cache.Invalidate(ctx, KindOs, name)
}

func (m *OsesManager) GetByName(ctx context.Context, name string) (*host.Os, error) {
	return m.repo.GetByName(ctx, name)
}

func (m *OsesManager) GetByID(ctx context.Context, id uint64) (*host.Os, error) {
	return m.repo.GetByID(ctx, id)
}

// ArchsManager 架构管理器
type ArchsManager struct {
	repo  ArchRepository
	cache cache.DimensionCache
}

// NewArchsManager 创建 ArchsManager 实例
func NewArchsManager(repo ArchRepository, c cache.DimensionCache) *ArchsManager {
	return &ArchsManager{repo: repo, cache: cacheOrNoop(c)}
}

// Store 按名称获取架构ID，不存在则创建
func (m *ArchsManager) Store(ctx context.Context, name string) (uint64, bool, error) {
	return storeDimension(ctx, m.cache, KindArch, name,
		func(ctx context.Context) (uint64, bool, error) {
			arch, err := m.repo.GetByName(ctx, name)
			if err != nil || arch == nil {
				return 0, false, err
			}
			return arch.ID, true, nil
		},
		func(ctx context.Context) (uint64, error) {
			arch := &host.Arch{Name: name}
			err := m.repo.Create(ctx, arch)
			return arch.ID, err
		},
	)
}

func (m *ArchsManager) Forget(ctx context.Context, name string) {
	m.cache.Invalidate(ctx, KindArch, name)
}

// DomainsManager 域管理器
type DomainsManager struct {
	repo  DomainRepository
	cache cache.DimensionCache
}

// NewDomainsManager 创建 DomainsManager 实例
func NewDomainsManager(repo DomainRepository, c cache.DimensionCache) *DomainsManager {
	return &DomainsManager{repo: repo, cache: cacheOrNoop(c)}
}

// Store 按名称获取域ID，不存在则创建
func (m *DomainsManager) Store(ctx context.Context, name string) (uint64, bool, error) {
	return storeDimension(ctx, m.cache, KindDomain, name,
		func(ctx context.Context) (uint64, bool, error) {
			domain, err := m.repo.GetByName(ctx, name)
			if err != nil || domain == nil {
				return 0, false, err
			}
			return domain.ID, true, nil
		},
		func(ctx context.Context) (uint64, error) {
			domain := &host.Domain{Name: name}
			err := m.repo.Create(ctx, domain)
			return domain.ID, err
		},
	)
}

func (m *DomainsManager) Forget(ctx context.Context, name string) {
	m.cache.Invalidate(ctx, KindDomain, name)
}
