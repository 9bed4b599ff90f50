package host

import (
	"context"
	"errors"

	"github.com/faust64/pakiti3/internal/model/host"
	"github.com/faust64/pakiti3/internal/model/system"
	"github.com/faust64/pakiti3/internal/pkg/logger"

	"gorm.io/gorm"
)

// 维度表 (oses/archs/domains) 共用的查询，三个仓库只是表不同

func createDimension[T any](ctx context.Context, db *gorm.DB, operation string, v *T, name string) error {
	if err := db.WithContext(ctx).Create(v).Error; err != nil {
		logger.LogError(err, operation, "REPO", map[string]interface{}{
			"name": name,
		})
		return err
	}
	return nil
}

func getDimensionByID[T any](ctx context.Context, db *gorm.DB, operation string, id uint64) (*T, error) {
	var v T
	err := db.WithContext(ctx).First(&v, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logger.LogError(err, operation, "REPO", map[string]interface{}{
			"id": id,
		})
		return nil, err
	}
	return &v, nil
}

func getDimensionByName[T any](ctx context.Context, db *gorm.DB, operation, name string) (*T, error) {
	var v T
	err := db.WithContext(ctx).Where("name = ?", name).First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logger.LogError(err, operation, "REPO", map[string]interface{}{
			"name": name,
		})
		return nil, err
	}
	return &v, nil
}

// listDimensionIDs 维度表按 name (默认) 或 id 排序
func listDimensionIDs[T any](ctx context.Context, db *gorm.DB, operation, orderBy string, pageSize, pageNum int) ([]uint64, error) {
	switch orderBy {
	case "", "name":
		orderBy = "name"
	case "id":
	default:
		return nil, system.NewFieldValidationError("orderBy", "unsupported value "+orderBy)
	}

	var ids []uint64
	query := paginate(db.WithContext(ctx).Model(new(T)).Order(orderBy), pageSize, pageNum)
	if err := query.Pluck("id", &ids).Error; err != nil {
		logger.LogError(err, operation, "REPO", map[string]interface{}{
			"order_by": orderBy,
		})
		return nil, err
	}
	return ids, nil
}

// OsRepository 操作系统仓库
type OsRepository struct {
	db *gorm.DB
}

// NewOsRepository 创建 OsRepository 实例
func NewOsRepository(db *gorm.DB) *OsRepository {
	return &OsRepository{db: db}
}

func (r *OsRepository) Create(ctx context.Context, os *host.Os) error {
	return createDimension(ctx, r.db, "create_os", os, os.Name)
}

func (r *OsRepository) GetByID(ctx context.Context, id uint64) (*host.Os, error) {
	return getDimensionByID[host.Os](ctx, r.db, "get_os_by_id", id)
}

func (r *OsRepository) GetByName(ctx context.Context, name string) (*host.Os, error) {
	return getDimensionByName[host.Os](ctx, r.db, "get_os_by_name", name)
}

// ListIDs 获取排序分页后的操作系统ID列表
func (r *OsRepository) ListIDs(ctx context.Context, orderBy string, pageSize, pageNum int) ([]uint64, error) {
	return listDimensionIDs[host.Os](ctx, r.db, "list_os_ids", orderBy, pageSize, pageNum)
}

// ArchRepository 架构仓库
type ArchRepository struct {
	db *gorm.DB
}

// NewArchRepository 创建 ArchRepository 实例
func NewArchRepository(db *gorm.DB) *ArchRepository {
	return &ArchRepository{db: db}
}

func (r *ArchRepository) Create(ctx context.Context, arch *host.Arch) error {
	return createDimension(ctx, r.db, "create_arch", arch, arch.Name)
}

func (r *ArchRepository) GetByID(ctx context.Context, id uint64) (*host.Arch, error) {
	return getDimensionByID[host.Arch](ctx, r.db, "get_arch_by_id", id)
}

func (r *ArchRepository) GetByName(ctx context.Context, name string) (*host.Arch, error) {
	return getDimensionByName[host.Arch](ctx, r.db, "get_arch_by_name", name)
}

func (r *ArchRepository) ListIDs(ctx context.Context, orderBy string, pageSize, pageNum int) ([]uint64, error) {
	return listDimensionIDs[host.Arch](ctx, r.db, "list_arch_ids", orderBy, pageSize, pageNum)
}

// DomainRepository 域仓库
type DomainRepository struct {
	db *gorm.DB
}

// NewDomainRepository 创建 DomainRepository 实例
func NewDomainRepository(db *gorm.DB) *DomainRepository {
	return &DomainRepository{db: db}
}

func (r *DomainRepository) Create(ctx context.Context, domain *host.Domain) error {
	return createDimension(ctx, r.db, "create_domain", domain, domain.Name)
}

func (r *DomainRepository) GetByID(ctx context.Context, id uint64) (*host.Domain, error) {
	return getDimensionByID[host.Domain](ctx, r.db, "get_domain_by_id", id)
}

func (r *DomainRepository) GetByName(ctx context.Context, name string) (*host.Domain, error) {
	return getDimensionByName[host.Domain](ctx, r.db, "get_domain_by_name", name)
}

func (r *DomainRepository) ListIDs(ctx context.Context, orderBy string, pageSize, pageNum int) ([]uint64, error) {
	return listDimensionIDs[host.Domain](ctx, r.db, "list_domain_ids", orderBy, pageSize, pageNum)
}
