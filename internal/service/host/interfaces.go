package host

import (
	"context"

	"github.com/faust64/pakiti3/internal/model/host"
)

// HostRepository 主机数据访问接口
type HostRepository interface {
	Create(ctx context.Context, h *host.Host) error
	Update(ctx context.Context, h *host.Host) error
	Delete(ctx context.Context, id uint64) error
	GetByID(ctx context.Context, id uint64) (*host.Host, error)
	GetByHostname(ctx context.Context, hostname string) (*host.Host, error)
	GetID(ctx context.Context, h *host.Host) (uint64, bool, error) // 身份匹配
	ListIDs(ctx context.Context, orderBy string, pageSize, pageNum int) ([]uint64, error)
	ListIDsByFirstLetter(ctx context.Context, letter string) ([]uint64, error)
	Count(ctx context.Context) (int64, error)
	SetLastReportID(ctx context.Context, hostID, reportID uint64) error
}

// OsRepository 操作系统数据访问接口
type OsRepository interface {
	Create(ctx context.Context, os *host.Os) error
	GetByID(ctx context.Context, id uint64) (*host.Os, error)
	GetByName(ctx context.Context, name string) (*host.Os, error)
	ListIDs(ctx context.Context, orderBy string, pageSize, pageNum int) ([]uint64, error)
}

// ArchRepository 架构数据访问接口
type ArchRepository interface {
	Create(ctx context.Context, arch *host.Arch) error
	GetByID(ctx context.Context, id uint64) (*host.Arch, error)
	GetByName(ctx context.Context, name string) (*host.Arch, error)
	ListIDs(ctx context.Context, orderBy string, pageSize, pageNum int) ([]uint64, error)
}

// DomainRepository 域数据访问接口
type DomainRepository interface {
	Create(ctx context.Context, domain *host.Domain) error
	GetByID(ctx context.Context, id uint64) (*host.Domain, error)
	GetByName(ctx context.Context, name string) (*host.Domain, error)
}

// TagRepository 标签数据访问接口
type TagRepository interface {
	Create(ctx context.Context, tag *host.Tag) error
	GetByName(ctx context.Context, name string) (*host.Tag, error)
	AddHostTag(ctx context.Context, hostID, tagID uint64) error
	RemoveHostTag(ctx context.Context, hostID, tagID uint64) error
	GetHostTags(ctx context.Context, hostID uint64) ([]host.Tag, error)
}

// RawQueryRepository 原生查询接口
type RawQueryRepository interface {
	QueryToMultiRow(ctx context.Context, query string, args ...interface{}) ([]map[string]interface{}, error)
	QueryToSingleValue(ctx context.Context, query string, args ...interface{}) (interface{}, error)
}

// DimensionStore 维度表 get-or-create
type DimensionStore interface {
	Store(ctx context.Context, name string) (id uint64, created bool, err error)
	Forget(ctx context.Context, name string)
}

// TagResolver 标签名解析
type TagResolver interface {
	GetTagIDByName(ctx context.Context, name string) (id uint64, found bool, err error)
}

// RowQuerier 多行原生查询
type RowQuerier interface {
	QueryToMultiRow(ctx context.Context, query string, args ...interface{}) ([]map[string]interface{}, error)
}
