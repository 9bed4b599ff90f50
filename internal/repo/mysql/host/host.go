/**
 * 仓库层:主机数据访问
 * @description: 主机表的增删改查、身份匹配、分页ID列表
 * @func: 单纯数据访问,不包含业务逻辑
 */
package host

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/faust64/pakiti3/internal/model/host"
	"github.com/faust64/pakiti3/internal/model/system"
	"github.com/faust64/pakiti3/internal/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NoPaging pageSize/pageNum 取该值 (或任意负数) 时不分页
const NoPaging = -1

// hostOrderColumns 主机列表允许的排序字段
// os/arch/domain/lastReport 需要连接维度表或报告表
var hostOrderColumns = map[string]string{
	"hostname":   "hosts.hostname",
	"id":         "hosts.id",
	"kernel":     "hosts.kernel",
	"os":         "oses.name",
	"arch":       "archs.name",
	"domain":     "domains.name",
	"lastReport": "reports.received_on DESC",
}

// hostUpdateColumns 更新主机时写入的列 (不含 last_report_id，由 SetLastReportID 单独维护)
var hostUpdateColumns = []string{
	"hostname", "reporter_hostname", "ip", "reporter_ip",
	"kernel", "type", "os_id", "arch_id", "domain_id", "updated_at",
}

// HostRepository 主机仓库
type HostRepository struct {
	db *gorm.DB
}

// NewHostRepository 创建 HostRepository 实例
func NewHostRepository(db *gorm.DB) *HostRepository {
	return &HostRepository{db: db}
}

// Create 创建主机
func (r *HostRepository) Create(ctx context.Context, h *host.Host) error {
	if h == nil {
		return errors.New("host is nil")
	}
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(h).Error
	if err != nil {
		logger.LogError(err, "create_host", "REPO", map[string]interface{}{
			"hostname": h.Hostname,
			"ip":       h.IP,
		})
		return err
	}
	return nil
}

// Update 更新主机
func (r *HostRepository) Update(ctx context.Context, h *host.Host) error {
	if h == nil || h.ID == 0 {
		return errors.New("invalid host or id")
	}
	err := r.db.WithContext(ctx).
		Model(h).
		Omit(clause.Associations).
		Select(hostUpdateColumns).
		Updates(h).Error
	if err != nil {
		logger.LogError(err, "update_host", "REPO", map[string]interface{}{
			"id":       h.ID,
			"hostname": h.Hostname,
		})
		return err
	}
	return nil
}

// Delete 删除主机
// host_tags、reports 中的关联行由外键 ON DELETE CASCADE 删除
func (r *HostRepository) Delete(ctx context.Context, id uint64) error {
	err := r.db.WithContext(ctx).Delete(&host.Host{}, id).Error
	if err != nil {
		logger.LogError(err, "delete_host", "REPO", map[string]interface{}{
			"id": id,
		})
		return err
	}
	return nil
}

// GetByID 根据ID获取主机 (不含关联对象)
func (r *HostRepository) GetByID(ctx context.Context, id uint64) (*host.Host, error) {
	var h host.Host
	err := r.db.WithContext(ctx).First(&h, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logger.LogError(err, "get_host_by_id", "REPO", map[string]interface{}{
			"id": id,
		})
		return nil, err
	}
	return &h, nil
}

// GetByHostname 根据主机名获取主机
func (r *HostRepository) GetByHostname(ctx context.Context, hostname string) (*host.Host, error) {
	var h host.Host
	err := r.db.WithContext(ctx).Where("hostname = ?", hostname).First(&h).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logger.LogError(err, "get_host_by_hostname", "REPO", map[string]interface{}{
			"hostname": hostname,
		})
		return nil, err
	}
	return &h, nil
}

// GetID 按 hostname、reporter_hostname、ip、reporter_ip 精确匹配主机
func (r *HostRepository) GetID(ctx context.Context, h *host.Host) (uint64, bool, error) {
	var found host.Host
	err := r.db.WithContext(ctx).
		Select("id").
		Where("hostname = ? AND reporter_hostname = ? AND ip = ? AND reporter_ip = ?",
			h.Hostname, h.ReporterHostname, h.IP, h.ReporterIP).
		First(&found).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		logger.LogError(err, "get_host_id", "REPO", map[string]interface{}{
			"hostname":    h.Hostname,
			"reporter_ip": h.ReporterIP,
		})
		return 0, false, err
	}
	return found.ID, true, nil
}

// ListIDs 获取排序分页后的主机ID列表
func (r *HostRepository) ListIDs(ctx context.Context, orderBy string, pageSize, pageNum int) ([]uint64, error) {
	if orderBy == "" {
		orderBy = "hostname"
	}
	column, ok := hostOrderColumns[orderBy]
	if !ok {
		return nil, system.NewFieldValidationError("orderBy", "unsupported value "+orderBy)
	}

	query := r.db.WithContext(ctx).Model(&host.Host{})
	switch orderBy {
	case "os":
		query = query.Joins("JOIN oses ON oses.id = hosts.os_id")
	case "arch":
		query = query.Joins("JOIN archs ON archs.id = hosts.arch_id")
	case "domain":
		query = query.Joins("JOIN domains ON domains.id = hosts.domain_id")
	case "lastReport":
		query = query.Joins("LEFT JOIN reports ON reports.id = hosts.last_report_id")
	}
	query = paginate(query.Order(column), pageSize, pageNum)
	if column != "hosts.id" {
		query = query.Order("hosts.id")
	}

	var ids []uint64
	if err := query.Pluck("hosts.id", &ids).Error; err != nil {
		logger.LogError(err, "list_host_ids", "REPO", map[string]interface{}{
			"order_by":  orderBy,
			"page_size": pageSize,
			"page_num":  pageNum,
		})
		return nil, err
	}
	return ids, nil
}

// ListIDsByFirstLetter 获取主机名以指定字母开头的主机ID (不区分大小写)
// letter 必须恰好是一个字符，按首字符等值比较，% 和 _ 没有通配含义
func (r *HostRepository) ListIDsByFirstLetter(ctx context.Context, letter string) ([]uint64, error) {
	if utf8.RuneCountInString(letter) != 1 {
		return nil, system.NewFieldValidationError("letter", "must be exactly one character")
	}

	var ids []uint64
	err := r.db.WithContext(ctx).
		Model(&host.Host{}).
		Where("LOWER(SUBSTR(hostname, 1, 1)) = ?", strings.ToLower(letter)).
		Order("hostname").
		Pluck("id", &ids).Error
	if err != nil {
		logger.LogError(err, "list_host_ids_by_first_letter", "REPO", map[string]interface{}{
			"letter": letter,
		})
		return nil, err
	}
	return ids, nil
}

// Count 主机总数
func (r *HostRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&host.Host{}).Count(&total).Error; err != nil {
		logger.LogError(err, "count_hosts", "REPO", nil)
		return 0, err
	}
	return total, nil
}

// SetLastReportID 记录主机最近一次报告
func (r *HostRepository) SetLastReportID(ctx context.Context, hostID, reportID uint64) error {
	err := r.db.WithContext(ctx).
		Model(&host.Host{}).
		Where("id = ?", hostID).
		Update("last_report_id", reportID).Error
	if err != nil {
		logger.LogError(err, "set_last_report_id", "REPO", map[string]interface{}{
			"host_id":   hostID,
			"report_id": reportID,
		})
		return err
	}
	return nil
}

// paginate 应用分页，任一参数为负数 (NoPaging) 时不分页
func paginate(query *gorm.DB, pageSize, pageNum int) *gorm.DB {
	if pageSize < 0 || pageNum < 0 {
		return query
	}
	return query.Limit(pageSize).Offset(pageSize * pageNum)
}
