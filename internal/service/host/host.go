/**
 * 服务层:主机管理
 * @description: 主机入库 (维度解析 + 身份匹配 + 新增/更新)、查询、删除
 * @func: HostsManager
 */
package host

import (
	"context"

	"github.com/faust64/pakiti3/internal/model/host"
	"github.com/faust64/pakiti3/internal/model/system"
	"github.com/faust64/pakiti3/internal/pkg/logger"
	"github.com/faust64/pakiti3/internal/pkg/utils"
	hostrepo "github.com/faust64/pakiti3/internal/repo/mysql/host"
)

// NoPaging pageSize/pageNum 取该值时不分页
const NoPaging = hostrepo.NoPaging

// hostsByTagSQL 按标签查主机ID
const hostsByTagSQL = "SELECT hosts.id AS id FROM hosts JOIN host_tags ON hosts.id = host_tags.host_id WHERE host_tags.tag_id = ? ORDER BY hosts.id"

// HostsManager 主机管理器
type HostsManager struct {
	hostRepo   HostRepository
	osRepo     OsRepository
	archRepo   ArchRepository
	domainRepo DomainRepository
	oses       DimensionStore
	archs      DimensionStore
	domains    DimensionStore
	tags       TagResolver
	db         RowQuerier
}

// NewHostsManager 创建 HostsManager 实例
func NewHostsManager(
	hostRepo HostRepository,
	osRepo OsRepository,
	archRepo ArchRepository,
	domainRepo DomainRepository,
	oses, archs, domains DimensionStore,
	tags TagResolver,
	db RowQuerier,
) *HostsManager {
	return &HostsManager{
		hostRepo:   hostRepo,
		osRepo:     osRepo,
		archRepo:   archRepo,
		domainRepo: domainRepo,
		oses:       oses,
		archs:      archs,
		domains:    domains,
		tags:       tags,
		db:         db,
	}
}

// StoreHost 主机不存在则创建，存在则更新
// 返回 true 表示新建。调用返回后 h.ID 以及 Os/Arch/Domain 的ID和对象均已回填
func (m *HostsManager) StoreHost(ctx context.Context, h *host.Host) (bool, error) {
	if err := validateHostIdentity(h); err != nil {
		logger.LogError(err, "store_host", "SERVICE", nil)
		return false, err
	}
	if err := validateDimensionNames(h); err != nil {
		logger.LogError(err, "store_host", "SERVICE", map[string]interface{}{
			"hostname": h.Hostname,
		})
		return false, err
	}
	logger.LogDebugOperation("store_host", "SERVICE", "Storing the host", map[string]interface{}{
		"hostname": h.Hostname,
	})

	normalizeIdentity(h)

	osID, _, err := m.oses.Store(ctx, h.OsName)
	if err != nil {
		return false, err
	}
	h.OsID = osID
	h.Os = &host.Os{ID: osID, Name: h.OsName}

	archID, _, err := m.archs.Store(ctx, h.ArchName)
	if err != nil {
		return false, err
	}
	h.ArchID = archID
	h.Arch = &host.Arch{ID: archID, Name: h.ArchName}

	domainID, _, err := m.domains.Store(ctx, h.DomainName)
	if err != nil {
		return false, err
	}
	h.DomainID = domainID
	h.Domain = &host.Domain{ID: domainID, Name: h.DomainName}

	hostID, found, err := m.hostRepo.GetID(ctx, h)
	if err != nil {
		return false, err
	}
	if found {
		h.ID = hostID
		if err := m.hostRepo.Update(ctx, h); err != nil {
			m.forgetDimensions(ctx, h)
			return false, err
		}
		return false, nil
	}

	if err := m.hostRepo.Create(ctx, h); err != nil {
		m.forgetDimensions(ctx, h)
		return false, err
	}
	logger.LogBusinessOperation("store_host", "SERVICE", "success", "host created", map[string]interface{}{
		"host_id":  h.ID,
		"hostname": h.Hostname,
	})
	return true, nil
}

// GetHostID 按 hostname、reporter_hostname、ip、reporter_ip 查找主机
func (m *HostsManager) GetHostID(ctx context.Context, h *host.Host) (uint64, bool, error) {
	if err := validateHostIdentity(h); err != nil {
		logger.LogError(err, "get_host_id", "SERVICE", nil)
		return 0, false, err
	}
	logger.LogDebugOperation("get_host_id", "SERVICE", "Getting the host ID", nil)

	probe := &host.Host{
		Hostname:         h.Hostname,
		ReporterHostname: h.ReporterHostname,
		IP:               h.IP,
		ReporterIP:       h.ReporterIP,
	}
	normalizeIdentity(probe)
	return m.hostRepo.GetID(ctx, probe)
}

// GetHostByID 获取主机并回填 Arch/Os/Domain，主机不存在返回 nil
func (m *HostsManager) GetHostByID(ctx context.Context, id uint64) (*host.Host, error) {
	logger.LogDebugOperation("get_host_by_id", "SERVICE", "Getting the host by its ID", map[string]interface{}{
		"id": id,
	})
	h, err := m.hostRepo.GetByID(ctx, id)
	if err != nil || h == nil {
		return nil, err
	}

	if h.Arch, err = m.archRepo.GetByID(ctx, h.ArchID); err != nil {
		return nil, err
	}
	if h.Os, err = m.osRepo.GetByID(ctx, h.OsID); err != nil {
		return nil, err
	}
	if h.Domain, err = m.domainRepo.GetByID(ctx, h.DomainID); err != nil {
		return nil, err
	}
	if h.Arch != nil {
		h.ArchName = h.Arch.Name
	}
	if h.Os != nil {
		h.OsName = h.Os.Name
	}
	if h.Domain != nil {
		h.DomainName = h.Domain.Name
	}
	return h, nil
}

// GetHostByHostname 按主机名获取主机 (不回填关联对象)
func (m *HostsManager) GetHostByHostname(ctx context.Context, hostname string) (*host.Host, error) {
	logger.LogDebugOperation("get_host_by_hostname", "SERVICE", "Getting the host by its hostname", map[string]interface{}{
		"hostname": hostname,
	})
	return m.hostRepo.GetByHostname(ctx, hostname)
}

// LoadHosts 按ID逐个加载主机及其关联对象
// 列表、首字母、标签查询都经过这里，批量加载只需改这一处
func (m *HostsManager) LoadHosts(ctx context.Context, ids []uint64) ([]*host.Host, error) {
	hosts := make([]*host.Host, 0, len(ids))
	for _, id := range ids {
		h, err := m.GetHostByID(ctx, id)
		if err != nil {
			return nil, err
		}
		// 列出ID之后被删除的主机直接跳过
		if h == nil {
			continue
		}
		hosts = append(hosts, h)
	}
	return hosts, nil
}

// GetHosts 获取排序分页后的主机列表
// orderBy: hostname(默认)/id/kernel/os/arch/domain/lastReport
func (m *HostsManager) GetHosts(ctx context.Context, orderBy string, pageSize, pageNum int) ([]*host.Host, error) {
	logger.LogDebugOperation("get_hosts", "SERVICE", "Getting all hosts", map[string]interface{}{
		"order_by":  orderBy,
		"page_size": pageSize,
		"page_num":  pageNum,
	})
	ids, err := m.hostRepo.ListIDs(ctx, orderBy, pageSize, pageNum)
	if err != nil {
		return nil, err
	}
	return m.LoadHosts(ctx, ids)
}

// GetHostsByFirstLetter 获取主机名以指定字母开头的主机
func (m *HostsManager) GetHostsByFirstLetter(ctx context.Context, letter string) ([]*host.Host, error) {
	logger.LogDebugOperation("get_hosts_by_first_letter", "SERVICE", "Getting hosts by first letter", map[string]interface{}{
		"letter": letter,
	})
	ids, err := m.hostRepo.ListIDsByFirstLetter(ctx, letter)
	if err != nil {
		return nil, err
	}
	return m.LoadHosts(ctx, ids)
}

// GetHostsByTagName 获取带有指定标签的主机，标签不存在返回 NotFoundError
func (m *HostsManager) GetHostsByTagName(ctx context.Context, tagName string) ([]*host.Host, error) {
	tagID, found, err := m.tags.GetTagIDByName(ctx, tagName)
	if err != nil {
		return nil, err
	}
	if !found {
		err := system.NewNotFoundError("tag", tagName)
		logger.LogError(err, "get_hosts_by_tag_name", "SERVICE", nil)
		return nil, err
	}

	rows, err := m.db.QueryToMultiRow(ctx, hostsByTagSQL, tagID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(rows))
	for _, row := range rows {
		id, err := toUint64(row["id"])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return m.LoadHosts(ctx, ids)
}

// GetHostsCount 主机总数
func (m *HostsManager) GetHostsCount(ctx context.Context) (int64, error) {
	logger.LogDebugOperation("get_hosts_count", "SERVICE", "Getting hosts count", nil)
	return m.hostRepo.Count(ctx)
}

// DeleteHost 删除主机，关联的标签和报告由外键级联删除
func (m *HostsManager) DeleteHost(ctx context.Context, h *host.Host) error {
	if h == nil || h.ID == 0 {
		err := system.NewValidationError("Host object is not valid or Host.id is not set")
		logger.LogError(err, "delete_host", "SERVICE", nil)
		return err
	}
	if err := m.hostRepo.Delete(ctx, h.ID); err != nil {
		return err
	}
	logger.LogBusinessOperation("delete_host", "SERVICE", "success", "host deleted", map[string]interface{}{
		"host_id":  h.ID,
		"hostname": h.Hostname,
	})
	return nil
}

// SetLastReportID 记录主机最近一次报告
func (m *HostsManager) SetLastReportID(ctx context.Context, h *host.Host, report *host.Report) error {
	if h == nil || h.ID == 0 || report == nil || report.ID == 0 {
		err := system.NewValidationError("Host or Report object is not valid or Host.id or Report.id is not set")
		logger.LogError(err, "set_last_report_id", "SERVICE", nil)
		return err
	}
	if err := m.hostRepo.SetLastReportID(ctx, h.ID, report.ID); err != nil {
		return err
	}
	reportID := report.ID
	h.LastReportID = &reportID
	return nil
}

// GetOses 获取排序分页后的操作系统列表 (orderBy: name/id)
func (m *HostsManager) GetOses(ctx context.Context, orderBy string, pageSize, pageNum int) ([]*host.Os, error) {
	logger.LogDebugOperation("get_oses", "SERVICE", "Getting all oses", nil)
	ids, err := m.osRepo.ListIDs(ctx, orderBy, pageSize, pageNum)
	if err != nil {
		return nil, err
	}
	oses := make([]*host.Os, 0, len(ids))
	for _, id := range ids {
		os, err := m.osRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if os != nil {
			oses = append(oses, os)
		}
	}
	return oses, nil
}

// GetArchs 获取排序分页后的架构列表 (orderBy: name/id)
func (m *HostsManager) GetArchs(ctx context.Context, orderBy string, pageSize, pageNum int) ([]*host.Arch, error) {
	logger.LogDebugOperation("get_archs", "SERVICE", "Getting all archs", nil)
	ids, err := m.archRepo.ListIDs(ctx, orderBy, pageSize, pageNum)
	if err != nil {
		return nil, err
	}
	archs := make([]*host.Arch, 0, len(ids))
	for _, id := range ids {
		arch, err := m.archRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if arch != nil {
			archs = append(archs, arch)
		}
	}
	return archs, nil
}

// GetArchID 架构名 -> ID
func (m *HostsManager) GetArchID(ctx context.Context, name string) (uint64, bool, error) {
	arch, err := m.archRepo.GetByName(ctx, name)
	if err != nil || arch == nil {
		return 0, false, err
	}
	return arch.ID, true, nil
}

// GetArch 按名称获取架构
func (m *HostsManager) GetArch(ctx context.Context, name string) (*host.Arch, error) {
	return m.archRepo.GetByName(ctx, name)
}

// CreateArch 创建架构
func (m *HostsManager) CreateArch(ctx context.Context, name string) (*host.Arch, error) {
	if name == "" {
		return nil, system.NewFieldValidationError("arch", "name is required")
	}
	logger.LogDebugOperation("create_arch", "SERVICE", "Creating arch", map[string]interface{}{
		"name": name,
	})
	arch := &host.Arch{Name: name}
	if err := m.archRepo.Create(ctx, arch); err != nil {
		return nil, err
	}
	return arch, nil
}

func validateHostIdentity(h *host.Host) error {
	if h == nil {
		return system.NewValidationError("Host object is not valid")
	}
	if utils.NormalizeHostname(h.Hostname) == "" {
		return system.NewFieldValidationError("hostname", "is required")
	}
	return nil
}

// validateDimensionNames 入库前检查维度名称，避免部分维度已写入后才报错
func validateDimensionNames(h *host.Host) error {
	switch {
	case h.OsName == "":
		return system.NewFieldValidationError(KindOs, "name is required")
	case h.ArchName == "":
		return system.NewFieldValidationError(KindArch, "name is required")
	case h.DomainName == "":
		return system.NewFieldValidationError(KindDomain, "name is required")
	}
	return nil
}

// forgetDimensions 主机写入失败时丢弃维度缓存
// 缓存的ID可能已失效 (例如表被重建)，下次上报重新解析
func (m *HostsManager) forgetDimensions(ctx context.Context, h *host.Host) {
	m.oses.Forget(ctx, h.OsName)
	m.archs.Forget(ctx, h.ArchName)
	m.domains.Forget(ctx, h.DomainName)
}

// normalizeIdentity 统一身份字段格式，保证同一主机多次上报能匹配
func normalizeIdentity(h *host.Host) {
	h.Hostname = utils.NormalizeHostname(h.Hostname)
	h.ReporterHostname = utils.NormalizeHostname(h.ReporterHostname)
	h.IP = utils.NormalizeIP(h.IP)
	h.ReporterIP = utils.NormalizeIP(h.ReporterIP)
}
