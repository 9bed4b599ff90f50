/**
 * 初始化:主机模块
 * @description: 主机、维度、标签管理器的依赖装配
 */
package setup

import (
	"github.com/faust64/pakiti3/internal/pkg/cache"
	"github.com/faust64/pakiti3/internal/pkg/logger"

	hostRepo "github.com/faust64/pakiti3/internal/repo/mysql/host"
	hostService "github.com/faust64/pakiti3/internal/service/host"

	"gorm.io/gorm"
)

// BuildHostModule 构建主机模块
// dimCache 为 nil 时维度不缓存
func BuildHostModule(db *gorm.DB, dimCache cache.DimensionCache) *HostModule {
	logger.WithFields(map[string]interface{}{
		"path":      "setup.host",
		"operation": "build_module",
		"func_name": "setup.BuildHostModule",
	}).Info("开始初始化主机模块")

	// 1. Repository 初始化
	hosts := hostRepo.NewHostRepository(db)
	oses := hostRepo.NewOsRepository(db)
	archs := hostRepo.NewArchRepository(db)
	domains := hostRepo.NewDomainRepository(db)
	tags := hostRepo.NewTagRepository(db)
	raw := hostRepo.NewRawQueryRepository(db)

	// 2. 子管理器初始化
	osesManager := hostService.NewOsesManager(oses, dimCache)
	archsManager := hostService.NewArchsManager(archs, dimCache)
	domainsManager := hostService.NewDomainsManager(domains, dimCache)
	tagsManager := hostService.NewTagsManager(tags)
	dbManager := hostService.NewDbManager(raw)

	// 3. HostsManager 初始化
	hostsManager := hostService.NewHostsManager(
		hosts, oses, archs, domains,
		osesManager, archsManager, domainsManager,
		tagsManager, dbManager,
	)

	logger.WithFields(map[string]interface{}{
		"path":      "setup.host",
		"operation": "build_module",
		"func_name": "setup.BuildHostModule",
	}).Info("主机模块初始化完成")

	return &HostModule{
		HostsManager:   hostsManager,
		OsesManager:    osesManager,
		ArchsManager:   archsManager,
		DomainsManager: domainsManager,
		TagsManager:    tagsManager,
		DbManager:      dbManager,
	}
}
