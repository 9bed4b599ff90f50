/**
 * 初始化
 * @description: 各模块初始化后的聚合输出
 */
package setup

import (
	hostService "github.com/faust64/pakiti3/internal/service/host"
	vulnService "github.com/faust64/pakiti3/internal/service/vuln"
)

// HostModule 主机模块的聚合输出
// HostsManager 依赖的维度/标签/查询管理器也一并暴露，供上报处理等调用方直接使用
type HostModule struct {
	HostsManager   *hostService.HostsManager
	OsesManager    *hostService.OsesManager
	ArchsManager   *hostService.ArchsManager
	DomainsManager *hostService.DomainsManager
	TagsManager    *hostService.TagsManager
	DbManager      *hostService.DbManager
}

// VulnModule 漏洞例外模块的聚合输出
type VulnModule struct {
	CveExceptionsManager *vulnService.CveExceptionsManager
}
