package setup

import (
	"github.com/faust64/pakiti3/internal/pkg/logger"

	vulnRepo "github.com/faust64/pakiti3/internal/repo/mysql/vuln"
	vulnService "github.com/faust64/pakiti3/internal/service/vuln"

	"gorm.io/gorm"
)

// BuildVulnModule 构建漏洞例外模块
func BuildVulnModule(db *gorm.DB) *VulnModule {
	logger.WithFields(map[string]interface{}{
		"path":      "setup.vuln",
		"operation": "build_module",
		"func_name": "setup.BuildVulnModule",
	}).Info("开始初始化漏洞例外模块")

	manager := vulnService.NewCveExceptionsManager(vulnRepo.NewCveExceptionRepository(db))

	return &VulnModule{
		CveExceptionsManager: manager,
	}
}
