/**
 * 服务层:CVE例外管理
 * @description: CVE例外的创建、查询、删除
 * @func: CveExceptionsManager
 */
package vuln

import (
	"context"

	"github.com/faust64/pakiti3/internal/model/system"
	"github.com/faust64/pakiti3/internal/model/vuln"
	"github.com/faust64/pakiti3/internal/pkg/logger"
)

// CveExceptionRepository CVE例外数据访问接口
type CveExceptionRepository interface {
	Create(ctx context.Context, e *vuln.CveException) error
	GetByID(ctx context.Context, id uint64) (*vuln.CveException, error)
	GetByPkgID(ctx context.Context, pkgID uint64) ([]*vuln.CveException, error)
	GetByCveName(ctx context.Context, cveName string) ([]*vuln.CveException, error)
	Delete(ctx context.Context, id uint64) error
}

// CveExceptionsManager CVE例外管理器
type CveExceptionsManager struct {
	repo CveExceptionRepository
}

// NewCveExceptionsManager 创建 CveExceptionsManager 实例
func NewCveExceptionsManager(repo CveExceptionRepository) *CveExceptionsManager {
	return &CveExceptionsManager{repo: repo}
}

// CreateCveException 保存例外并返回 (ID 已回填)
func (m *CveExceptionsManager) CreateCveException(ctx context.Context, e *vuln.CveException) (*vuln.CveException, error) {
	var err error
	switch {
	case e == nil:
		err = system.NewValidationError("Exception object is not valid")
	case e.PkgID == 0:
		err = system.NewFieldValidationError("pkg_id", "is required")
	case e.CveName == "":
		err = system.NewFieldValidationError("cve_name", "is required")
	}
	if err != nil {
		logger.LogError(err, "create_cve_exception", "SERVICE", nil)
		return nil, err
	}

	logger.LogDebugOperation("create_cve_exception", "SERVICE", "Creating the exception", map[string]interface{}{
		"pkg_id":   e.PkgID,
		"cve_name": e.CveName,
	})
	if err := m.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	logger.LogBusinessOperation("create_cve_exception", "SERVICE", "success", "cve exception created", map[string]interface{}{
		"id":       e.ID,
		"pkg_id":   e.PkgID,
		"cve_name": e.CveName,
		"modifier": e.Modifier,
	})
	return e, nil
}

// GetCveExceptionsByPkg 查询包上的例外
// 只返回查询错误，结果列表不返回给调用方；需要列表时用 GetCveExceptionsByCveName 或仓库层 GetByPkgID
func (m *CveExceptionsManager) GetCveExceptionsByPkg(ctx context.Context, pkg *vuln.Pkg) error {
	if pkg == nil {
		err := system.NewValidationError("Pkg object is not valid")
		logger.LogError(err, "get_cve_exceptions_by_pkg", "SERVICE", nil)
		return err
	}
	list, err := m.repo.GetByPkgID(ctx, pkg.ID)
	if err != nil {
		return err
	}
	logger.LogDebugOperation("get_cve_exceptions_by_pkg", "SERVICE", "Getting exceptions by pkg", map[string]interface{}{
		"pkg_id": pkg.ID,
		"count":  len(list),
	})
	return nil
}

// GetCveExceptionsByCveName 查询某个CVE的全部例外
func (m *CveExceptionsManager) GetCveExceptionsByCveName(ctx context.Context, cveName string) ([]*vuln.CveException, error) {
	return m.repo.GetByCveName(ctx, cveName)
}

// RemoveCveException 删除例外
func (m *CveExceptionsManager) RemoveCveException(ctx context.Context, e *vuln.CveException) error {
	if e == nil || e.ID == 0 {
		err := system.NewValidationError("Exception object is not valid or Exception.id is not set")
		logger.LogError(err, "remove_cve_exception", "SERVICE", nil)
		return err
	}
	if err := m.repo.Delete(ctx, e.ID); err != nil {
		return err
	}
	logger.LogBusinessOperation("remove_cve_exception", "SERVICE", "success", "cve exception removed", map[string]interface{}{
		"id":       e.ID,
		"cve_name": e.CveName,
	})
	return nil
}

// GetCveExceptionByID 根据ID获取例外，不存在返回 nil
func (m *CveExceptionsManager) GetCveExceptionByID(ctx context.Context, id uint64) (*vuln.CveException, error) {
	return m.repo.GetByID(ctx, id)
}
