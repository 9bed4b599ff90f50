/**
 * 仓库层:CVE例外数据访问
 * @description: cve_exceptions 表增删查，pkgs 表基础读写
 * @func: 单纯数据访问,不包含业务逻辑
 */
package vuln

import (
	"context"
	"errors"

	"github.com/faust64/pakiti3/internal/model/vuln"
	"github.com/faust64/pakiti3/internal/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CveExceptionRepository CVE例外仓库
type CveExceptionRepository struct {
	db *gorm.DB
}

// NewCveExceptionRepository 创建 CveExceptionRepository 实例
func NewCveExceptionRepository(db *gorm.DB) *CveExceptionRepository {
	return &CveExceptionRepository{db: db}
}

// Create 创建例外
func (r *CveExceptionRepository) Create(ctx context.Context, e *vuln.CveException) error {
	if e == nil {
		return errors.New("cve exception is nil")
	}
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(e).Error
	if err != nil {
		logger.LogError(err, "create_cve_exception", "REPO", map[string]interface{}{
			"pkg_id":   e.PkgID,
			"cve_name": e.CveName,
		})
		return err
	}
	return nil
}

// GetByID 根据ID获取例外
func (r *CveExceptionRepository) GetByID(ctx context.Context, id uint64) (*vuln.CveException, error) {
	var e vuln.CveException
	err := r.db.WithContext(ctx).First(&e, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logger.LogError(err, "get_cve_exception_by_id", "REPO", map[string]interface{}{
			"id": id,
		})
		return nil, err
	}
	return &e, nil
}

// GetByPkgID 获取某个包上的全部例外
func (r *CveExceptionRepository) GetByPkgID(ctx context.Context, pkgID uint64) ([]*vuln.CveException, error) {
	var list []*vuln.CveException
	err := r.db.WithContext(ctx).Where("pkg_id = ?", pkgID).Order("id").Find(&list).Error
	if err != nil {
		logger.LogError(err, "get_cve_exceptions_by_pkg_id", "REPO", map[string]interface{}{
			"pkg_id": pkgID,
		})
		return nil, err
	}
	return list, nil
}

// GetByCveName 获取某个CVE的全部例外
func (r *CveExceptionRepository) GetByCveName(ctx context.Context, cveName string) ([]*vuln.CveException, error) {
	var list []*vuln.CveException
	err := r.db.WithContext(ctx).Where("cve_name = ?", cveName).Order("id").Find(&list).Error
	if err != nil {
		logger.LogError(err, "get_cve_exceptions_by_cve_name", "REPO", map[string]interface{}{
			"cve_name": cveName,
		})
		return nil, err
	}
	return list, nil
}

// Delete 删除例外
func (r *CveExceptionRepository) Delete(ctx context.Context, id uint64) error {
	err := r.db.WithContext(ctx).Delete(&vuln.CveException{}, id).Error
	if err != nil {
		logger.LogError(err, "delete_cve_exception", "REPO", map[string]interface{}{
			"id": id,
		})
		return err
	}
	return nil
}

// PkgRepository 软件包仓库
type PkgRepository struct {
	db *gorm.DB
}

// NewPkgRepository 创建 PkgRepository 实例
func NewPkgRepository(db *gorm.DB) *PkgRepository {
	return &PkgRepository{db: db}
}

// FirstOrCreate 按 name/version/release/arch/type 查找，不存在则创建
func (r *PkgRepository) FirstOrCreate(ctx context.Context, pkg *vuln.Pkg) error {
	err := r.db.WithContext(ctx).
		Where(vuln.Pkg{Name: pkg.Name, Version: pkg.Version, Release: pkg.Release, Arch: pkg.Arch, Type: pkg.Type}).
		FirstOrCreate(pkg).Error
	if err != nil {
		logger.LogError(err, "first_or_create_pkg", "REPO", map[string]interface{}{
			"name":    pkg.Name,
			"version": pkg.Version,
		})
		return err
	}
	return nil
}

// GetByID 根据ID获取软件包
func (r *PkgRepository) GetByID(ctx context.Context, id uint64) (*vuln.Pkg, error) {
	var pkg vuln.Pkg
	err := r.db.WithContext(ctx).First(&pkg, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logger.LogError(err, "get_pkg_by_id", "REPO", map[string]interface{}{
			"id": id,
		})
		return nil, err
	}
	return &pkg, nil
}

// Delete 删除软件包 (其例外由外键级联删除)
func (r *PkgRepository) Delete(ctx context.Context, id uint64) error {
	err := r.db.WithContext(ctx).Delete(&vuln.Pkg{}, id).Error
	if err != nil {
		logger.LogError(err, "delete_pkg", "REPO", map[string]interface{}{
			"id": id,
		})
		return err
	}
	return nil
}
