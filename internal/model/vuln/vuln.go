/**
 * 模型:漏洞例外
 * @description: 软件包与针对某个CVE的人工例外记录
 */
package vuln

import (
	"github.com/faust64/pakiti3/internal/model/basemodel"
)

// Pkg 软件包 (name/version/release/arch/type 唯一)
type Pkg struct {
	ID      uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	Name    string `json:"name" gorm:"size:254;not null;uniqueIndex:idx_pkg_nvrat,priority:1;comment:包名"`
	Version string `json:"version" gorm:"size:63;not null;uniqueIndex:idx_pkg_nvrat,priority:2;comment:版本"`
	Release string `json:"release" gorm:"size:63;not null;uniqueIndex:idx_pkg_nvrat,priority:3;comment:发行号"`
	Arch    string `json:"arch" gorm:"size:10;not null;uniqueIndex:idx_pkg_nvrat,priority:4;comment:架构"`
	Type    string `json:"type" gorm:"size:10;not null;uniqueIndex:idx_pkg_nvrat,priority:5;comment:包类型(rpm/dpkg)"`
}

func (Pkg) TableName() string {
	return "pkgs"
}

// CveException CVE例外
// 将某个包上的某个CVE标记为不适用，删除包时级联删除
type CveException struct {
	basemodel.BaseModel

	PkgID     uint64 `json:"pkg_id" gorm:"not null;index;comment:软件包ID"`
	CveName   string `json:"cve_name" gorm:"size:63;not null;index;comment:CVE编号"`
	OsGroupID uint64 `json:"os_group_id" gorm:"index;comment:操作系统分组ID"`
	Reason    string `json:"reason" gorm:"size:255;comment:例外原因"`
	Modifier  string `json:"modifier" gorm:"size:255;comment:操作人"`

	Pkg *Pkg `json:"-" gorm:"foreignKey:PkgID;constraint:OnDelete:CASCADE"`
}

func (CveException) TableName() string {
	return "cve_exceptions"
}
