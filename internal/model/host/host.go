/**
 * 模型:主机
 * @description: 上报客户端的主机记录及其维度表 (操作系统/架构/域)
 * @func: Host、Os、Arch、Domain、Report
 */
package host

import (
	"time"

	"github.com/faust64/pakiti3/internal/model/basemodel"
)

// Host 主机表
// 同一主机的判定：hostname、reporter_hostname、ip、reporter_ip 四个字段完全相同
type Host struct {
	basemodel.BaseModel

	Hostname         string  `json:"hostname" gorm:"column:hostname;size:255;not null;index:idx_host_identity,priority:1;comment:主机名"`
	ReporterHostname string  `json:"reporter_hostname" gorm:"column:reporter_hostname;size:255;index:idx_host_identity,priority:2;comment:上报方主机名"`
	IP               string  `json:"ip" gorm:"column:ip;size:50;index:idx_host_identity,priority:3;comment:IP地址"`
	ReporterIP       string  `json:"reporter_ip" gorm:"column:reporter_ip;size:50;index:idx_host_identity,priority:4;comment:上报方IP地址"`
	Kernel           string  `json:"kernel" gorm:"column:kernel;size:64;comment:内核版本"`
	Type             string  `json:"type" gorm:"column:type;size:32;comment:客户端类型"`
	OsID             uint64  `json:"os_id" gorm:"column:os_id;not null;index;comment:操作系统ID"`
	ArchID           uint64  `json:"arch_id" gorm:"column:arch_id;not null;index;comment:架构ID"`
	DomainID         uint64  `json:"domain_id" gorm:"column:domain_id;not null;index;comment:域ID"`
	LastReportID     *uint64 `json:"last_report_id" gorm:"column:last_report_id;comment:最近一次报告ID"` // 不建外键，避免与 reports.host_id 形成环

	// 上报时携带的维度名称，入库时解析成ID
	OsName     string `json:"os_name,omitempty" gorm:"-"`
	ArchName   string `json:"arch_name,omitempty" gorm:"-"`
	DomainName string `json:"domain_name,omitempty" gorm:"-"`

	// 读取时回填的关联对象
	Os     *Os     `json:"os,omitempty" gorm:"foreignKey:OsID"`
	Arch   *Arch   `json:"arch,omitempty" gorm:"foreignKey:ArchID"`
	Domain *Domain `json:"domain,omitempty" gorm:"foreignKey:DomainID"`
}

// TableName 定义数据库表名
func (Host) TableName() string {
	return "hosts"
}

// Os 操作系统维度表
type Os struct {
	ID   uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"size:255;not null;uniqueIndex;comment:操作系统名称"`
}

func (Os) TableName() string {
	return "oses"
}

// Arch 架构维度表
type Arch struct {
	ID   uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"size:32;not null;uniqueIndex;comment:架构名称"`
}

func (Arch) TableName() string {
	return "archs"
}

// Domain 域维度表
type Domain struct {
	ID   uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"size:255;not null;uniqueIndex;comment:域名"`
}

func (Domain) TableName() string {
	return "domains"
}

// Report 主机上报记录
// 删除主机时级联删除
type Report struct {
	ID                 uint64     `json:"id" gorm:"primaryKey;autoIncrement"`
	HostID             uint64     `json:"host_id" gorm:"not null;index;comment:主机ID"`
	ReceivedOn         time.Time  `json:"received_on" gorm:"comment:接收时间"`
	ProcessedOn        *time.Time `json:"processed_on" gorm:"comment:处理完成时间"`
	Throughput         int        `json:"throughput" gorm:"comment:处理耗时(秒)"`
	NumOfInstalledPkgs int        `json:"num_of_installed_pkgs" gorm:"comment:已安装包数量"`
	NumOfVulnPkgsSec   int        `json:"num_of_vuln_pkgs_sec" gorm:"comment:存在安全漏洞的包数量"`
	NumOfVulnPkgsTotal int        `json:"num_of_vuln_pkgs_total" gorm:"comment:可更新的包数量"`
	NumOfCves          int        `json:"num_of_cves" gorm:"comment:CVE数量"`

	Host *Host `json:"-" gorm:"foreignKey:HostID;constraint:OnDelete:CASCADE"`
}

func (Report) TableName() string {
	return "reports"
}
