package host

import "github.com/faust64/pakiti3/internal/model/basemodel"

// Tag 主机标签
type Tag struct {
	basemodel.BaseModel

	Name        string `json:"name" gorm:"size:63;not null;uniqueIndex;comment:标签名称"`
	Description string `json:"description" gorm:"size:255;comment:描述"`
	Enabled     bool   `json:"enabled" gorm:"not null;comment:是否启用"`
}

func (Tag) TableName() string {
	return "tags"
}

// HostTag 主机-标签关联表 (联合主键)
// 主机或标签删除时关联行由外键级联删除
type HostTag struct {
	HostID uint64 `json:"host_id" gorm:"primaryKey;autoIncrement:false"`
	TagID  uint64 `json:"tag_id" gorm:"primaryKey;autoIncrement:false;index"`

	Host *Host `json:"-" gorm:"foreignKey:HostID;constraint:OnDelete:CASCADE"`
	Tag  *Tag  `json:"-" gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE"`
}

func (HostTag) TableName() string {
	return "host_tags"
}
