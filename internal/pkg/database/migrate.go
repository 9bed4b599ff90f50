package database

import (
	"fmt"

	"github.com/faust64/pakiti3/internal/model/host"
	"github.com/faust64/pakiti3/internal/model/vuln"

	"gorm.io/gorm"
)

// Models 需要迁移的全部模型，依赖顺序由 GORM 自动调整
func Models() []interface{} {
	return []interface{}{
		&host.Os{},
		&host.Arch{},
		&host.Domain{},
		&host.Host{},
		&host.Report{},
		&host.Tag{},
		&host.HostTag{},
		&vuln.Pkg{},
		&vuln.CveException{},
	}
}

// AutoMigrate 创建或更新表结构 (含 ON DELETE CASCADE 外键)
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// DropAll 删除全部表
func DropAll(db *gorm.DB) error {
	models := Models()
	// 逆序删除，先删引用方
	for i := len(models) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(models[i]); err != nil {
			return fmt.Errorf("failed to drop table for %T: %w", models[i], err)
		}
	}
	return nil
}
