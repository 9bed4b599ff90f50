package database

import (
	"fmt"

	"github.com/faust64/pakiti3/internal/config"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteConnection 创建SQLite数据库连接 (纯Go驱动，单机部署和测试使用)
// 外键约束在SQLite中默认关闭，这里显式打开，删除主机时依赖 ON DELETE CASCADE
func NewSQLiteConnection(cfg *config.SQLiteConfig) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: logger.Default.LogMode(parseLogLevel(cfg.LogLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database %s: %w", cfg.Path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	// 内存库每个连接都是独立的数据库，只保留一个连接
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("failed to enable SQLite foreign keys: %w", err)
	}

	return db, nil
}
