package database

import (
	"fmt"

	"github.com/faust64/pakiti3/internal/config"

	"gorm.io/gorm"
)

// NewConnection 按 database.driver 打开数据库连接
func NewConnection(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	switch cfg.Driver {
	case "mysql", "":
		return NewMySQLConnection(&cfg.MySQL)
	case "sqlite":
		return NewSQLiteConnection(&cfg.SQLite)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

// Close 关闭底层连接池
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
