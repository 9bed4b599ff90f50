/*
*
  - 数据库迁移工具
  - @description: 创建/更新表结构 (含级联删除外键)，可选填充演示数据
  - @usage: migrate -config=configs -env=dev -seed=true -drop=false
    -config string
    配置文件目录 (默认读取 PAKITI_CONFIG_PATH，否则为 configs)
    -drop
    是否先删除表（危险操作）
    -env string
    环境标识 (development, test, production) (default "development")
    -seed
    是否填充演示数据
    -verbose
    是否显示详细日志

示例:
migrate -env=test -seed=true        # 测试环境迁移并填充数据
migrate -env=production -seed=false # 生产环境仅迁移表结构
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/faust64/pakiti3/internal/config"
	"github.com/faust64/pakiti3/internal/pkg/database"
	"github.com/faust64/pakiti3/internal/pkg/logger"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MigrateOptions 迁移选项配置
type MigrateOptions struct {
	ConfigPath  string // 配置文件目录
	Environment string // 环境标识
	SeedData    bool   // 是否填充演示数据
	DropFirst   bool   // 是否先删除表（危险操作）
	Verbose     bool   // 是否显示详细日志
}

func main() {
	opts := parseFlags()

	cfg, err := config.LoadConfig(opts.ConfigPath, opts.Environment)
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}
	if opts.Verbose {
		cfg.Log.Level = "debug"
	}

	logManager, err := logger.InitLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("日志初始化失败: %v", err)
	}

	logManager.GetLogger().WithFields(logrus.Fields{
		"path":        "cmd/migrate/main.go",
		"operation":   "database_migration",
		"option":      "migrate.start",
		"func_name":   "main",
		"environment": opts.Environment,
		"driver":      cfg.Database.Driver,
		"seed_data":   opts.SeedData,
		"drop_first":  opts.DropFirst,
	}).Info("开始数据库迁移")

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		logManager.GetLogger().WithFields(logrus.Fields{
			"path":      "cmd/migrate/main.go",
			"operation": "database_connection",
			"option":    "database.NewConnection",
			"func_name": "main",
			"error":     err.Error(),
		}).Fatal("数据库连接失败")
	}
	defer database.Close(db)

	if err := performMigration(context.Background(), db, opts, logManager); err != nil {
		logManager.GetLogger().WithFields(logrus.Fields{
			"path":      "cmd/migrate/main.go",
			"operation": "database_migration",
			"option":    "performMigration",
			"func_name": "main",
			"error":     err.Error(),
		}).Fatal("数据库迁移失败")
	}

	logManager.GetLogger().WithFields(logrus.Fields{
		"path":      "cmd/migrate/main.go",
		"operation": "database_migration",
		"option":    "migrate.complete",
		"func_name": "main",
	}).Info("数据库迁移完成")
}

// parseFlags 解析命令行参数
func parseFlags() *MigrateOptions {
	opts := &MigrateOptions{}

	flag.StringVar(&opts.ConfigPath, "config", "", "配置文件目录")
	flag.StringVar(&opts.Environment, "env", "development", "环境标识 (development, test, production)")
	flag.BoolVar(&opts.SeedData, "seed", false, "是否填充演示数据")
	flag.BoolVar(&opts.DropFirst, "drop", false, "是否先删除表（危险操作）")
	flag.BoolVar(&opts.Verbose, "verbose", false, "是否显示详细日志")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Pakiti 数据库迁移工具\n\n")
		fmt.Fprintf(os.Stderr, "用法: %s [选项]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "选项:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\n示例:\n")
		fmt.Fprintf(os.Stderr, "  %s -env=test -seed=true        # 测试环境迁移并填充数据\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -env=production -seed=false # 生产环境仅迁移表结构\n", os.Args[0])
	}

	flag.Parse()
	return opts
}

// performMigration 执行数据库迁移
func performMigration(ctx context.Context, db *gorm.DB, opts *MigrateOptions, logManager *logger.LoggerManager) error {
	if opts.DropFirst {
		logManager.GetLogger().WithFields(logrus.Fields{
			"path":      "cmd/migrate/main.go",
			"operation": "drop_tables",
			"func_name": "performMigration",
		}).Warn("开始删除数据库表")
		if err := database.DropAll(db); err != nil {
			return fmt.Errorf("删除表失败: %w", err)
		}
	}

	logManager.GetLogger().Info("开始执行模型迁移...")
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("模型迁移失败: %w", err)
	}

	if opts.SeedData {
		if err := NewDataSeeder(db, logManager).SeedAll(ctx); err != nil {
			return fmt.Errorf("数据填充失败: %w", err)
		}
	}
	return nil
}
