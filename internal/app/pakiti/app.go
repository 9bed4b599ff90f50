/**
 * 应用装配
 * @description: 加载配置、初始化日志、连接数据库和缓存、装配各模块
 * @func: 调用方 (上报处理、运维工具) 通过 App 取用管理器
 */
package pakiti

import (
	"errors"
	"fmt"

	"github.com/faust64/pakiti3/internal/app/pakiti/setup"
	"github.com/faust64/pakiti3/internal/config"
	"github.com/faust64/pakiti3/internal/pkg/database"
	"github.com/faust64/pakiti3/internal/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App 应用程序结构体
type App struct {
	config  *config.Config
	db      *gorm.DB
	redis   *redis.Client
	watcher *config.ConfigWatcher

	Hosts *setup.HostModule
	Vuln  *setup.VulnModule
}

// NewApp 从配置目录创建应用实例
// 开启 app.watch_config 时监听配置文件，日志配置热加载
func NewApp(configPath, env string) (*App, error) {
	cfg, err := config.LoadConfig(configPath, env)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	app, err := NewAppWithConfig(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.App.WatchConfig {
		if err := app.startWatcher(configPath, env); err != nil {
			_ = app.Close()
			return nil, err
		}
	}
	return app, nil
}

// NewAppWithConfig 使用已加载的配置创建应用实例
func NewAppWithConfig(cfg *config.Config) (*App, error) {
	if _, err := logger.InitLogger(&cfg.Log); err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		logger.LogError(err, "connect_database", "SETUP", map[string]interface{}{
			"driver": cfg.Database.Driver,
		})
		return nil, err
	}

	app := &App{config: cfg, db: db}

	if cfg.Cache.Driver == "redis" {
		client, err := database.NewRedisConnection(&cfg.Database.Redis)
		if err != nil {
			_ = app.Close()
			return nil, err
		}
		app.redis = client
	}

	dimCache, err := setup.BuildDimensionCache(&cfg.Cache, app.redis)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	app.Hosts = setup.BuildHostModule(db, dimCache)
	app.Vuln = setup.BuildVulnModule(db)

	logger.LogSystemEvent("app", "started", "pakiti application initialized", logrus.InfoLevel, map[string]interface{}{
		"environment": cfg.App.Environment,
		"db_driver":   cfg.Database.Driver,
		"cache":       cfg.Cache.Driver,
	})
	return app, nil
}

func (a *App) startWatcher(configPath, env string) error {
	watcher, err := config.NewConfigWatcher(configPath, env)
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	if logger.LoggerInstance != nil {
		watcher.AddCallback(logger.LoggerInstance.ConfigReloadCallback)
	}
	watcher.AddCallback(config.DatabaseConfigReloadCallback)
	if err := watcher.Start(); err != nil {
		return fmt.Errorf("failed to start config watcher: %w", err)
	}
	a.watcher = watcher
	return nil
}

// GetConfig 获取配置
func (a *App) GetConfig() *config.Config {
	return a.config
}

// GetDB 获取数据库连接
func (a *App) GetDB() *gorm.DB {
	return a.db
}

// Close 停止配置监听并关闭数据库和Redis连接
func (a *App) Close() error {
	var errs []error
	if a.watcher != nil {
		errs = append(errs, a.watcher.Stop())
	}
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	errs = append(errs, database.Close(a.db))

	logger.LogSystemEvent("app", "stopped", "pakiti application closed", logrus.InfoLevel, nil)
	return errors.Join(errs...)
}
