/*
ConfigWatcher 配置文件监听器
监听配置文件所在目录，配置文件写入或重建后（防抖 500ms）重新加载配置，
并把旧配置和新配置交给注册的回调函数。

注意事项：
- 只处理 config*.yaml / config*.yml 文件的事件。
- 回调失败只记录日志，不影响其他回调。
*/
package config

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify" // 文件系统监听库
)

// ConfigWatcher 配置文件监听器
type ConfigWatcher struct {
	watcher    *fsnotify.Watcher  // 文件系统监听器
	configPath string             // 配置文件目录
	env        string             // 环境标识
	callbacks  []ReloadCallback   // 重载回调函数列表
	mu         sync.RWMutex       // 读写锁
	ctx        context.Context    // 上下文
	cancel     context.CancelFunc // 取消函数
	done       chan struct{}      // 完成信号
}

// ReloadCallback 配置重载回调函数类型
type ReloadCallback func(oldConfig, newConfig *Config) error

// NewConfigWatcher 创建配置文件监听器
func NewConfigWatcher(configPath, env string) (*ConfigWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	cw := &ConfigWatcher{
		watcher:    watcher,
		configPath: configPath,
		env:        env,
		callbacks:  make([]ReloadCallback, 0),
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
	}

	return cw, nil
}

// Start 启动配置文件监听
func (cw *ConfigWatcher) Start() error {
	if cw.configPath == "" {
		cw.configPath = getDefaultConfigPath()
	}

	if err := cw.watcher.Add(cw.configPath); err != nil {
		return fmt.Errorf("failed to add config path to watcher: %w", err)
	}

	go cw.watchLoop()

	log.Printf("Config watcher started, watching path: %s", cw.configPath)
	return nil
}

// Stop 停止配置文件监听
func (cw *ConfigWatcher) Stop() error {
	cw.cancel()

	select {
	case <-cw.done:
	case <-time.After(5 * time.Second):
		log.Println("Config watcher stop timeout")
	}

	return cw.watcher.Close()
}

// AddCallback 添加配置重载回调函数
func (cw *ConfigWatcher) AddCallback(callback ReloadCallback) {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	cw.callbacks = append(cw.callbacks, callback)
}

// watchLoop 监听循环
func (cw *ConfigWatcher) watchLoop() {
	defer close(cw.done)

	// 防抖动定时器
	debounceTimer := time.NewTimer(0)
	if !debounceTimer.Stop() {
		<-debounceTimer.C
	}

	for {
		select {
		case <-cw.ctx.Done():
			log.Println("Config watcher stopped")
			return

		case event, ok := <-cw.watcher.Events:
			if !ok {
				log.Println("Config watcher events channel closed")
				return
			}

			// 只处理写入和创建事件
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				if isConfigFile(event.Name) {
					log.Printf("Config file changed: %s", event.Name)
					debounceTimer.Reset(500 * time.Millisecond)
				}
			}

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				log.Println("Config watcher errors channel closed")
				return
			}
			log.Printf("Config watcher error: %v", err)

		case <-debounceTimer.C:
			if err := cw.reloadConfig(); err != nil {
				log.Printf("Failed to reload config: %v", err)
			}
		}
	}
}

// isConfigFile 检查是否为配置文件
func isConfigFile(filename string) bool {
	baseName := filepath.Base(filename)

	ext := filepath.Ext(baseName)
	if ext != ".yaml" && ext != ".yml" {
		return false
	}

	matched, _ := filepath.Match("config*"+ext, baseName)
	return matched
}

// reloadConfig 重载配置
func (cw *ConfigWatcher) reloadConfig() error {
	oldConfig := GlobalConfig

	newConfig, err := LoadConfig(cw.configPath, cw.env)
	if err != nil {
		return fmt.Errorf("failed to load new config: %w", err)
	}

	cw.mu.RLock()
	callbacks := make([]ReloadCallback, len(cw.callbacks))
	copy(callbacks, cw.callbacks)
	cw.mu.RUnlock()

	for _, callback := range callbacks {
		if err := callback(oldConfig, newConfig); err != nil {
			log.Printf("Config reload callback error: %v", err)
		}
	}

	log.Println("Config reloaded successfully")
	return nil
}

// DatabaseConfigReloadCallback 数据库配置重载回调
// 连接池不支持热替换，这里只提示需要重启
func DatabaseConfigReloadCallback(oldConfig, newConfig *Config) error {
	if oldConfig == nil {
		return nil
	}

	if oldConfig.Database.Driver != newConfig.Database.Driver ||
		oldConfig.Database.MySQL.Host != newConfig.Database.MySQL.Host ||
		oldConfig.Database.MySQL.Port != newConfig.Database.MySQL.Port ||
		oldConfig.Database.MySQL.Database != newConfig.Database.MySQL.Database ||
		oldConfig.Database.SQLite.Path != newConfig.Database.SQLite.Path {
		log.Println("Database configuration changed, restart required to take effect")
	}

	return nil
}
