package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var (
	// GlobalConfig 全局配置实例
	GlobalConfig *Config
)

// LoadConfig 加载配置文件
// configPath: 配置文件目录，如果为空则使用默认路径
// env: 环境标识，支持 development, test, production
func LoadConfig(configPath, env string) (*Config, error) {
	// 设置默认环境
	if env == "" {
		env = getEnvFromEnvironment()
	}

	v := viper.New()
	v.SetConfigType("yaml")

	if configPath == "" {
		configPath = getDefaultConfigPath()
	}

	// 根据环境选择配置文件
	configFile := getConfigFileName(configPath, env)
	v.SetConfigFile(configFile)

	// 设置环境变量前缀
	v.SetEnvPrefix("PAKITI")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	bindEnvironmentVariables(v)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	GlobalConfig = &config

	return &config, nil
}

// getEnvFromEnvironment 从环境变量获取环境标识
func getEnvFromEnvironment() string {
	env := GetEnvString("ENV", "")
	if env == "" {
		env = os.Getenv("GO_ENV")
	}
	if env == "" {
		env = "development" // 默认开发环境
	}
	return env
}

// getDefaultConfigPath 获取默认配置文件路径
func getDefaultConfigPath() string {
	return GetEnvString("CONFIG_PATH", "configs")
}

// getConfigFileName 根据环境获取配置文件名
func getConfigFileName(configPath, env string) string {
	var configFile string

	switch env {
	case "production", "prod":
		configFile = filepath.Join(configPath, "config.prod.yaml")
	case "test", "testing":
		configFile = filepath.Join(configPath, "config.test.yaml")
	default:
		configFile = filepath.Join(configPath, "config.yaml")
	}

	// 检查文件是否存在，如果不存在则使用默认配置文件
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		defaultConfig := filepath.Join(configPath, "config.yaml")
		if _, err := os.Stat(defaultConfig); err == nil {
			return defaultConfig
		}
	}

	return configFile
}

// bindEnvironmentVariables 绑定环境变量
func bindEnvironmentVariables(v *viper.Viper) {
	// 数据库配置
	v.BindEnv("database.driver", "PAKITI_DB_DRIVER")
	v.BindEnv("database.mysql.host", "PAKITI_MYSQL_HOST")
	v.BindEnv("database.mysql.port", "PAKITI_MYSQL_PORT")
	v.BindEnv("database.mysql.username", "PAKITI_MYSQL_USERNAME")
	v.BindEnv("database.mysql.password", "PAKITI_MYSQL_PASSWORD")
	v.BindEnv("database.mysql.database", "PAKITI_MYSQL_DATABASE")
	v.BindEnv("database.sqlite.path", "PAKITI_SQLITE_PATH")

	v.BindEnv("database.redis.host", "PAKITI_REDIS_HOST")
	v.BindEnv("database.redis.port", "PAKITI_REDIS_PORT")
	v.BindEnv("database.redis.password", "PAKITI_REDIS_PASSWORD")
	v.BindEnv("database.redis.database", "PAKITI_REDIS_DATABASE")

	// 缓存配置
	v.BindEnv("cache.driver", "PAKITI_CACHE_DRIVER")

	// 日志配置
	v.BindEnv("log.level", "PAKITI_LOG_LEVEL")

	// 应用配置
	v.BindEnv("app.environment", "PAKITI_APP_ENVIRONMENT")
	v.BindEnv("app.debug", "PAKITI_APP_DEBUG")
}

// setDefaults 设置默认值，配置文件中缺省的字段使用这些值
func setDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.mysql.port", 3306)
	v.SetDefault("database.mysql.charset", "utf8mb4")
	v.SetDefault("database.mysql.parse_time", true)
	v.SetDefault("database.mysql.loc", "Local")
	v.SetDefault("database.mysql.max_idle_conns", 10)
	v.SetDefault("database.mysql.max_open_conns", 100)
	v.SetDefault("database.mysql.conn_max_lifetime", time.Hour)
	v.SetDefault("database.mysql.log_level", "warn")
	v.SetDefault("database.sqlite.path", "pakiti.db")
	v.SetDefault("database.sqlite.log_level", "warn")
	v.SetDefault("database.redis.port", 6379)

	v.SetDefault("cache.driver", "lru")
	v.SetDefault("cache.size", 1024)
	v.SetDefault("cache.ttl", 10*time.Minute)
	v.SetDefault("cache.key_prefix", "pakiti:dim:")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("app.name", "pakiti")
}

// validateConfig 验证配置
func validateConfig(config *Config) error {
	// 验证数据库配置
	switch config.Database.Driver {
	case "mysql":
		if config.Database.MySQL.Host == "" {
			return fmt.Errorf("mysql host is required")
		}
		if config.Database.MySQL.Database == "" {
			return fmt.Errorf("mysql database name is required")
		}
	case "sqlite":
		if strings.TrimSpace(config.Database.SQLite.Path) == "" {
			return fmt.Errorf("sqlite path is required")
		}
	default:
		return fmt.Errorf("invalid database driver: %s", config.Database.Driver)
	}

	// 验证缓存配置
	validCacheDrivers := []string{"none", "lru", "redis"}
	if !contains(validCacheDrivers, config.Cache.Driver) {
		return fmt.Errorf("invalid cache driver: %s", config.Cache.Driver)
	}
	if config.Cache.Driver == "lru" && config.Cache.Size <= 0 {
		return fmt.Errorf("cache size must be positive for lru cache")
	}
	if config.Cache.Driver == "redis" && config.Database.Redis.Host == "" {
		return fmt.Errorf("redis host is required when cache driver is redis")
	}

	// 验证日志配置
	validLogLevels := []string{"debug", "info", "warn", "error", "fatal", "panic"}
	if !contains(validLogLevels, config.Log.Level) {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	validLogFormats := []string{"json", "text"}
	if !contains(validLogFormats, config.Log.Format) {
		return fmt.Errorf("invalid log format: %s", config.Log.Format)
	}

	validLogOutputs := []string{"stdout", "stderr", "file"}
	if !contains(validLogOutputs, config.Log.Output) {
		return fmt.Errorf("invalid log output: %s", config.Log.Output)
	}

	// 如果日志输出到文件，验证文件路径
	if config.Log.Output == "file" && config.Log.FilePath == "" {
		return fmt.Errorf("log file path is required when output is file")
	}

	return nil
}

// contains 检查切片是否包含指定元素
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// GetConfig 获取全局配置
func GetConfig() *Config {
	return GlobalConfig
}

// MustLoadConfig 加载配置，如果失败则panic
func MustLoadConfig(configPath, env string) *Config {
	config, err := LoadConfig(configPath, env)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}
	return config
}

// GetEnv 获取当前环境
func GetEnv() string {
	if GlobalConfig != nil && GlobalConfig.App.Environment != "" {
		return GlobalConfig.App.Environment
	}
	return getEnvFromEnvironment()
}
