package config

import (
	"fmt"
	"time"
)

// Config 应用配置结构体 [这里的字段和配置文件中一级字段保持一致，否则会没有值]
type Config struct {
	Database DatabaseConfig `yaml:"database" mapstructure:"database"` // 数据库配置
	Cache    CacheConfig    `yaml:"cache" mapstructure:"cache"`       // 维度缓存配置
	Log      LogConfig      `yaml:"log" mapstructure:"log"`           // 日志配置
	App      AppConfig      `yaml:"app" mapstructure:"app"`           // 应用配置
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver string       `yaml:"driver" mapstructure:"driver"` // 数据库驱动: mysql, sqlite
	MySQL  MySQLConfig  `yaml:"mysql" mapstructure:"mysql"`   // MySQL配置
	SQLite SQLiteConfig `yaml:"sqlite" mapstructure:"sqlite"` // SQLite配置
	Redis  RedisConfig  `yaml:"redis" mapstructure:"redis"`   // Redis配置
}

// MySQLConfig MySQL数据库配置
type MySQLConfig struct {
	Host            string        `yaml:"host" mapstructure:"host"`                             // 数据库主机
	Port            int           `yaml:"port" mapstructure:"port"`                             // 数据库端口
	Username        string        `yaml:"username" mapstructure:"username"`                     // 用户名
	Password        string        `yaml:"password" mapstructure:"password"`                     // 密码
	Database        string        `yaml:"database" mapstructure:"database"`                     // 数据库名
	Charset         string        `yaml:"charset" mapstructure:"charset"`                       // 字符集
	ParseTime       bool          `yaml:"parse_time" mapstructure:"parse_time"`                 // 是否解析时间
	Loc             string        `yaml:"loc" mapstructure:"loc"`                               // 时区
	MaxIdleConns    int           `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`         // 最大空闲连接数
	MaxOpenConns    int           `yaml:"max_open_conns" mapstructure:"max_open_conns"`         // 最大打开连接数
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" mapstructure:"conn_max_lifetime"`   // 连接最大生存时间
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time" mapstructure:"conn_max_idle_time"` // 连接最大空闲时间
	LogLevel        string        `yaml:"log_level" mapstructure:"log_level"`                   // GORM日志级别
}

// SQLiteConfig SQLite数据库配置 (单机部署/测试)
type SQLiteConfig struct {
	Path     string `yaml:"path" mapstructure:"path"`           // 数据库文件路径, ":memory:" 表示内存库
	LogLevel string `yaml:"log_level" mapstructure:"log_level"` // GORM日志级别
}

// RedisConfig Redis配置
type RedisConfig struct {
	Host         string        `yaml:"host" mapstructure:"host"`                     // Redis主机
	Port         int           `yaml:"port" mapstructure:"port"`                     // Redis端口
	Password     string        `yaml:"password" mapstructure:"password"`             // Redis密码
	Database     int           `yaml:"database" mapstructure:"database"`             // Redis数据库索引
	PoolSize     int           `yaml:"pool_size" mapstructure:"pool_size"`           // 连接池大小
	MinIdleConns int           `yaml:"min_idle_conns" mapstructure:"min_idle_conns"` // 最小空闲连接数
	DialTimeout  time.Duration `yaml:"dial_timeout" mapstructure:"dial_timeout"`     // 连接超时
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`     // 读取超时
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`   // 写入超时
	PoolTimeout  time.Duration `yaml:"pool_timeout" mapstructure:"pool_timeout"`     // 连接池超时
	IdleTimeout  time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`     // 空闲超时
}

// CacheConfig 维度(Os/Arch/Domain)名称 -> ID 缓存配置
type CacheConfig struct {
	Driver    string        `yaml:"driver" mapstructure:"driver"`         // none, lru, redis
	Size      int           `yaml:"size" mapstructure:"size"`             // LRU 最大条目数
	TTL       time.Duration `yaml:"ttl" mapstructure:"ttl"`               // 条目过期时间
	KeyPrefix string        `yaml:"key_prefix" mapstructure:"key_prefix"` // redis 键前缀
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `yaml:"level" mapstructure:"level"`             // 日志级别
	Format     string `yaml:"format" mapstructure:"format"`           // 日志格式: json, text
	Output     string `yaml:"output" mapstructure:"output"`           // 输出方式: stdout, stderr, file
	FilePath   string `yaml:"file_path" mapstructure:"file_path"`     // 日志文件路径
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"`       // 单个日志文件最大大小(MB)
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"` // 保留的日志文件数量
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"`         // 日志文件保留天数
	Compress   bool   `yaml:"compress" mapstructure:"compress"`       // 是否压缩日志文件
	Caller     bool   `yaml:"caller" mapstructure:"caller"`           // 是否显示调用者信息
}

// AppConfig 应用配置
type AppConfig struct {
	Name        string `yaml:"name" mapstructure:"name"`                 // 应用名称
	Version     string `yaml:"version" mapstructure:"version"`           // 应用版本
	Environment string `yaml:"environment" mapstructure:"environment"`   // 运行环境
	Debug       bool   `yaml:"debug" mapstructure:"debug"`               // 是否调试模式
	WatchConfig bool   `yaml:"watch_config" mapstructure:"watch_config"` // 是否监听配置文件变化
}

// IsDevelopment 判断是否为开发环境
func (a *AppConfig) IsDevelopment() bool {
	return a.Environment == "development"
}

// IsProduction 判断是否为生产环境
func (a *AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

// IsTest 判断是否为测试环境
func (a *AppConfig) IsTest() bool {
	return a.Environment == "test"
}

// GetMySQLDSN 获取MySQL数据源名称
func (m *MySQLConfig) GetMySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=%s",
		m.Username, m.Password, m.Host, m.Port, m.Database, m.Charset, m.ParseTime, m.Loc)
}

// GetRedisAddress 获取Redis地址
func (r *RedisConfig) GetRedisAddress() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
