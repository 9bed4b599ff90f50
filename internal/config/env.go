package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// EnvManager 环境变量管理器
type EnvManager struct {
	prefix string // 环境变量前缀
}

// NewEnvManager 创建环境变量管理器
func NewEnvManager(prefix string) *EnvManager {
	if prefix == "" {
		prefix = "PAKITI"
	}
	return &EnvManager{
		prefix: prefix,
	}
}

// GetString 获取字符串类型环境变量
func (em *EnvManager) GetString(key, defaultValue string) string {
	value := os.Getenv(em.buildEnvKey(key))
	if value == "" {
		return defaultValue
	}
	return value
}

// GetBool 获取布尔类型环境变量
func (em *EnvManager) GetBool(key string, defaultValue bool) bool {
	value := os.Getenv(em.buildEnvKey(key))
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolValue
}

// GetDuration 获取时间间隔类型环境变量
func (em *EnvManager) GetDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(em.buildEnvKey(key))
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

// buildEnvKey 构建环境变量键名
func (em *EnvManager) buildEnvKey(key string) string {
	if em.prefix == "" {
		return key
	}
	return fmt.Sprintf("%s_%s", em.prefix, strings.ToUpper(key))
}

// 全局环境变量管理器实例
var DefaultEnvManager = NewEnvManager("PAKITI")

// GetEnvString 获取字符串类型环境变量
func GetEnvString(key, defaultValue string) string {
	return DefaultEnvManager.GetString(key, defaultValue)
}

// GetEnvBool 获取布尔类型环境变量
func GetEnvBool(key string, defaultValue bool) bool {
	return DefaultEnvManager.GetBool(key, defaultValue)
}

// GetEnvDuration 获取时间间隔类型环境变量
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	return DefaultEnvManager.GetDuration(key, defaultValue)
}

// LoadEnvFile 从.env文件加载环境变量，文件不存在时忽略
func LoadEnvFile(filename string) error {
	if filename == "" {
		filename = ".env"
	}

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read env file %s: %w", filename, err)
	}

	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)

		// 跳过空行和注释行
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid env line %d in file %s: %s", i+1, filename, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// 移除引号
		if len(value) >= 2 {
			if (strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`)) ||
				(strings.HasPrefix(value, "'") && strings.HasSuffix(value, "'")) {
				value = value[1 : len(value)-1]
			}
		}

		// 已存在的环境变量优先
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("failed to set env variable %s: %w", key, err)
		}
	}

	return nil
}
