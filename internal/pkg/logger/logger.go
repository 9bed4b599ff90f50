// 日志管理器
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/faust64/pakiti3/internal/config"

	"github.com/sirupsen/logrus"
)

// LoggerManager 日志管理器
type LoggerManager struct {
	logger *logrus.Logger
	config *config.LogConfig
}

// LoggerInstance 全局日志实例
var LoggerInstance *LoggerManager

// timestampFormat 毫秒精度时间戳，不显示时区
const timestampFormat = "2006-01-02 15:04:05.000"

// InitLogger 初始化日志管理器
// 根据配置初始化logrus实例，文件输出交给 FileHook 按日志类型分文件写入
func InitLogger(cfg *config.LogConfig) (*LoggerManager, error) {
	if cfg == nil {
		return nil, fmt.Errorf("log config cannot be nil")
	}

	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
		logger.Warnf("Invalid log level '%s', using 'info' as default", cfg.Level)
	}
	logger.SetLevel(level)

	if err := setLogFormatter(logger, cfg); err != nil {
		return nil, fmt.Errorf("failed to set log formatter: %w", err)
	}

	logger.SetOutput(outputWriter(cfg))

	if cfg.Output == "file" {
		logger.AddHook(NewFileHook(cfg))
	}

	logger.SetReportCaller(cfg.Caller)

	lm := &LoggerManager{
		logger: logger,
		config: cfg,
	}

	LoggerInstance = lm

	return lm, nil
}

// setLogFormatter 设置日志格式化器
func setLogFormatter(logger *logrus.Logger, cfg *config.LogConfig) error {
	switch strings.ToLower(cfg.Format) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
				logrus.FieldKeyFunc:  "function",
				logrus.FieldKeyFile:  "file",
			},
		})
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: timestampFormat,
			FullTimestamp:   true,
		})
	default:
		return fmt.Errorf("unsupported log format: %s", cfg.Format)
	}
	return nil
}

// outputWriter 根据配置选择主输出
// file 模式下主输出丢弃，由 FileHook 写文件；debug 级别额外输出到控制台
func outputWriter(cfg *config.LogConfig) io.Writer {
	switch cfg.Output {
	case "stderr":
		return os.Stderr
	case "file":
		if strings.ToLower(cfg.Level) == "debug" {
			return os.Stdout
		}
		return io.Discard
	default:
		return os.Stdout
	}
}

// GetLogger 获取logrus实例
func (lm *LoggerManager) GetLogger() *logrus.Logger {
	return lm.logger
}

// GetConfig 获取日志配置
func (lm *LoggerManager) GetConfig() *config.LogConfig {
	return lm.config
}

// SetOutput 替换主输出（测试中用于捕获日志）
func (lm *LoggerManager) SetOutput(w io.Writer) {
	lm.logger.SetOutput(w)
}

// UpdateConfig 更新日志配置
// 支持运行时更新级别、格式和调用者信息；输出目标变化需要重启
func (lm *LoggerManager) UpdateConfig(newCfg *config.LogConfig) error {
	if newCfg == nil {
		return fmt.Errorf("new config cannot be nil")
	}

	if newCfg.Level != lm.config.Level {
		level, err := logrus.ParseLevel(newCfg.Level)
		if err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
		lm.logger.SetLevel(level)
		lm.logger.Infof("Log level updated from %s to %s", lm.config.Level, newCfg.Level)
	}

	if newCfg.Format != lm.config.Format {
		if err := setLogFormatter(lm.logger, newCfg); err != nil {
			return fmt.Errorf("failed to update log formatter: %w", err)
		}
		lm.logger.Infof("Log format updated from %s to %s", lm.config.Format, newCfg.Format)
	}

	if newCfg.Caller != lm.config.Caller {
		lm.logger.SetReportCaller(newCfg.Caller)
	}

	if newCfg.Output != lm.config.Output || newCfg.FilePath != lm.config.FilePath {
		lm.logger.Warnf("Log output change (%s -> %s) requires restart", lm.config.Output, newCfg.Output)
	}

	lm.config = newCfg
	return nil
}

// ConfigReloadCallback 配置热加载时同步日志配置
func (lm *LoggerManager) ConfigReloadCallback(oldConfig, newConfig *config.Config) error {
	if newConfig == nil {
		return nil
	}
	cfg := newConfig.Log
	return lm.UpdateConfig(&cfg)
}

// Debug 记录调试日志
func Debug(args ...interface{}) {
	if LoggerInstance != nil {
		LoggerInstance.logger.Debug(args...)
	}
}

// Debugf 记录格式化调试日志
func Debugf(format string, args ...interface{}) {
	if LoggerInstance != nil {
		LoggerInstance.logger.Debugf(format, args...)
	}
}

// Info 记录信息日志
func Info(args ...interface{}) {
	if LoggerInstance != nil {
		LoggerInstance.logger.Info(args...)
	}
}

// Infof 记录格式化信息日志
func Infof(format string, args ...interface{}) {
	if LoggerInstance != nil {
		LoggerInstance.logger.Infof(format, args...)
	}
}

// Warnf 记录格式化警告日志
func Warnf(format string, args ...interface{}) {
	if LoggerInstance != nil {
		LoggerInstance.logger.Warnf(format, args...)
	}
}

// Errorf 记录格式化错误日志
func Errorf(format string, args ...interface{}) {
	if LoggerInstance != nil {
		LoggerInstance.logger.Errorf(format, args...)
	}
}

// WithField 添加单个字段
func WithField(key string, value interface{}) *logrus.Entry {
	if LoggerInstance != nil {
		return LoggerInstance.logger.WithField(key, value)
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

// WithFields 添加多个字段
func WithFields(fields logrus.Fields) *logrus.Entry {
	if LoggerInstance != nil {
		return LoggerInstance.logger.WithFields(fields)
	}
	return logrus.NewEntry(logrus.StandardLogger())
}
