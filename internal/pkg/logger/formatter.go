// 结构化日志辅助函数
package logger

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// FormatTimestamp 格式化时间戳为统一的毫秒精度格式
func FormatTimestamp(t time.Time) string {
	return t.Format(timestampFormat)
}

// LogType 日志类型枚举
type LogType string

const (
	// BusinessLog 业务日志 - 记录管理器层的业务操作（主机入库、例外创建等）
	BusinessLog LogType = "business"
	// ErrorLog 错误日志 - 记录数据访问层和业务层的错误
	ErrorLog LogType = "error"
	// SystemLog 系统日志 - 记录组件启动、迁移等系统事件
	SystemLog LogType = "system"
	// DebugLog 调试日志
	DebugLog LogType = "debug"
)

// LogBusinessOperation 记录业务操作日志
// result 为 success 时记 Info，否则记 Warn
func LogBusinessOperation(operation, layer, result, message string, extraFields map[string]interface{}) {
	if LoggerInstance == nil {
		return
	}

	fields := logrus.Fields{
		"type":      BusinessLog,
		"operation": operation,
		"layer":     layer,
		"result":    result,
	}
	for k, v := range extraFields {
		fields[k] = v
	}

	if result == "success" {
		LoggerInstance.logger.WithFields(fields).Info(message)
	} else {
		LoggerInstance.logger.WithFields(fields).Warn(message)
	}
}

// LogDebugOperation 记录调试级别的操作轨迹
func LogDebugOperation(operation, layer, message string, extraFields map[string]interface{}) {
	if LoggerInstance == nil {
		return
	}

	fields := logrus.Fields{
		"type":      DebugLog,
		"operation": operation,
		"layer":     layer,
	}
	for k, v := range extraFields {
		fields[k] = v
	}

	LoggerInstance.logger.WithFields(fields).Debug(message)
}

// LogError 记录错误日志
// layer 标识出错的层次 (REPO / SERVICE / SETUP)
func LogError(err error, operation, layer string, extraFields map[string]interface{}) {
	if LoggerInstance == nil || err == nil {
		return
	}

	fields := logrus.Fields{
		"type":      ErrorLog,
		"operation": operation,
		"layer":     layer,
		"error":     err.Error(),
	}
	for k, v := range extraFields {
		fields[k] = v
	}

	LoggerInstance.logger.WithFields(fields).Errorf("%s failed: %s", operation, err.Error())
}

// LogSystemEvent 记录系统事件日志
// 用于记录启动、关闭、迁移、组件状态变化等系统级事件
func LogSystemEvent(component, event, message string, level logrus.Level, extraFields map[string]interface{}) {
	if LoggerInstance == nil {
		return
	}

	fields := logrus.Fields{
		"type":      SystemLog,
		"component": component,
		"event":     event,
		"detail":    message,
	}
	for k, v := range extraFields {
		fields[k] = v
	}

	msg := fmt.Sprintf("System event: %s - %s", component, event)
	entry := LoggerInstance.logger.WithFields(fields)
	switch level {
	case logrus.DebugLevel:
		entry.Debug(msg)
	case logrus.WarnLevel:
		entry.Warn(msg)
	case logrus.ErrorLevel:
		entry.Error(msg)
	case logrus.FatalLevel:
		entry.Fatal(msg)
	default:
		entry.Info(msg)
	}
}
