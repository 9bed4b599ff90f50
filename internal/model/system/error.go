/**
 * 模型:错误定义
 * @description: 管理器层同步返回的错误类型
 * @func: ValidationError (参数缺失/无效)、NotFoundError (引用的实体不存在)
 */
package system

import (
	"errors"
	"fmt"
)

// ValidationError 验证错误结构体
type ValidationError struct {
	Field   string `json:"field"`   // 字段名
	Message string `json:"message"` // 错误消息
}

// NewValidationError 创建验证错误
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		Message: message,
	}
}

// NewFieldValidationError 创建带字段名的验证错误
func NewFieldValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Error 实现error接口
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidationError 检查是否为验证错误 (支持包装后的错误)
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// NotFoundError 引用的实体不存在
type NotFoundError struct {
	Entity string `json:"entity"` // 实体类型 (tag / host ...)
	Key    string `json:"key"`    // 查找键
}

// NewNotFoundError 创建不存在错误
func NewNotFoundError(entity, key string) *NotFoundError {
	return &NotFoundError{Entity: entity, Key: key}
}

// Error 实现error接口
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("the %s %s does not exist", e.Entity, e.Key)
}

// IsNotFoundError 检查是否为不存在错误
func IsNotFoundError(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
