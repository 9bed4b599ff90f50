package host

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/faust64/pakiti3/internal/model/system"
	"github.com/faust64/pakiti3/internal/pkg/logger"
)

// DbManager 参数化原生查询
type DbManager struct {
	repo RawQueryRepository
}

// NewDbManager 创建 DbManager 实例
func NewDbManager(repo RawQueryRepository) *DbManager {
	return &DbManager{repo: repo}
}

// QueryToMultiRow 执行查询，返回 列名 -> 值 的行列表
func (m *DbManager) QueryToMultiRow(ctx context.Context, query string, args ...interface{}) ([]map[string]interface{}, error) {
	if strings.TrimSpace(query) == "" {
		return nil, system.NewValidationError("sql query is empty")
	}
	logger.LogDebugOperation("query_to_multi_row", "SERVICE", query, nil)
	return m.repo.QueryToMultiRow(ctx, query, args...)
}

// QueryToSingleValue 执行查询，返回第一行第一列
func (m *DbManager) QueryToSingleValue(ctx context.Context, query string, args ...interface{}) (interface{}, error) {
	if strings.TrimSpace(query) == "" {
		return nil, system.NewValidationError("sql query is empty")
	}
	logger.LogDebugOperation("query_to_single_value", "SERVICE", query, nil)
	return m.repo.QueryToSingleValue(ctx, query, args...)
}

// toUint64 将驱动返回的ID列转换为 uint64
// mysql 文本协议返回 []byte，预处理语句和 sqlite 返回 int64
func toUint64(v interface{}) (uint64, error) {
	switch n := v.(type) {
	case int64:
		return uint64(n), nil
	case uint64:
		return n, nil
	case int:
		return uint64(n), nil
	case int32:
		return uint64(n), nil
	case uint32:
		return uint64(n), nil
	case []byte:
		return strconv.ParseUint(string(n), 10, 64)
	case string:
		return strconv.ParseUint(n, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected id type %T", v)
	}
}
