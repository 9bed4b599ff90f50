package host

import (
	"context"
	"database/sql"
	"errors"

	"github.com/faust64/pakiti3/internal/pkg/logger"

	"gorm.io/gorm"
)

// RawQueryRepository 参数化原生SQL查询
type RawQueryRepository struct {
	db *gorm.DB
}

// NewRawQueryRepository 创建 RawQueryRepository 实例
func NewRawQueryRepository(db *gorm.DB) *RawQueryRepository {
	return &RawQueryRepository{db: db}
}

// QueryToMultiRow 执行查询，每行结果为 列名 -> 值
func (r *RawQueryRepository) QueryToMultiRow(ctx context.Context, query string, args ...interface{}) ([]map[string]interface{}, error) {
	rows := make([]map[string]interface{}, 0)
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		logger.LogError(err, "query_to_multi_row", "REPO", map[string]interface{}{
			"sql": query,
		})
		return nil, err
	}
	return rows, nil
}

// QueryToSingleValue 执行查询并返回第一行第一列，无结果时返回 nil
func (r *RawQueryRepository) QueryToSingleValue(ctx context.Context, query string, args ...interface{}) (interface{}, error) {
	var value interface{}
	err := r.db.WithContext(ctx).Raw(query, args...).Row().Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.LogError(err, "query_to_single_value", "REPO", map[string]interface{}{
			"sql": query,
		})
		return nil, err
	}
	if b, ok := value.([]byte); ok {
		return string(b), nil
	}
	return value, nil
}

