package host

import (
	"context"
	"errors"

	"github.com/faust64/pakiti3/internal/model/host"
	"github.com/faust64/pakiti3/internal/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TagRepository 主机标签数据访问
type TagRepository struct {
	db *gorm.DB
}

// NewTagRepository 创建 TagRepository 实例
func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

// --- 标签定义管理 ---

func (r *TagRepository) Create(ctx context.Context, tag *host.Tag) error {
	if err := r.db.WithContext(ctx).Create(tag).Error; err != nil {
		logger.LogError(err, "create_tag", "REPO", map[string]interface{}{
			"name": tag.Name,
		})
		return err
	}
	return nil
}

// GetByName 获取标签
func (r *TagRepository) GetByName(ctx context.Context, name string) (*host.Tag, error) {
	var tag host.Tag
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logger.LogError(err, "get_tag_by_name", "REPO", map[string]interface{}{
			"name": name,
		})
		return nil, err
	}
	return &tag, nil
}

// --- 主机关联管理 ---

// AddHostTag 给主机打标签，已存在的关联不重复添加
func (r *TagRepository) AddHostTag(ctx context.Context, hostID, tagID uint64) error {
	ht := &host.HostTag{HostID: hostID, TagID: tagID}
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(ht).Error
	if err != nil {
		logger.LogError(err, "add_host_tag", "REPO", map[string]interface{}{
			"host_id": hostID,
			"tag_id":  tagID,
		})
		return err
	}
	return nil
}

func (r *TagRepository) RemoveHostTag(ctx context.Context, hostID, tagID uint64) error {
	err := r.db.WithContext(ctx).
		Where("host_id = ? AND tag_id = ?", hostID, tagID).
		Delete(&host.HostTag{}).Error
	if err != nil {
		logger.LogError(err, "remove_host_tag", "REPO", map[string]interface{}{
			"host_id": hostID,
			"tag_id":  tagID,
		})
		return err
	}
	return nil
}

// GetHostTags 获取主机上的全部标签
func (r *TagRepository) GetHostTags(ctx context.Context, hostID uint64) ([]host.Tag, error) {
	var tags []host.Tag
	err := r.db.WithContext(ctx).
		Joins("JOIN host_tags ON host_tags.tag_id = tags.id").
		Where("host_tags.host_id = ?", hostID).
		Order("tags.name").
		Find(&tags).Error
	if err != nil {
		logger.LogError(err, "get_host_tags", "REPO", map[string]interface{}{
			"host_id": hostID,
		})
		return nil, err
	}
	return tags, nil
}
