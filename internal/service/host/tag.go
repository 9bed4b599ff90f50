package host

import (
	"context"

	"github.com/faust64/pakiti3/internal/model/host"
	"github.com/faust64/pakiti3/internal/model/system"
	"github.com/faust64/pakiti3/internal/pkg/logger"
)

// TagsManager 主机标签管理器
type TagsManager struct {
	repo TagRepository
}

// NewTagsManager 创建 TagsManager 实例
func NewTagsManager(repo TagRepository) *TagsManager {
	return &TagsManager{repo: repo}
}

// GetTagIDByName 标签名 -> ID，不存在时 found 为 false
func (m *TagsManager) GetTagIDByName(ctx context.Context, name string) (uint64, bool, error) {
	tag, err := m.repo.GetByName(ctx, name)
	if err != nil || tag == nil {
		return 0, false, err
	}
	return tag.ID, true, nil
}

// CreateTag 创建标签
func (m *TagsManager) CreateTag(ctx context.Context, name, description string) (*host.Tag, error) {
	if name == "" {
		return nil, system.NewFieldValidationError("name", "tag name is required")
	}
	tag := &host.Tag{Name: name, Description: description, Enabled: true}
	if err := m.repo.Create(ctx, tag); err != nil {
		return nil, err
	}
	logger.LogBusinessOperation("create_tag", "SERVICE", "success", "tag created", map[string]interface{}{
		"tag_id": tag.ID,
		"name":   name,
	})
	return tag, nil
}

// AssignTagToHost 给主机打标签
func (m *TagsManager) AssignTagToHost(ctx context.Context, h *host.Host, tag *host.Tag) error {
	if err := validateHostTag(h, tag); err != nil {
		return err
	}
	return m.repo.AddHostTag(ctx, h.ID, tag.ID)
}

// RemoveTagFromHost 移除主机标签
func (m *TagsManager) RemoveTagFromHost(ctx context.Context, h *host.Host, tag *host.Tag) error {
	if err := validateHostTag(h, tag); err != nil {
		return err
	}
	return m.repo.RemoveHostTag(ctx, h.ID, tag.ID)
}

// GetHostTags 获取主机标签
func (m *TagsManager) GetHostTags(ctx context.Context, h *host.Host) ([]host.Tag, error) {
	if h == nil || h.ID == 0 {
		return nil, system.NewValidationError("Host object is not valid or Host.id is not set")
	}
	return m.repo.GetHostTags(ctx, h.ID)
}

func validateHostTag(h *host.Host, tag *host.Tag) error {
	if h == nil || h.ID == 0 || tag == nil || tag.ID == 0 {
		return system.NewValidationError("Host or Tag object is not valid or Host.id or Tag.id is not set")
	}
	return nil
}
