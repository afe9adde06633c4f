package repository

import (
	"context"
	"errors"
	"time"

	"eloquentlog/internal/model"

	"gorm.io/gorm"
)

// NamespaceRepository 命名空间仓储接口
type NamespaceRepository interface {
	Create(ctx context.Context, namespace *model.Namespace) error
	GetByUser(ctx context.Context, userID, id string) (*model.Namespace, error)
	List(ctx context.Context, userID string, offset, limit int) ([]model.Namespace, int64, error)
	Update(ctx context.Context, namespace *model.Namespace) error
	Delete(ctx context.Context, userID, id string) (bool, error)
	// Touch 记录最近一次写入消息的时间
	Touch(ctx context.Context, id string, at time.Time) error
}

// namespaceRepository 命名空间仓储实现
type namespaceRepository struct {
	db *gorm.DB
}

// NewNamespaceRepository 创建命名空间仓储实例
func NewNamespaceRepository(db *gorm.DB) NamespaceRepository {
	return &namespaceRepository{db: db}
}

// Create 创建命名空间
func (r *namespaceRepository) Create(ctx context.Context, namespace *model.Namespace) error {
	return r.db.WithContext(ctx).Create(namespace).Error
}

// GetByUser 获取用户的命名空间
func (r *namespaceRepository) GetByUser(ctx context.Context, userID, id string) (*model.Namespace, error) {
	var namespace model.Namespace
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND archived_at IS NULL", id, userID).
		First(&namespace).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &namespace, nil
}

// List 分页获取命名空间
func (r *namespaceRepository) List(ctx context.Context, userID string, offset, limit int) ([]model.Namespace, int64, error) {
	var namespaces []model.Namespace
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Namespace{}).Where("user_id = ? AND archived_at IS NULL", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&namespaces).Error; err != nil {
		return nil, 0, err
	}
	return namespaces, total, nil
}

// Update 更新命名空间
func (r *namespaceRepository) Update(ctx context.Context, namespace *model.Namespace) error {
	return r.db.WithContext(ctx).Model(namespace).
		Select("name", "description").
		Updates(namespace).Error
}

// Delete 归档命名空间
func (r *namespaceRepository) Delete(ctx context.Context, userID, id string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Namespace{}).
		Where("id = ? AND user_id = ? AND archived_at IS NULL", id, userID).
		UpdateColumn("archived_at", time.Now())
	return result.RowsAffected == 1, result.Error
}

// Touch 更新消息写入时间
func (r *namespaceRepository) Touch(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Namespace{}).
		Where("id = ?", id).
		UpdateColumn("streamed_at", at).Error
}
