package repository

import (
	"context"
	"errors"
	"time"

	"eloquentlog/internal/model"

	"gorm.io/gorm"
)

// AccessTokenRepository 访问令牌仓储接口
type AccessTokenRepository interface {
	Create(ctx context.Context, accessToken *model.AccessToken) error
	GetByID(ctx context.Context, id string) (*model.AccessToken, error)
	// GetByUser 获取属于该用户的访问令牌
	GetByUser(ctx context.Context, userID, id string) (*model.AccessToken, error)
	List(ctx context.Context, userID string, agentType model.AgentType, offset, limit int) ([]model.AccessToken, int64, error)
	UpdateState(ctx context.Context, userID, id string, state model.AccessTokenState) (bool, error)
	Delete(ctx context.Context, userID, id string) (bool, error)
}

// accessTokenRepository 访问令牌仓储实现
type accessTokenRepository struct {
	db *gorm.DB
}

// NewAccessTokenRepository 创建访问令牌仓储实例
func NewAccessTokenRepository(db *gorm.DB) AccessTokenRepository {
	return &accessTokenRepository{db: db}
}

// Create 创建访问令牌
func (r *accessTokenRepository) Create(ctx context.Context, accessToken *model.AccessToken) error {
	return r.db.WithContext(ctx).Create(accessToken).Error
}

// GetByID 通过ID获取访问令牌
func (r *accessTokenRepository) GetByID(ctx context.Context, id string) (*model.AccessToken, error) {
	var accessToken model.AccessToken
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&accessToken).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &accessToken, nil
}

// GetByUser 获取用户的访问令牌
func (r *accessTokenRepository) GetByUser(ctx context.Context, userID, id string) (*model.AccessToken, error) {
	var accessToken model.AccessToken
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&accessToken).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &accessToken, nil
}

// List 分页获取访问令牌
func (r *accessTokenRepository) List(ctx context.Context, userID string, agentType model.AgentType, offset, limit int) ([]model.AccessToken, int64, error) {
	var tokens []model.AccessToken
	var total int64

	query := r.db.WithContext(ctx).Model(&model.AccessToken{}).Where("user_id = ?", userID)
	if agentType != "" {
		query = query.Where("agent_type = ?", agentType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&tokens).Error; err != nil {
		return nil, 0, err
	}
	return tokens, total, nil
}

// UpdateState 修改访问令牌状态，返回是否命中记录
func (r *accessTokenRepository) UpdateState(ctx context.Context, userID, id string, state model.AccessTokenState) (bool, error) {
	columns := map[string]interface{}{"state": state, "updated_at": time.Now()}
	if state == model.AccessTokenStateDisabled {
		columns["revoked_at"] = time.Now()
	} else {
		columns["revoked_at"] = nil
	}

	result := r.db.WithContext(ctx).Model(&model.AccessToken{}).
		Where("id = ? AND user_id = ?", id, userID).
		UpdateColumns(columns)
	return result.RowsAffected == 1, result.Error
}

// Delete 删除访问令牌
func (r *accessTokenRepository) Delete(ctx context.Context, userID, id string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.AccessToken{})
	return result.RowsAffected == 1, result.Error
}
