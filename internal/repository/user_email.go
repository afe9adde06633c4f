package repository

import (
	"context"
	"errors"

	"eloquentlog/internal/model"

	"gorm.io/gorm"
)

// UserEmailRepository 用户邮箱仓储接口
type UserEmailRepository interface {
	// GetPendingPrimary 获取待激活的主邮箱
	GetPendingPrimary(ctx context.Context, email string) (*model.UserEmail, error)
}

// userEmailRepository 用户邮箱仓储实现
type userEmailRepository struct {
	db *gorm.DB
}

// NewUserEmailRepository 创建用户邮箱仓储实例
func NewUserEmailRepository(db *gorm.DB) UserEmailRepository {
	return &userEmailRepository{db: db}
}

// GetPendingPrimary 获取待激活的主邮箱
func (r *userEmailRepository) GetPendingPrimary(ctx context.Context, email string) (*model.UserEmail, error) {
	var userEmail model.UserEmail
	err := r.db.WithContext(ctx).
		Where("email = ? AND role = ? AND activation_state = ?", email, model.UserEmailRolePrimary, model.ActivationStatePending).
		First(&userEmail).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &userEmail, nil
}
