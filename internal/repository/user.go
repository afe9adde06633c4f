package repository

import (
	"context"
	"errors"

	"eloquentlog/internal/model"
	"eloquentlog/pkg/token"

	"gorm.io/gorm"
)

// UserRepository 用户仓储接口
type UserRepository interface {
	// Register 在同一事务中创建用户及其主邮箱，created 返回错误时整体回滚
	Register(ctx context.Context, user *model.User, email *model.UserEmail, created func(user *model.User) error) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// GetByLogin 通过用户名或邮箱获取用户
	GetByLogin(ctx context.Context, login string) (*model.User, error)
	// SetResetPasswordToken 保存最近一次申请的密码重置令牌
	SetResetPasswordToken(ctx context.Context, userID string, value *token.Value) error
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// userRepository 用户仓储实现
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储实例
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Register 创建用户及其主邮箱
func (r *userRepository) Register(ctx context.Context, user *model.User, email *model.UserEmail, created func(user *model.User) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		email.UserID = user.ID
		if err := tx.Create(email).Error; err != nil {
			return err
		}
		if created == nil {
			return nil
		}
		return created(user)
	})
}

// GetByID 通过ID获取用户
func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.first(ctx, "id = ?", id)
}

// GetByEmail 通过邮箱获取用户
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.first(ctx, "email = ?", email)
}

// GetByLogin 通过用户名或邮箱获取用户
func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	return r.first(ctx, "username = ? OR email = ?", login, login)
}

func (r *userRepository) first(ctx context.Context, query string, args ...interface{}) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where(query, args...).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// SetResetPasswordToken 保存密码重置令牌
func (r *userRepository) SetResetPasswordToken(ctx context.Context, userID string, value *token.Value) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		UpdateColumns(map[string]interface{}{
			"reset_password_token":            value.Token,
			"reset_password_token_granted_at": value.GrantedAt,
			"reset_password_token_expires_at": value.ExpiresAt,
		}).Error
}

// ExistsByUsernameOrEmail 检查用户名或邮箱是否已被占用
func (r *userRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	err = r.db.WithContext(ctx).Model(&model.UserEmail{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// Count 获取用户总数
func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error
	return count, err
}
