package repository

import (
	"context"
	"errors"
	"time"

	"eloquentlog/internal/model"
	"eloquentlog/pkg/database"

	"gorm.io/gorm"
)

// ErrRollbackTransaction 子步骤未满足条件，整个事务需要回滚
var ErrRollbackTransaction = errors.New("rollback transaction")

// AccountTx 事务内可执行的账户状态变更，每一步都只在前置状态成立时生效
type AccountTx interface {
	// ActivateEmail 将待激活的邮箱标记为已激活
	ActivateEmail(emailID string) error
	// ActivateUser 将待激活的用户标记为已激活
	ActivateUser(userID string) error
	// ResetPassword 仅当重置令牌仍是 resetToken 时替换密码并清除令牌
	ResetPassword(userID, resetToken, passwordHash string) error
}

// AccountStore 账户状态变更的事务边界
type AccountStore interface {
	// Serializable 在 SERIALIZABLE, READ WRITE, DEFERRABLE 事务中执行 fn
	Serializable(ctx context.Context, fn func(tx AccountTx) error) error
}

// accountStore 基于PostgreSQL的实现
type accountStore struct {
	db *gorm.DB
}

// NewAccountStore 创建账户事务存储
func NewAccountStore(db *gorm.DB) AccountStore {
	return &accountStore{db: db}
}

// Serializable 执行可串行化事务
func (s *accountStore) Serializable(ctx context.Context, fn func(tx AccountTx) error) error {
	return database.SerializableTx(ctx, s.db, func(tx *gorm.DB) error {
		return fn(&accountTx{tx: tx})
	})
}

type accountTx struct {
	tx *gorm.DB
}

func (t *accountTx) ActivateEmail(emailID string) error {
	result := t.tx.Model(&model.UserEmail{}).
		Where("id = ? AND activation_state = ?", emailID, model.ActivationStatePending).
		UpdateColumns(map[string]interface{}{
			"activation_state":            model.ActivationStateDone,
			"identification_state":        model.IdentificationStateDone,
			"activation_token":            nil,
			"activation_token_granted_at": nil,
			"activation_token_expires_at": nil,
			"updated_at":                  time.Now(),
		})
	return exactlyOne(result)
}

func (t *accountTx) ActivateUser(userID string) error {
	result := t.tx.Model(&model.User{}).
		Where("id = ? AND state = ?", userID, model.UserStatePending).
		UpdateColumns(map[string]interface{}{
			"state":      model.UserStateActive,
			"updated_at": time.Now(),
		})
	return exactlyOne(result)
}

func (t *accountTx) ResetPassword(userID, resetToken, passwordHash string) error {
	result := t.tx.Model(&model.User{}).
		Where("id = ? AND state = ? AND reset_password_token = ?", userID, model.UserStateActive, resetToken).
		UpdateColumns(map[string]interface{}{
			"password":                        passwordHash,
			"reset_password_token":            nil,
			"reset_password_token_granted_at": nil,
			"reset_password_token_expires_at": nil,
			"updated_at":                      time.Now(),
		})
	return exactlyOne(result)
}

func exactlyOne(result *gorm.DB) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != 1 {
		return ErrRollbackTransaction
	}
	return nil
}
