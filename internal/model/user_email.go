package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserEmailRole 邮箱角色
type UserEmailRole string

const (
	UserEmailRolePrimary UserEmailRole = "primary"
	UserEmailRoleGeneral UserEmailRole = "general"
)

// IdentificationState 邮箱确认状态
type IdentificationState string

const (
	IdentificationStatePending IdentificationState = "pending"
	IdentificationStateDone    IdentificationState = "done"
)

// ActivationState 邮箱激活状态
type ActivationState string

const (
	ActivationStatePending ActivationState = "pending"
	ActivationStateDone    ActivationState = "done"
)

// UserEmail 用户邮箱
type UserEmail struct {
	ID                  string              `json:"id" gorm:"primaryKey;type:uuid"`
	UserID              string              `json:"user_id" gorm:"type:uuid;index;not null"`
	Email               string              `json:"email" gorm:"type:varchar(128);uniqueIndex;not null"`
	Role                UserEmailRole       `json:"role" gorm:"type:varchar(16);not null;default:general"`
	IdentificationState IdentificationState `json:"identification_state" gorm:"type:varchar(16);not null;default:pending"`
	ActivationState     ActivationState     `json:"activation_state" gorm:"type:varchar(16);not null;default:pending"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`

	// 激活令牌（Activation 用途）
	ActivationToken          *string    `json:"-" gorm:"type:text"`
	ActivationTokenGrantedAt *time.Time `json:"-"`
	ActivationTokenExpiresAt *time.Time `json:"-"`
}

// BeforeCreate GORM的钩子，在创建记录前自动生成UUID
func (e *UserEmail) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}

// IsPending 是否仍待激活
func (e *UserEmail) IsPending() bool {
	return e.ActivationState == ActivationStatePending
}
