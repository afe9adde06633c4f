package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AgentType 访问令牌的使用方
type AgentType string

const (
	AgentTypePerson AgentType = "person"
	AgentTypeClient AgentType = "client"
)

// AccessTokenState 访问令牌状态
type AccessTokenState string

const (
	AccessTokenStateEnabled  AccessTokenState = "enabled"
	AccessTokenStateDisabled AccessTokenState = "disabled"
)

// AccessToken 访问令牌（Authorization 用途），吊销通过状态完成
type AccessToken struct {
	ID        string           `json:"id" gorm:"primaryKey;type:uuid"`
	UserID    string           `json:"user_id" gorm:"type:uuid;index;not null"`
	Name      string           `json:"name" gorm:"type:varchar(64);not null"`
	AgentType AgentType        `json:"agent_type" gorm:"type:varchar(16);not null;default:person"`
	State     AccessTokenState `json:"state" gorm:"type:varchar(16);not null;default:enabled"`
	Token     string           `json:"-" gorm:"type:text;not null"`
	GrantedAt time.Time        `json:"granted_at"`
	RevokedAt *time.Time       `json:"revoked_at,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// BeforeCreate GORM的钩子，在创建记录前自动生成UUID
func (t *AccessToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

// IsEnabled 是否可用
func (t *AccessToken) IsEnabled() bool {
	return t.State == AccessTokenStateEnabled
}
