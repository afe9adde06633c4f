package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Namespace 消息命名空间
type Namespace struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid"`
	UserID      string     `json:"user_id" gorm:"type:uuid;index;not null"`
	Name        string     `json:"name" gorm:"type:varchar(64);not null"`
	Description string     `json:"description" gorm:"type:text"`
	StreamedAt  *time.Time `json:"streamed_at,omitempty"` // 最近一次写入消息的时间
	ArchivedAt  *time.Time `json:"archived_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// BeforeCreate GORM的钩子，在创建记录前自动生成UUID
func (n *Namespace) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return nil
}
