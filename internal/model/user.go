package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserState 用户状态
type UserState string

const (
	UserStatePending UserState = "pending" // 待激活
	UserStateActive  UserState = "active"  // 已激活
)

// User 用户模型
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	Name      string    `json:"name" gorm:"type:varchar(64)"`
	Username  string    `json:"username" gorm:"type:varchar(32);uniqueIndex"`
	Email     string    `json:"email" gorm:"type:varchar(128);uniqueIndex"`
	Password  string    `json:"-" gorm:"type:varchar(255);not null"`
	State     UserState `json:"state" gorm:"type:varchar(16);not null;default:pending;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 密码重置令牌（Verification 用途），同一时刻只保留最近一次申请
	ResetPasswordToken          *string    `json:"-" gorm:"type:text"`
	ResetPasswordTokenGrantedAt *time.Time `json:"-"`
	ResetPasswordTokenExpiresAt *time.Time `json:"-"`

	Emails []UserEmail `json:"emails,omitempty" gorm:"foreignKey:UserID"`
}

// BeforeCreate GORM的钩子，在创建记录前自动生成UUID和加密密码
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.Password != "" {
		hashed, err := HashPassword(u.Password)
		if err != nil {
			return err
		}
		u.Password = hashed
	}
	return nil
}

// IsActive 是否已激活
func (u *User) IsActive() bool {
	return u.State == UserStateActive
}

// ValidatePassword 验证密码
func (u *User) ValidatePassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}

// HashPassword 生成密码哈希
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
