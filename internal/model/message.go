package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MessageLevel 消息级别
type MessageLevel string

const (
	MessageLevelDebug       MessageLevel = "debug"
	MessageLevelInformation MessageLevel = "information"
	MessageLevelWarning     MessageLevel = "warning"
	MessageLevelError       MessageLevel = "error"
	MessageLevelCritical    MessageLevel = "critical"
)

// MessageFormat 消息内容格式
type MessageFormat string

const (
	MessageFormatTOML MessageFormat = "toml"
	MessageFormatText MessageFormat = "text"
)

// Message 日志消息，存储于MongoDB
type Message struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	NamespaceID string             `bson:"namespace_id" json:"namespace_id"`
	UserID      string             `bson:"user_id" json:"user_id"`
	Code        string             `bson:"code,omitempty" json:"code,omitempty"` // 业务方的消息编码
	Lang        string             `bson:"lang" json:"lang"`
	Level       MessageLevel       `bson:"level" json:"level"`
	Format      MessageFormat      `bson:"format" json:"format"`
	Title       string             `bson:"title" json:"title"`
	Content     string             `bson:"content,omitempty" json:"content,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// ValidLevel 级别是否合法
func ValidLevel(level MessageLevel) bool {
	switch level {
	case MessageLevelDebug, MessageLevelInformation, MessageLevelWarning, MessageLevelError, MessageLevelCritical:
		return true
	}
	return false
}

// ValidFormat 格式是否合法
func ValidFormat(format MessageFormat) bool {
	return format == MessageFormatTOML || format == MessageFormatText
}
