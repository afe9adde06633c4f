package model

import "time"

// LoginResponse 登录响应，签名部分通过Cookie下发
type LoginResponse struct {
	Token     string    `json:"token"` // header.payload
	ExpiresAt time.Time `json:"expires_at"`
}

// AccessTokenRequest 创建访问令牌请求
type AccessTokenRequest struct {
	Name      string    `json:"name" binding:"required,max=64"`
	AgentType AgentType `json:"agent_type"`
}

// AccessTokenStateRequest 修改访问令牌状态
type AccessTokenStateRequest struct {
	Action string `json:"action" binding:"required,oneof=enable disable"`
}

// AccessTokenDump 访问令牌明文
type AccessTokenDump struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

// NamespaceRequest 创建或更新命名空间
type NamespaceRequest struct {
	Name        string `json:"name" binding:"required,max=64"`
	Description string `json:"description"`
}

// MessageRequest 创建或更新消息
type MessageRequest struct {
	Code    string        `json:"code"`
	Lang    string        `json:"lang"`
	Level   MessageLevel  `json:"level"`
	Format  MessageFormat `json:"format"`
	Title   string        `json:"title" binding:"required,max=255"`
	Content string        `json:"content"`
}

// ListResponse 列表响应
type ListResponse struct {
	Total int64       `json:"total"`
	Items interface{} `json:"items"`
}
