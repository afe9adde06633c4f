package middleware

import (
	"eloquentlog/internal/model"

	"github.com/gin-gonic/gin"
)

// CurrentUser 获取当前用户
func CurrentUser(c *gin.Context) *model.User {
	if v, exists := c.Get(ContextKeyUser); exists {
		if user, ok := v.(*model.User); ok {
			return user
		}
	}
	return nil
}

// MustCurrentUser 获取当前用户，不存在时panic
func MustCurrentUser(c *gin.Context) *model.User {
	user := CurrentUser(c)
	if user == nil {
		panic("user not found in context")
	}
	return user
}

// CurrentAccessToken 获取当前访问令牌
func CurrentAccessToken(c *gin.Context) *model.AccessToken {
	if v, exists := c.Get(ContextKeyAccessToken); exists {
		if accessToken, ok := v.(*model.AccessToken); ok {
			return accessToken
		}
	}
	return nil
}

// VerificationResult 获取已校验的链接凭证
func VerificationResult(c *gin.Context) *Result {
	if v, exists := c.Get(ContextKeyVerification); exists {
		if result, ok := v.(*Result); ok {
			return result
		}
	}
	return nil
}
