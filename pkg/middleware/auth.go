package middleware

import (
	"context"
	"fmt"
	"net/http"

	"eloquentlog/internal/model"
	"eloquentlog/pkg/api"
	"eloquentlog/pkg/logger"

	"github.com/gin-gonic/gin"
)

const (
	// ContextKeyUser 上下文中当前用户的键
	ContextKeyUser = "user"
	// ContextKeyAccessToken 上下文中当前访问令牌的键
	ContextKeyAccessToken = "access_token"
	// ContextKeyVerification 上下文中已通过校验的链接凭证的键
	ContextKeyVerification = "verification"
)

// ErrRejected 凭证有效但主体不可用，对外与无效凭证不可区分
var ErrRejected = fmt.Errorf("%w: subject rejected", ErrInvalid)

// UserAuthenticator 通过认证令牌主体加载用户
type UserAuthenticator interface {
	Authenticate(ctx context.Context, subject string) (*model.User, error)
}

// AccessTokenAuthorizer 通过访问令牌主体加载访问令牌
type AccessTokenAuthorizer interface {
	Authorize(ctx context.Context, subject, credential string) (*model.AccessToken, error)
}

// RequireXHR 要求 X-Requested-With: XMLHttpRequest
func RequireXHR() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(HeaderRequestedWith) != XMLHttpRequest {
			reject(c, ErrInvalid)
			return
		}
		c.Next()
	}
}

// Authentication 校验登录凭证并把当前用户放入上下文，同一请求只加载一次
func Authentication(verifier Verifier, users UserAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) != nil {
			c.Next()
			return
		}

		result, err := verifier.Verify(c.Request)
		if err != nil {
			reject(c, err)
			return
		}

		user, err := users.Authenticate(c.Request.Context(), result.Subject)
		if err != nil {
			logger.Debug("Authenticated subject %s rejected: %v", result.Subject, err)
			reject(c, ErrRejected)
			return
		}

		c.Set(ContextKeyUser, user)
		c.Next()
	}
}

// Verification 校验邮件链接凭证，处理器通过 VerificationResult 取得完整凭证
func Verification(verifier Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := verifier.Verify(c.Request)
		if err != nil {
			reject(c, err)
			return
		}

		c.Set(ContextKeyVerification, result)
		c.Next()
	}
}

// Authorization 校验代理请求的访问令牌
func Authorization(verifier Verifier, tokens AccessTokenAuthorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := verifier.Verify(c.Request)
		if err != nil {
			reject(c, err)
			return
		}

		accessToken, err := tokens.Authorize(c.Request.Context(), result.Subject, result.Credential)
		if err != nil {
			logger.Debug("Access token %s rejected: %v", result.Subject, err)
			reject(c, ErrRejected)
			return
		}

		c.Set(ContextKeyAccessToken, accessToken)
		c.Next()
	}
}

func reject(c *gin.Context, err error) {
	status := StatusOf(err)
	message := http.StatusText(status)
	if status >= http.StatusInternalServerError {
		logger.Error("Credential verification failed: %v", err)
	}
	api.Error(c, status, message, nil)
	c.Abort()
}
