package v1

import (
	"errors"
	"net/http"

	"eloquentlog/internal/model"
	"eloquentlog/internal/service"
	"eloquentlog/pkg/api"
	"eloquentlog/pkg/logger"
	"eloquentlog/pkg/middleware"
	"eloquentlog/pkg/token"

	"github.com/gin-gonic/gin"
)

// CookieConfig 签名Cookie的属性
type CookieConfig struct {
	Domain string
	Secure bool
}

// AuthHandler 注册、激活、登录与密码重置处理器
type AuthHandler struct {
	accountService  service.AccountService
	passwordService service.PasswordService
	authService     service.AuthService
	cookie          CookieConfig
}

// NewAuthHandler 创建认证处理器实例
func NewAuthHandler(
	accountService service.AccountService,
	passwordService service.PasswordService,
	authService service.AuthService,
	cookie CookieConfig,
) *AuthHandler {
	return &AuthHandler{
		accountService:  accountService,
		passwordService: passwordService,
		authService:     authService,
		cookie:          cookie,
	}
}

// Register 注册路由，verification 为邮件链接凭证校验中间件
func (h *AuthHandler) Register(r *gin.RouterGroup, verification gin.HandlerFunc) {
	r.POST("/register", h.SignUp)
	r.PATCH("/activate/:session_id", verification, h.Activate)
	r.POST("/login", middleware.RequireXHR(), h.Login)
	r.POST("/logout", h.Logout)

	password := r.Group("/password/reset")
	{
		password.PUT("", middleware.RequireXHR(), h.RequestPasswordReset)
		password.GET("/:session_id", verification, h.CheckPasswordReset)
		password.PATCH("/:session_id", verification, h.ResetPassword)
	}
}

// SignUp 用户注册
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	user, err := h.accountService.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			api.Error(c, http.StatusConflict, "username or email already taken", nil)
			return
		}
		logger.Error("Failed to register user: %v", err)
		api.Error(c, http.StatusInternalServerError, "failed to register", nil)
		return
	}

	api.Created(c, model.NewUserResponse(user))
}

// Activate 激活账户
func (h *AuthHandler) Activate(c *gin.Context) {
	result := middleware.VerificationResult(c)

	err := h.accountService.Activate(c.Request.Context(), result.Credential, result.SessionKey)
	switch {
	case err == nil:
		api.Success(c, nil)
	case errors.Is(err, service.ErrInvalidToken):
		api.Error(c, http.StatusNotFound, "not found", nil)
	default:
		api.Error(c, http.StatusBadRequest, "activation failed", nil)
	}
}

// Login 用户登录：header.payload 放在响应体，签名部分写入 HttpOnly Cookie
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	value, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			api.Error(c, http.StatusUnauthorized, "invalid username or password", nil)
			return
		}
		logger.Error("Failed to login: %v", err)
		api.Error(c, http.StatusInternalServerError, "failed to login", nil)
		return
	}

	payload, signature, ok := token.Split(value.Token)
	if !ok {
		api.Error(c, http.StatusInternalServerError, "failed to login", nil)
		return
	}

	http.SetCookie(c.Writer, token.SignatureCookie(signature, h.cookie.Domain, h.cookie.Secure))
	api.Success(c, &model.LoginResponse{Token: payload, ExpiresAt: value.ExpiresAt})
}

// Logout 清除签名Cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	http.SetCookie(c.Writer, token.ExpiredSignatureCookie(h.cookie.Domain, h.cookie.Secure))
	api.Success(c, nil)
}

// RequestPasswordReset 申请重置密码，邮箱是否存在都返回成功
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req model.PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	if err := h.passwordService.RequestReset(c.Request.Context(), req.Email); err != nil {
		logger.Error("Failed to request password reset: %v", err)
	}
	api.Success(c, nil)
}

// CheckPasswordReset 检查重置链接是否有效
func (h *AuthHandler) CheckPasswordReset(c *gin.Context) {
	result := middleware.VerificationResult(c)

	if err := h.passwordService.CheckReset(c.Request.Context(), result.Credential); err != nil {
		api.Error(c, http.StatusNotFound, "not found", nil)
		return
	}
	api.Success(c, nil)
}

// ResetPassword 设置新密码
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req model.PasswordUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result := middleware.VerificationResult(c)
	err := h.passwordService.Reset(c.Request.Context(), result.Credential, result.SessionKey, req.NewPassword)
	switch {
	case err == nil:
		api.Success(c, nil)
	case errors.Is(err, service.ErrInvalidToken):
		api.Error(c, http.StatusNotFound, "not found", nil)
	default:
		api.Error(c, http.StatusBadRequest, "password reset failed", nil)
	}
}
