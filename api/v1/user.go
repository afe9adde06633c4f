package v1

import (
	"eloquentlog/internal/model"
	"eloquentlog/pkg/api"
	"eloquentlog/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// UserHandler 当前用户处理器
type UserHandler struct{}

// NewUserHandler 创建用户处理器实例
func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Register 注册路由
func (h *UserHandler) Register(r *gin.RouterGroup) {
	r.GET("/user", h.Get)
}

// Get 获取当前用户
func (h *UserHandler) Get(c *gin.Context) {
	api.Success(c, model.NewUserResponse(middleware.MustCurrentUser(c)))
}
