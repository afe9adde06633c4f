package v1

import (
	"net/http"

	"eloquentlog/internal/model"
	"eloquentlog/internal/service"
	"eloquentlog/pkg/api"
	"eloquentlog/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// AccessTokenHandler 访问令牌处理器
type AccessTokenHandler struct {
	accessTokenService service.AccessTokenService
}

// NewAccessTokenHandler 创建访问令牌处理器实例
func NewAccessTokenHandler(accessTokenService service.AccessTokenService) *AccessTokenHandler {
	return &AccessTokenHandler{accessTokenService: accessTokenService}
}

// Register 注册路由
func (h *AccessTokenHandler) Register(r *gin.RouterGroup) {
	tokens := r.Group("/access_token")
	{
		tokens.GET("", h.List)
		tokens.POST("", h.Create)
		tokens.GET("/:id/dump", h.Dump)
		tokens.PATCH("/:id/state", h.SetState)
		tokens.DELETE("/:id", h.Delete)
	}
}

// List 获取访问令牌列表
func (h *AccessTokenHandler) List(c *gin.Context) {
	user := middleware.MustCurrentUser(c)
	offset, limit := pagination(c)

	tokens, total, err := h.accessTokenService.List(c.Request.Context(), user.ID, model.AgentType(c.Query("agent_type")), offset, limit)
	if err != nil {
		fail(c, err)
		return
	}
	api.Success(c, &model.ListResponse{Total: total, Items: tokens})
}

// Create 创建访问令牌
func (h *AccessTokenHandler) Create(c *gin.Context) {
	var req model.AccessTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	accessToken, err := h.accessTokenService.Create(c.Request.Context(), middleware.MustCurrentUser(c).ID, &req)
	if err != nil {
		fail(c, err)
		return
	}
	api.Created(c, accessToken)
}

// Dump 返回令牌明文
func (h *AccessTokenHandler) Dump(c *gin.Context) {
	dump, err := h.accessTokenService.Dump(c.Request.Context(), middleware.MustCurrentUser(c).ID, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	api.Success(c, dump)
}

// SetState 启用或停用令牌
func (h *AccessTokenHandler) SetState(c *gin.Context) {
	var req model.AccessTokenStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	if err := h.accessTokenService.SetState(c.Request.Context(), middleware.MustCurrentUser(c).ID, c.Param("id"), req.Action); err != nil {
		fail(c, err)
		return
	}
	api.Success(c, nil)
}

// Delete 删除令牌
func (h *AccessTokenHandler) Delete(c *gin.Context) {
	if err := h.accessTokenService.Delete(c.Request.Context(), middleware.MustCurrentUser(c).ID, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	api.Success(c, nil)
}
