package v1

import (
	"net/http"

	"eloquentlog/internal/model"
	"eloquentlog/internal/service"
	"eloquentlog/pkg/api"
	"eloquentlog/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// NamespaceHandler 命名空间处理器
type NamespaceHandler struct {
	namespaceService service.NamespaceService
}

// NewNamespaceHandler 创建命名空间处理器实例
func NewNamespaceHandler(namespaceService service.NamespaceService) *NamespaceHandler {
	return &NamespaceHandler{namespaceService: namespaceService}
}

// Register 注册路由
func (h *NamespaceHandler) Register(r *gin.RouterGroup) {
	namespaces := r.Group("/namespace")
	{
		namespaces.GET("", h.List)
		namespaces.POST("", h.Create)
		namespaces.GET("/:id", h.Get)
		namespaces.PUT("/:id", h.Update)
		namespaces.DELETE("/:id", h.Delete)
	}
}

// List 获取命名空间列表
func (h *NamespaceHandler) List(c *gin.Context) {
	offset, limit := pagination(c)
	namespaces, total, err := h.namespaceService.List(c.Request.Context(), middleware.MustCurrentUser(c).ID, offset, limit)
	if err != nil {
		fail(c, err)
		return
	}
	api.Success(c, &model.ListResponse{Total: total, Items: namespaces})
}

// Create 创建命名空间
func (h *NamespaceHandler) Create(c *gin.Context) {
	var req model.NamespaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	namespace, err := h.namespaceService.Create(c.Request.Context(), middleware.MustCurrentUser(c).ID, &req)
	if err != nil {
		fail(c, err)
		return
	}
	api.Created(c, namespace)
}

// Get 获取命名空间
func (h *NamespaceHandler) Get(c *gin.Context) {
	namespace, err := h.namespaceService.Get(c.Request.Context(), middleware.MustCurrentUser(c).ID, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	api.Success(c, namespace)
}

// Update 更新命名空间
func (h *NamespaceHandler) Update(c *gin.Context) {
	var req model.NamespaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	namespace, err := h.namespaceService.Update(c.Request.Context(), middleware.MustCurrentUser(c).ID, c.Param("id"), &req)
	if err != nil {
		fail(c, err)
		return
	}
	api.Success(c, namespace)
}

// Delete 删除命名空间
func (h *NamespaceHandler) Delete(c *gin.Context) {
	if err := h.namespaceService.Delete(c.Request.Context(), middleware.MustCurrentUser(c).ID, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	api.Success(c, nil)
}
