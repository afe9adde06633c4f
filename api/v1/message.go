package v1

import (
	"net/http"

	"eloquentlog/internal/model"
	"eloquentlog/internal/service"
	"eloquentlog/pkg/api"
	"eloquentlog/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// MessageHandler 消息处理器
type MessageHandler struct {
	messageService service.MessageService
}

// NewMessageHandler 创建消息处理器实例
func NewMessageHandler(messageService service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// Register 注册控制台路由
func (h *MessageHandler) Register(r *gin.RouterGroup) {
	messages := r.Group("/namespace/:id/message")
	{
		messages.GET("", h.List)
		messages.POST("", h.Create)
		messages.GET("/:message_id", h.Get)
		messages.PUT("/:message_id", h.Update)
		messages.DELETE("/:message_id", h.Delete)
	}
}

// RegisterAgent 注册代理路由，使用访问令牌
func (h *MessageHandler) RegisterAgent(r *gin.RouterGroup) {
	r.POST("/namespace/:id/message", h.Ingest)
}

// List 获取消息列表
func (h *MessageHandler) List(c *gin.Context) {
	offset, limit := pagination(c)
	messages, total, err := h.messageService.List(c.Request.Context(), middleware.MustCurrentUser(c).ID, c.Param("id"), int64(offset), int64(limit))
	if err != nil {
		fail(c, err)
		return
	}
	api.Success(c, &model.ListResponse{Total: total, Items: messages})
}

// Create 创建消息
func (h *MessageHandler) Create(c *gin.Context) {
	h.create(c, middleware.MustCurrentUser(c).ID)
}

// Ingest 代理写入消息
func (h *MessageHandler) Ingest(c *gin.Context) {
	h.create(c, middleware.CurrentAccessToken(c).UserID)
}

func (h *MessageHandler) create(c *gin.Context, userID string) {
	var req model.MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	message, err := h.messageService.Create(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		fail(c, err)
		return
	}
	api.Created(c, message)
}

// Get 获取消息
func (h *MessageHandler) Get(c *gin.Context) {
	message, err := h.messageService.Get(c.Request.Context(), middleware.MustCurrentUser(c).ID, c.Param("id"), c.Param("message_id"))
	if err != nil {
		fail(c, err)
		return
	}
	api.Success(c, message)
}

// Update 更新消息
func (h *MessageHandler) Update(c *gin.Context) {
	var req model.MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	message, err := h.messageService.Update(c.Request.Context(), middleware.MustCurrentUser(c).ID, c.Param("id"), c.Param("message_id"), &req)
	if err != nil {
		fail(c, err)
		return
	}
	api.Success(c, message)
}

// Delete 删除消息
func (h *MessageHandler) Delete(c *gin.Context) {
	if err := h.messageService.Delete(c.Request.Context(), middleware.MustCurrentUser(c).ID, c.Param("id"), c.Param("message_id")); err != nil {
		fail(c, err)
		return
	}
	api.Success(c, nil)
}
