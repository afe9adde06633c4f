package router

import (
	"net/http"

	v1 "eloquentlog/api/v1"
	"eloquentlog/internal/session"
	"eloquentlog/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// AgentPrefix 代理接口的挂载点
const AgentPrefix = "/_api"

// Middlewares 各类凭证的校验中间件
type Middlewares struct {
	Authentication gin.HandlerFunc // 控制台登录凭证
	Verification   gin.HandlerFunc // 邮件链接凭证
	Authorization  gin.HandlerFunc // 代理访问令牌
}

// Router 路由管理器
type Router struct {
	engine             *gin.Engine
	middlewares        Middlewares
	authHandler        *v1.AuthHandler
	userHandler        *v1.UserHandler
	accessTokenHandler *v1.AccessTokenHandler
	namespaceHandler   *v1.NamespaceHandler
	messageHandler     *v1.MessageHandler
}

// NewRouter 创建路由管理器实例
func NewRouter(
	engine *gin.Engine,
	middlewares Middlewares,
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	accessTokenHandler *v1.AccessTokenHandler,
	namespaceHandler *v1.NamespaceHandler,
	messageHandler *v1.MessageHandler,
) *Router {
	return &Router{
		engine:             engine,
		middlewares:        middlewares,
		authHandler:        authHandler,
		userHandler:        userHandler,
		accessTokenHandler: accessTokenHandler,
		namespaceHandler:   namespaceHandler,
		messageHandler:     messageHandler,
	}
}

// RegisterRoutes 注册所有路由
func (r *Router) RegisterRoutes() {
	r.engine.Use(middleware.Metrics())

	// 健康检查
	r.engine.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.engine.GET("/metrics", middleware.MetricsHandler())

	// 控制台
	console := r.engine.Group(session.MountPrefix)
	{
		r.authHandler.Register(console, r.middlewares.Verification)

		private := console.Group("", r.middlewares.Authentication)
		r.userHandler.Register(private)
		r.accessTokenHandler.Register(private)
		r.namespaceHandler.Register(private)
		r.messageHandler.Register(private)
	}

	// 代理
	agent := r.engine.Group(AgentPrefix, r.middlewares.Authorization)
	r.messageHandler.RegisterAgent(agent)
}
