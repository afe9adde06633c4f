package boot

import (
	v1 "eloquentlog/api/v1"
	"eloquentlog/pkg/config"
	"eloquentlog/pkg/middleware"
	"eloquentlog/pkg/router"

	"github.com/gin-gonic/gin"
)

// Handlers 包含所有HTTP处理器
type Handlers struct {
	AuthHandler        *v1.AuthHandler
	UserHandler        *v1.UserHandler
	AccessTokenHandler *v1.AccessTokenHandler
	NamespaceHandler   *v1.NamespaceHandler
	MessageHandler     *v1.MessageHandler
}

// InitHandlers 初始化所有HTTP处理器
func InitHandlers(services *Services, cfg *config.Config) *Handlers {
	return &Handlers{
		AuthHandler: v1.NewAuthHandler(
			services.AccountService,
			services.PasswordService,
			services.AuthService,
			v1.CookieConfig{Domain: cfg.Server.Domain, Secure: cfg.Server.SecureCookie},
		),
		UserHandler:        v1.NewUserHandler(),
		AccessTokenHandler: v1.NewAccessTokenHandler(services.AccessTokenService),
		NamespaceHandler:   v1.NewNamespaceHandler(services.NamespaceService),
		MessageHandler:     v1.NewMessageHandler(services.MessageService),
	}
}

// InitRouter 初始化凭证校验中间件并注册路由
func InitRouter(engine *gin.Engine, handlers *Handlers, services *Services) *router.Router {
	middlewares := router.Middlewares{
		Authentication: middleware.Authentication(
			middleware.NewAuthenticationVerifier(services.Signers.Authentication),
			services.AuthService,
		),
		Verification: middleware.Verification(
			middleware.NewVerificationVerifier(services.Signers.Verification, services.Sessions),
		),
		Authorization: middleware.Authorization(
			middleware.NewHeaderVerifier(middleware.HeaderAuthToken, services.Signers.Authorization),
			services.AccessTokenService,
		),
	}

	r := router.NewRouter(
		engine,
		middlewares,
		handlers.AuthHandler,
		handlers.UserHandler,
		handlers.AccessTokenHandler,
		handlers.NamespaceHandler,
		handlers.MessageHandler,
	)
	r.RegisterRoutes()
	return r
}
