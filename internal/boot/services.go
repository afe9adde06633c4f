package boot

import (
	"eloquentlog/internal/job"
	"eloquentlog/internal/service"
	"eloquentlog/internal/session"
	"eloquentlog/pkg/config"
	"eloquentlog/pkg/redis"
	"eloquentlog/pkg/token"
)

// Services 包含所有服务实例
type Services struct {
	Signers            *token.Signers
	Sessions           session.Store
	Queue              job.Queue
	AccountService     service.AccountService
	PasswordService    service.PasswordService
	AuthService        service.AuthService
	AccessTokenService service.AccessTokenService
	NamespaceService   service.NamespaceService
	MessageService     service.MessageService
}

// InitSigners 根据配置创建四种用途的签发器
func InitSigners(cfg *config.TokenConfig) *token.Signers {
	return &token.Signers{
		Activation:     token.NewSigner(token.Activation, cfg.Activation.Settings()),
		Authentication: token.NewSigner(token.Authentication, cfg.Authentication.Settings()),
		Authorization:  token.NewSigner(token.Authorization, cfg.Authorization.Settings()),
		Verification:   token.NewSigner(token.Verification, cfg.Verification.Settings()),
	}
}

// InitServices 初始化所有服务实例
func InitServices(cfg *config.Config, repos *Repositories, redisClient *redis.Client) *Services {
	signers := InitSigners(&cfg.Token)
	sessions := session.NewRedisStore(redisClient)
	queue := job.NewQueue(redisClient, cfg.Queue.Key)

	return &Services{
		Signers:  signers,
		Sessions: sessions,
		Queue:    queue,
		AccountService: service.NewAccountService(
			repos.UserRepo,
			repos.UserEmailRepo,
			repos.AccountStore,
			sessions,
			queue,
			signers,
		),
		PasswordService:    service.NewPasswordService(repos.UserRepo, repos.AccountStore, sessions, queue, signers),
		AuthService:        service.NewAuthService(repos.UserRepo, signers),
		AccessTokenService: service.NewAccessTokenService(repos.AccessTokenRepo, signers),
		NamespaceService:   service.NewNamespaceService(repos.NamespaceRepo, repos.MessageRepo),
		MessageService:     service.NewMessageService(repos.MessageRepo, repos.NamespaceRepo),
	}
}
