package service

import (
	"context"
	"strings"

	"eloquentlog/internal/model"
	"eloquentlog/internal/repository"
	"eloquentlog/pkg/logger"
	"eloquentlog/pkg/token"
)

// AuthService 登录认证服务接口
type AuthService interface {
	// Login 校验用户名密码并签发认证令牌
	Login(ctx context.Context, req *model.LoginRequest) (*token.Value, error)
	// Authenticate 通过认证令牌主体获取已激活用户
	Authenticate(ctx context.Context, subject string) (*model.User, error)
}

// authService 登录认证服务实现
type authService struct {
	userRepo repository.UserRepository
	signer   *token.Signer
}

// NewAuthService 创建认证服务实例
func NewAuthService(userRepo repository.UserRepository, signers *token.Signers) AuthService {
	return &authService{
		userRepo: userRepo,
		signer:   signers.Authentication,
	}
}

// Login 用户登录
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*token.Value, error) {
	user, err := s.userRepo.GetByLogin(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		return nil, err
	}
	if user == nil || !user.ValidatePassword(req.Password) || !user.IsActive() {
		return nil, ErrInvalidCredentials
	}

	value, err := s.signer.Sign(user.ID)
	if err != nil {
		return nil, err
	}
	logger.Info("User %s logged in", user.ID)
	return value, nil
}

// Authenticate 获取当前用户
func (s *authService) Authenticate(ctx context.Context, subject string) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, subject)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive() {
		return nil, ErrInvalidToken
	}
	return user, nil
}
