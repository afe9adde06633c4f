package service

import (
	"context"
	"fmt"
	"strings"

	"eloquentlog/internal/job"
	"eloquentlog/internal/model"
	"eloquentlog/internal/repository"
	"eloquentlog/internal/session"
	"eloquentlog/pkg/logger"
	"eloquentlog/pkg/token"
)

// ActivationTarget 待激活的用户及其主邮箱
type ActivationTarget struct {
	User  *model.User
	Email *model.UserEmail
}

// AccountService 注册与激活服务接口
type AccountService interface {
	// Register 创建待激活用户并发送激活邮件
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)
	// Activate 使用激活链接凭证激活账户，sessionKey 为链接签名在会话存储中的键
	Activate(ctx context.Context, credential, sessionKey string) error
}

// accountService 注册与激活服务实现
type accountService struct {
	userRepo   repository.UserRepository
	emailRepo  repository.UserEmailRepository
	sessions   session.Store
	queue      job.Queue
	signers    *token.Signers
	activation *Flow[*ActivationTarget]
}

// NewAccountService 创建注册与激活服务实例
func NewAccountService(
	userRepo repository.UserRepository,
	emailRepo repository.UserEmailRepository,
	store repository.AccountStore,
	sessions session.Store,
	queue job.Queue,
	signers *token.Signers,
) AccountService {
	s := &accountService{
		userRepo:  userRepo,
		emailRepo: emailRepo,
		sessions:  sessions,
		queue:     queue,
		signers:   signers,
	}
	s.activation = NewFlow("activation", signers.Verification, store, s.findActivation, activate, ErrActivationFailed)
	return s
}

// Register 用户注册
func (s *accountService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	address := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)

	exists, err := s.userRepo.ExistsByUsernameOrEmail(ctx, username, address)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	grant, err := s.signers.Activation.Sign(address)
	if err != nil {
		return nil, fmt.Errorf("failed to sign activation token: %w", err)
	}

	user := &model.User{
		Name:     strings.TrimSpace(req.Name),
		Username: username,
		Email:    address,
		Password: req.Password,
		State:    model.UserStatePending,
	}
	email := &model.UserEmail{
		Email:                    address,
		Role:                     model.UserEmailRolePrimary,
		IdentificationState:      model.IdentificationStatePending,
		ActivationState:          model.ActivationStatePending,
		ActivationToken:          &grant.Token,
		ActivationTokenGrantedAt: &grant.GrantedAt,
		ActivationTokenExpiresAt: &grant.ExpiresAt,
	}

	// 入队失败时用户与邮箱一并回滚
	l, err := issueLink(ctx, s.signers.Verification, s.sessions, session.UserActivationPrefix, address)
	if err != nil {
		return nil, err
	}

	err = s.userRepo.Register(ctx, user, email, func(user *model.User) error {
		id, err := s.queue.Enqueue(ctx, job.KindUserActivationEmail, &job.UserActivationEmail{
			Name:      user.Name,
			Email:     address,
			SessionID: l.SessionID,
			Token:     l.Payload,
		})
		if err != nil {
			return fmt.Errorf("failed to enqueue activation email: %w", err)
		}
		logger.Info("Activation email queued, job=%s user=%s", id, user.ID)
		return nil
	})
	if err != nil {
		if delErr := s.sessions.Del(ctx, session.Key(session.UserActivationPrefix, l.SessionID)); delErr != nil {
			logger.Warn("Failed to delete session for %s: %v", l.SessionID, delErr)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Activate 激活账户
func (s *accountService) Activate(ctx context.Context, credential, sessionKey string) error {
	target, err := s.activation.Load(ctx, credential)
	if err != nil {
		return err
	}
	if err := s.activation.Apply(ctx, target); err != nil {
		return err
	}

	if err := s.sessions.Del(ctx, sessionKey); err != nil {
		logger.Warn("Failed to delete session %s: %v", sessionKey, err)
	}
	logger.Info("User %s activated", target.User.ID)
	return nil
}

// findActivation 定位待激活的主邮箱，其保存的激活令牌必须仍然有效且主体一致
func (s *accountService) findActivation(ctx context.Context, subject, credential string) (*ActivationTarget, error) {
	email, err := s.emailRepo.GetPendingPrimary(ctx, subject)
	if err != nil {
		return nil, err
	}
	if email == nil || email.ActivationToken == nil {
		return nil, errTargetNotFound
	}

	claims, err := s.signers.Activation.Verify(*email.ActivationToken)
	if err != nil || token.Subject(claims) != subject {
		return nil, errTargetNotFound
	}

	user, err := s.userRepo.GetByID(ctx, email.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.IsActive() {
		return nil, errTargetNotFound
	}
	return &ActivationTarget{User: user, Email: email}, nil
}

func activate(tx repository.AccountTx, target *ActivationTarget) error {
	if err := tx.ActivateEmail(target.Email.ID); err != nil {
		return err
	}
	return tx.ActivateUser(target.User.ID)
}
