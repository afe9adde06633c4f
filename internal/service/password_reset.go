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

// PasswordResetTarget 重置密码的目标用户
type PasswordResetTarget struct {
	User         *model.User
	Token        string // 用户当前保存的重置令牌
	PasswordHash string
}

// PasswordService 密码重置服务接口
type PasswordService interface {
	// RequestReset 申请重置密码，邮箱不存在时同样返回成功
	RequestReset(ctx context.Context, email string) error
	// CheckReset 检查重置链接是否仍然有效
	CheckReset(ctx context.Context, credential string) error
	// Reset 设置新密码
	Reset(ctx context.Context, credential, sessionKey, newPassword string) error
}

// passwordService 密码重置服务实现
type passwordService struct {
	userRepo repository.UserRepository
	sessions session.Store
	queue    job.Queue
	signer   *token.Signer
	reset    *Flow[*PasswordResetTarget]
}

// NewPasswordService 创建密码重置服务实例
func NewPasswordService(
	userRepo repository.UserRepository,
	store repository.AccountStore,
	sessions session.Store,
	queue job.Queue,
	signers *token.Signers,
) PasswordService {
	s := &passwordService{
		userRepo: userRepo,
		sessions: sessions,
		queue:    queue,
		signer:   signers.Verification,
	}
	s.reset = NewFlow("password_reset", signers.Verification, store, s.findReset, resetPassword, ErrPasswordResetFailed)
	return s
}

// RequestReset 申请重置密码
func (s *passwordService) RequestReset(ctx context.Context, email string) error {
	address := strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.GetByEmail(ctx, address)
	if err != nil {
		return err
	}
	if user == nil || !user.IsActive() {
		logger.Info("Password reset requested for unknown or inactive account")
		return nil
	}

	l, err := issueLink(ctx, s.signer, s.sessions, session.PasswordResetPrefix, user.Email)
	if err != nil {
		return err
	}
	if err := s.userRepo.SetResetPasswordToken(ctx, user.ID, l.Value); err != nil {
		return fmt.Errorf("failed to save reset password token: %w", err)
	}

	id, err := s.queue.Enqueue(ctx, job.KindPasswordResetEmail, &job.PasswordResetEmail{
		Name:      user.Name,
		Email:     user.Email,
		SessionID: l.SessionID,
		Token:     l.Payload,
	})
	if err != nil {
		return err
	}
	logger.Info("Password reset email queued, job=%s user=%s", id, user.ID)
	return nil
}

// CheckReset 检查重置链接
func (s *passwordService) CheckReset(ctx context.Context, credential string) error {
	_, err := s.reset.Load(ctx, credential)
	return err
}

// Reset 重置密码
func (s *passwordService) Reset(ctx context.Context, credential, sessionKey, newPassword string) error {
	target, err := s.reset.Load(ctx, credential)
	if err != nil {
		return err
	}

	hash, err := model.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	target.PasswordHash = hash

	if err := s.reset.Apply(ctx, target); err != nil {
		return err
	}

	if err := s.sessions.Del(ctx, sessionKey); err != nil {
		logger.Warn("Failed to delete session %s: %v", sessionKey, err)
	}
	logger.Info("Password of user %s reset", target.User.ID)
	return nil
}

// findReset 定位用户，只有最近一次申请的重置令牌有效
func (s *passwordService) findReset(ctx context.Context, subject, credential string) (*PasswordResetTarget, error) {
	user, err := s.userRepo.GetByEmail(ctx, subject)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive() || user.ResetPasswordToken == nil || *user.ResetPasswordToken != credential {
		return nil, errTargetNotFound
	}
	return &PasswordResetTarget{User: user, Token: credential}, nil
}

func resetPassword(tx repository.AccountTx, target *PasswordResetTarget) error {
	return tx.ResetPassword(target.User.ID, target.Token, target.PasswordHash)
}
