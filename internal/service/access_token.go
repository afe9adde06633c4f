package service

import (
	"context"
	"fmt"

	"eloquentlog/internal/model"
	"eloquentlog/internal/repository"
	"eloquentlog/pkg/token"

	"github.com/google/uuid"
)

// AccessTokenService 访问令牌服务接口
type AccessTokenService interface {
	List(ctx context.Context, userID string, agentType model.AgentType, offset, limit int) ([]model.AccessToken, int64, error)
	Create(ctx context.Context, userID string, req *model.AccessTokenRequest) (*model.AccessToken, error)
	// Dump 返回令牌明文
	Dump(ctx context.Context, userID, id string) (*model.AccessTokenDump, error)
	// SetState 启用或停用令牌
	SetState(ctx context.Context, userID, id, action string) error
	Delete(ctx context.Context, userID, id string) error
	// Authorize 校验代理请求携带的令牌，只有已启用且与保存值一致的令牌有效
	Authorize(ctx context.Context, subject, credential string) (*model.AccessToken, error)
}

// accessTokenService 访问令牌服务实现
type accessTokenService struct {
	repo   repository.AccessTokenRepository
	signer *token.Signer
}

// NewAccessTokenService 创建访问令牌服务实例
func NewAccessTokenService(repo repository.AccessTokenRepository, signers *token.Signers) AccessTokenService {
	return &accessTokenService{repo: repo, signer: signers.Authorization}
}

// List 获取访问令牌列表
func (s *accessTokenService) List(ctx context.Context, userID string, agentType model.AgentType, offset, limit int) ([]model.AccessToken, int64, error) {
	if agentType != "" && agentType != model.AgentTypePerson && agentType != model.AgentTypeClient {
		return nil, 0, ErrInvalidArgument
	}
	return s.repo.List(ctx, userID, agentType, offset, limit)
}

// Create 创建访问令牌，令牌主体为访问令牌ID
func (s *accessTokenService) Create(ctx context.Context, userID string, req *model.AccessTokenRequest) (*model.AccessToken, error) {
	agentType := req.AgentType
	switch agentType {
	case "":
		agentType = model.AgentTypePerson
	case model.AgentTypePerson, model.AgentTypeClient:
	default:
		return nil, ErrInvalidArgument
	}

	id := uuid.New().String()
	value, err := s.signer.Sign(id)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	accessToken := &model.AccessToken{
		ID:        id,
		UserID:    userID,
		Name:      req.Name,
		AgentType: agentType,
		State:     model.AccessTokenStateEnabled,
		Token:     value.Token,
		GrantedAt: value.GrantedAt,
	}
	if err := s.repo.Create(ctx, accessToken); err != nil {
		return nil, err
	}
	return accessToken, nil
}

// Dump 返回令牌明文
func (s *accessTokenService) Dump(ctx context.Context, userID, id string) (*model.AccessTokenDump, error) {
	accessToken, err := s.repo.GetByUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if accessToken == nil {
		return nil, ErrNotFound
	}
	return &model.AccessTokenDump{ID: accessToken.ID, Token: accessToken.Token}, nil
}

// SetState 修改令牌状态
func (s *accessTokenService) SetState(ctx context.Context, userID, id, action string) error {
	var state model.AccessTokenState
	switch action {
	case "enable":
		state = model.AccessTokenStateEnabled
	case "disable":
		state = model.AccessTokenStateDisabled
	default:
		return ErrInvalidArgument
	}

	ok, err := s.repo.UpdateState(ctx, userID, id, state)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// Delete 删除令牌
func (s *accessTokenService) Delete(ctx context.Context, userID, id string) error {
	ok, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// Authorize 校验访问令牌
func (s *accessTokenService) Authorize(ctx context.Context, subject, credential string) (*model.AccessToken, error) {
	accessToken, err := s.repo.GetByID(ctx, subject)
	if err != nil {
		return nil, err
	}
	if accessToken == nil || !accessToken.IsEnabled() || accessToken.Token != credential {
		return nil, ErrInvalidToken
	}
	return accessToken, nil
}
