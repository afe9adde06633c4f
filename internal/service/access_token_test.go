package service

import (
	"context"
	"testing"

	"eloquentlog/internal/model"
	"eloquentlog/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryAccessTokenRepo AccessTokenRepository 的内存实现
type memoryAccessTokenRepo struct {
	tokens map[string]*model.AccessToken
}

func (r *memoryAccessTokenRepo) Create(ctx context.Context, t *model.AccessToken) error {
	c := *t
	r.tokens[t.ID] = &c
	return nil
}

func (r *memoryAccessTokenRepo) GetByID(ctx context.Context, id string) (*model.AccessToken, error) {
	if t, ok := r.tokens[id]; ok {
		c := *t
		return &c, nil
	}
	return nil, nil
}

func (r *memoryAccessTokenRepo) GetByUser(ctx context.Context, userID, id string) (*model.AccessToken, error) {
	t, _ := r.GetByID(ctx, id)
	if t == nil || t.UserID != userID {
		return nil, nil
	}
	return t, nil
}

func (r *memoryAccessTokenRepo) List(ctx context.Context, userID string, agentType model.AgentType, offset, limit int) ([]model.AccessToken, int64, error) {
	var out []model.AccessToken
	for _, t := range r.tokens {
		if t.UserID == userID && (agentType == "" || t.AgentType == agentType) {
			out = append(out, *t)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memoryAccessTokenRepo) UpdateState(ctx context.Context, userID, id string, state model.AccessTokenState) (bool, error) {
	t, ok := r.tokens[id]
	if !ok || t.UserID != userID {
		return false, nil
	}
	t.State = state
	return true, nil
}

func (r *memoryAccessTokenRepo) Delete(ctx context.Context, userID, id string) (bool, error) {
	t, ok := r.tokens[id]
	if !ok || t.UserID != userID {
		return false, nil
	}
	delete(r.tokens, id)
	return true, nil
}

func TestAccessTokenLifecycle(t *testing.T) {
	repo := &memoryAccessTokenRepo{tokens: make(map[string]*model.AccessToken)}
	signers := testSigners()
	svc := NewAccessTokenService(repo, signers)
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-1", &model.AccessTokenRequest{Name: "ci"})
	require.NoError(t, err)
	assert.Equal(t, model.AgentTypePerson, created.AgentType)
	assert.True(t, created.IsEnabled())

	claims, err := signers.Authorization.Verify(created.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, token.Subject(claims))

	dump, err := svc.Dump(ctx, "user-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Token, dump.Token)

	_, err = svc.Dump(ctx, "user-2", created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := svc.Authorize(ctx, created.ID, created.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)

	require.NoError(t, svc.SetState(ctx, "user-1", created.ID, "disable"))
	_, err = svc.Authorize(ctx, created.ID, created.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	require.NoError(t, svc.SetState(ctx, "user-1", created.ID, "enable"))
	_, err = svc.Authorize(ctx, created.ID, created.Token)
	assert.NoError(t, err)

	assert.ErrorIs(t, svc.SetState(ctx, "user-1", created.ID, "revoke"), ErrInvalidArgument)
	assert.ErrorIs(t, svc.Delete(ctx, "user-2", created.ID), ErrNotFound)
	require.NoError(t, svc.Delete(ctx, "user-1", created.ID))

	_, err = svc.Authorize(ctx, created.ID, created.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAccessTokenCreateRejectsUnknownAgentType(t *testing.T) {
	svc := NewAccessTokenService(&memoryAccessTokenRepo{tokens: make(map[string]*model.AccessToken)}, testSigners())

	_, err := svc.Create(context.Background(), "user-1", &model.AccessTokenRequest{Name: "x", AgentType: "robot"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFillMessageDefaults(t *testing.T) {
	message := &model.Message{}
	require.NoError(t, fill(message, &model.MessageRequest{Title: "disk full"}))
	assert.Equal(t, model.MessageLevelInformation, message.Level)
	assert.Equal(t, model.MessageFormatTOML, message.Format)
	assert.Equal(t, "en", message.Lang)

	assert.ErrorIs(t, fill(message, &model.MessageRequest{Title: "x", Level: "loud"}), ErrInvalidArgument)
	assert.ErrorIs(t, fill(message, &model.MessageRequest{Title: "x", Format: "html"}), ErrInvalidArgument)
}
