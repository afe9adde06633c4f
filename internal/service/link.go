package service

import (
	"context"
	"fmt"

	"eloquentlog/internal/session"
	"eloquentlog/pkg/token"

	"github.com/google/uuid"
)

// link 邮件链接凭证：header.payload 随邮件发出，签名部分留在会话存储
type link struct {
	SessionID string
	Payload   string
	Value     *token.Value
}

// issueLink 为主体签发验证凭证，并把签名部分写入会话存储
func issueLink(ctx context.Context, signer *token.Signer, sessions session.Store, prefix, subject string) (*link, error) {
	value, err := signer.Sign(subject)
	if err != nil {
		return nil, fmt.Errorf("failed to sign %s credential: %w", signer.Purpose(), err)
	}

	payload, signature, ok := token.Split(value.Token)
	if !ok {
		return nil, fmt.Errorf("failed to split %s credential", signer.Purpose())
	}

	sessionID := uuid.New().String()
	if err := sessions.Set(ctx, session.Key(prefix, sessionID), signature, signer.TTL()); err != nil {
		return nil, err
	}

	return &link{SessionID: sessionID, Payload: payload, Value: value}, nil
}
