package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eloquentlog/pkg/redis"
)

// ErrNotFound 会话键不存在
var ErrNotFound = errors.New("session: not found")

// Store 会话存储，保存短期有效的签名片段
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// redisStore 基于Redis的会话存储
type redisStore struct {
	client *redis.Client
}

// NewRedisStore 创建Redis会话存储
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

// Get 获取会话值
func (s *redisStore) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrNotFound
	}

	value, err := s.client.Get(ctx, key)
	if err != nil {
		if redis.IsNil(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to get session %s: %w", key, err)
	}
	if value == "" {
		return "", ErrNotFound
	}
	return value, nil
}

// Set 设置会话值
func (s *redisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if key == "" {
		return fmt.Errorf("failed to set session: empty key")
	}
	return s.client.Set(ctx, key, value, ttl)
}

// Del 删除会话
func (s *redisStore) Del(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return s.client.Del(ctx, key)
}
