package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// Kind 任务类型
type Kind string

const (
	KindUserActivationEmail Kind = "send_user_activation_email"
	KindPasswordResetEmail  Kind = "send_password_reset_email"
)

// ErrUnknownKind 没有对应处理器的任务类型
var ErrUnknownKind = errors.New("job: unknown kind")

// Envelope 队列中的任务
type Envelope struct {
	ID         string          `json:"id"`
	Kind       Kind            `json:"kind"`
	Payload    json.RawMessage `json:"payload"`
	Attempts   int             `json:"attempts"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
}

// Decode 解析任务负载
func (e *Envelope) Decode(v interface{}) error {
	if err := json.Unmarshal(e.Payload, v); err != nil {
		return fmt.Errorf("job %s: failed to decode %s payload: %w", e.ID, e.Kind, err)
	}
	return nil
}

// UserActivationEmail 激活邮件任务负载
type UserActivationEmail struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	SessionID string `json:"session_id"`
	Token     string `json:"token"` // header.payload，签名部分保存在会话存储
}

// PasswordResetEmail 密码重置邮件任务负载
type PasswordResetEmail struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	SessionID string `json:"session_id"`
	Token     string `json:"token"`
}

// Broker 队列底层的列表操作
type Broker interface {
	LPush(ctx context.Context, key string, values ...interface{}) error
	BRPop(ctx context.Context, timeout time.Duration, key string) (string, error)
}

// Queue 任务入队接口
type Queue interface {
	Enqueue(ctx context.Context, kind Kind, payload interface{}) (string, error)
}

// redisQueue 基于Redis列表的任务队列
type redisQueue struct {
	broker Broker
	key    string
	now    func() time.Time
}

// NewQueue 创建任务队列
func NewQueue(broker Broker, key string) Queue {
	return &redisQueue{broker: broker, key: key, now: time.Now}
}

// Enqueue 任务入队，返回任务ID
func (q *redisQueue) Enqueue(ctx context.Context, kind Kind, payload interface{}) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s payload: %w", kind, err)
	}

	envelope := &Envelope{
		ID:         ulid.Make().String(),
		Kind:       kind,
		Payload:    raw,
		EnqueuedAt: q.now().UTC(),
	}
	if err := push(ctx, q.broker, q.key, envelope); err != nil {
		return "", err
	}
	return envelope.ID, nil
}

func push(ctx context.Context, broker Broker, key string, envelope *Envelope) error {
	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to encode job %s: %w", envelope.ID, err)
	}
	if err := broker.LPush(ctx, key, string(data)); err != nil {
		return fmt.Errorf("failed to enqueue job %s: %w", envelope.ID, err)
	}
	return nil
}
