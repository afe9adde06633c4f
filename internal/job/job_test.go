package job

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"eloquentlog/pkg/redis"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryBroker 内存中的列表，语义与 LPUSH/BRPOP 一致
type memoryBroker struct {
	mu    sync.Mutex
	lists map[string][]string
}

func newMemoryBroker() *memoryBroker {
	return &memoryBroker{lists: make(map[string][]string)}
}

func (b *memoryBroker) LPush(ctx context.Context, key string, values ...interface{}) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, v := range values {
		b.lists[key] = append([]string{v.(string)}, b.lists[key]...)
	}
	return nil
}

func (b *memoryBroker) BRPop(ctx context.Context, timeout time.Duration, key string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.lists[key]
	if len(list) == 0 {
		return "", redis.ErrNil
	}
	last := list[len(list)-1]
	b.lists[key] = list[:len(list)-1]
	return last, nil
}

func (b *memoryBroker) len(key string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.lists[key])
}

const testKey = "test:jobs"

func TestEnqueue(t *testing.T) {
	broker := newMemoryBroker()
	queue := NewQueue(broker, testKey)

	id, err := queue.Enqueue(context.Background(), KindUserActivationEmail, &UserActivationEmail{
		Email:     "alice@example.org",
		SessionID: "456",
		Token:     "abc.def",
	})
	require.NoError(t, err)
	_, err = ulid.Parse(id)
	assert.NoError(t, err)

	raw, err := broker.BRPop(context.Background(), time.Second, testKey)
	require.NoError(t, err)

	var envelope Envelope
	require.NoError(t, json.Unmarshal([]byte(raw), &envelope))
	assert.Equal(t, id, envelope.ID)
	assert.Equal(t, KindUserActivationEmail, envelope.Kind)
	assert.Zero(t, envelope.Attempts)

	var payload UserActivationEmail
	require.NoError(t, envelope.Decode(&payload))
	assert.Equal(t, "456", payload.SessionID)
	assert.Equal(t, "abc.def", payload.Token)
}

func TestWorkerOrder(t *testing.T) {
	broker := newMemoryBroker()
	queue := NewQueue(broker, testKey)
	worker := NewWorker(broker, testKey, time.Millisecond, 3)

	var seen []string
	worker.Handle(KindPasswordResetEmail, func(ctx context.Context, e *Envelope) error {
		var p PasswordResetEmail
		require.NoError(t, e.Decode(&p))
		seen = append(seen, p.SessionID)
		return nil
	})

	ctx := context.Background()
	for _, id := range []string{"1", "2", "3"} {
		_, err := queue.Enqueue(ctx, KindPasswordResetEmail, &PasswordResetEmail{SessionID: id})
		require.NoError(t, err)
	}

	for {
		ok, err := worker.Next(ctx)
		require.NoError(t, err)
		if !ok {
			break
		}
	}
	assert.Equal(t, []string{"1", "2", "3"}, seen)
}

func TestWorkerRetriesUntilMaxAttempts(t *testing.T) {
	broker := newMemoryBroker()
	queue := NewQueue(broker, testKey)
	worker := NewWorker(broker, testKey, time.Millisecond, 3)

	calls := 0
	worker.Handle(KindUserActivationEmail, func(ctx context.Context, e *Envelope) error {
		calls++
		assert.Equal(t, calls, e.Attempts)
		return errors.New("smtp unavailable")
	})

	ctx := context.Background()
	_, err := queue.Enqueue(ctx, KindUserActivationEmail, &UserActivationEmail{})
	require.NoError(t, err)

	for {
		ok, err := worker.Next(ctx)
		require.NoError(t, err)
		if !ok {
			break
		}
	}
	assert.Equal(t, 3, calls)
	assert.Zero(t, broker.len(testKey))
}

func TestWorkerRecoversAfterFailure(t *testing.T) {
	broker := newMemoryBroker()
	queue := NewQueue(broker, testKey)
	worker := NewWorker(broker, testKey, time.Millisecond, 3)

	calls := 0
	worker.Handle(KindUserActivationEmail, func(ctx context.Context, e *Envelope) error {
		calls++
		if calls == 1 {
			return errors.New("temporary")
		}
		return nil
	})

	ctx := context.Background()
	_, err := queue.Enqueue(ctx, KindUserActivationEmail, &UserActivationEmail{})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		ok, err := worker.Next(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	assert.Equal(t, 2, calls)
	assert.Zero(t, broker.len(testKey))
}

func TestWorkerDropsUnknownAndBrokenJobs(t *testing.T) {
	broker := newMemoryBroker()
	worker := NewWorker(broker, testKey, time.Millisecond, 3)
	ctx := context.Background()

	require.NoError(t, broker.LPush(ctx, testKey, "{not json"))
	_, err := NewQueue(broker, testKey).Enqueue(ctx, Kind("unknown"), struct{}{})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		ok, err := worker.Next(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	assert.Zero(t, broker.len(testKey))
}

func TestWorkerRecoversHandlerPanic(t *testing.T) {
	broker := newMemoryBroker()
	worker := NewWorker(broker, testKey, time.Millisecond, 1)
	worker.Handle(KindPasswordResetEmail, func(ctx context.Context, e *Envelope) error {
		panic("boom")
	})

	ctx := context.Background()
	_, err := NewQueue(broker, testKey).Enqueue(ctx, KindPasswordResetEmail, &PasswordResetEmail{})
	require.NoError(t, err)

	ok, err := worker.Next(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Zero(t, broker.len(testKey))
}
