package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"eloquentlog/pkg/logger"
	"eloquentlog/pkg/redis"
)

// Handler 任务处理函数
type Handler func(ctx context.Context, envelope *Envelope) error

// Worker 从队列消费任务，失败的任务重新入队直到达到最大尝试次数
type Worker struct {
	broker       Broker
	key          string
	blockTimeout time.Duration
	maxAttempts  int
	handlers     map[Kind]Handler
}

// NewWorker 创建任务消费者
func NewWorker(broker Broker, key string, blockTimeout time.Duration, maxAttempts int) *Worker {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Worker{
		broker:       broker,
		key:          key,
		blockTimeout: blockTimeout,
		maxAttempts:  maxAttempts,
		handlers:     make(map[Kind]Handler),
	}
}

// Handle 注册任务处理器
func (w *Worker) Handle(kind Kind, handler Handler) {
	w.handlers[kind] = handler
}

// Run 持续消费任务，直到 ctx 结束
func (w *Worker) Run(ctx context.Context) error {
	logger.Info("Worker listening on queue %s", w.key)
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		if _, err := w.Next(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logger.Error("Failed to consume queue %s: %v", w.key, err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Second):
			}
		}
	}
}

// Next 取出并处理一个任务，队列为空时返回 false
func (w *Worker) Next(ctx context.Context) (bool, error) {
	data, err := w.broker.BRPop(ctx, w.blockTimeout, w.key)
	if err != nil {
		if redis.IsNil(err) {
			return false, nil
		}
		return false, err
	}

	var envelope Envelope
	if err := json.Unmarshal([]byte(data), &envelope); err != nil {
		// 无法解析的任务直接丢弃
		logger.Error("Dropping undecodable job: %v", err)
		return true, nil
	}

	w.process(ctx, &envelope)
	return true, nil
}

func (w *Worker) process(ctx context.Context, envelope *Envelope) {
	envelope.Attempts++

	err := w.dispatch(ctx, envelope)
	if err == nil {
		logger.Info("Job %s (%s) done after %d attempt(s)", envelope.ID, envelope.Kind, envelope.Attempts)
		return
	}

	if errors.Is(err, ErrUnknownKind) || envelope.Attempts >= w.maxAttempts {
		logger.Error("Job %s (%s) failed permanently after %d attempt(s): %v", envelope.ID, envelope.Kind, envelope.Attempts, err)
		return
	}

	logger.Warn("Job %s (%s) failed, attempt=%d: %v", envelope.ID, envelope.Kind, envelope.Attempts, err)
	if err := push(ctx, w.broker, w.key, envelope); err != nil {
		logger.Error("Failed to re-enqueue job %s: %v", envelope.ID, err)
	}
}

func (w *Worker) dispatch(ctx context.Context, envelope *Envelope) (err error) {
	handler, ok := w.handlers[envelope.Kind]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKind, envelope.Kind)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return handler(ctx, envelope)
}
