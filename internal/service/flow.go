package service

import (
	"context"
	"errors"

	"eloquentlog/internal/repository"
	"eloquentlog/pkg/logger"
	"eloquentlog/pkg/token"
)

// Finder 根据凭证主体定位目标
type Finder[T any] func(ctx context.Context, subject, credential string) (T, error)

// Transition 目标的状态变更，在可串行化事务中执行
type Transition[T any] func(tx repository.AccountTx, target T) error

// Flow 基于邮件链接凭证的状态变更流程
type Flow[T any] struct {
	name    string
	signer  *token.Signer
	store   repository.AccountStore
	find    Finder[T]
	transit Transition[T]
	failure error
}

// NewFlow 创建流程，failure 为事务失败时对外报告的错误
func NewFlow[T any](name string, signer *token.Signer, store repository.AccountStore, find Finder[T], transit Transition[T], failure error) *Flow[T] {
	return &Flow[T]{
		name:    name,
		signer:  signer,
		store:   store,
		find:    find,
		transit: transit,
		failure: failure,
	}
}

// Load 解码凭证并定位目标，解码失败与目标不存在都返回 ErrInvalidToken
func (f *Flow[T]) Load(ctx context.Context, credential string) (T, error) {
	var zero T

	claims, err := f.signer.Verify(credential)
	if err != nil {
		logger.Debug("[%s] credential rejected: %v", f.name, err)
		return zero, ErrInvalidToken
	}

	target, err := f.find(ctx, token.Subject(claims), credential)
	if err != nil {
		if !errors.Is(err, errTargetNotFound) {
			logger.Error("[%s] failed to load target: %v", f.name, err)
		}
		return zero, ErrInvalidToken
	}
	return target, nil
}

// Apply 在单个事务中执行状态变更，任一步骤失败则整体回滚
func (f *Flow[T]) Apply(ctx context.Context, target T) error {
	err := f.store.Serializable(ctx, func(tx repository.AccountTx) error {
		return f.transit(tx, target)
	})
	if err != nil {
		if errors.Is(err, repository.ErrRollbackTransaction) {
			logger.Warn("[%s] transaction rolled back", f.name)
		} else {
			logger.Error("[%s] transaction failed: %v", f.name, err)
		}
		return f.failure
	}
	return nil
}
