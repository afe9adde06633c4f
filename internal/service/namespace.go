package service

import (
	"context"

	"eloquentlog/internal/model"
	"eloquentlog/internal/repository"
	"eloquentlog/pkg/logger"
)

// NamespaceService 命名空间服务接口
type NamespaceService interface {
	List(ctx context.Context, userID string, offset, limit int) ([]model.Namespace, int64, error)
	Create(ctx context.Context, userID string, req *model.NamespaceRequest) (*model.Namespace, error)
	Get(ctx context.Context, userID, id string) (*model.Namespace, error)
	Update(ctx context.Context, userID, id string, req *model.NamespaceRequest) (*model.Namespace, error)
	// Delete 归档命名空间并删除其消息
	Delete(ctx context.Context, userID, id string) error
}

// namespaceService 命名空间服务实现
type namespaceService struct {
	repo        repository.NamespaceRepository
	messageRepo repository.MessageRepository
}

// NewNamespaceService 创建命名空间服务实例
func NewNamespaceService(repo repository.NamespaceRepository, messageRepo repository.MessageRepository) NamespaceService {
	return &namespaceService{repo: repo, messageRepo: messageRepo}
}

func (s *namespaceService) List(ctx context.Context, userID string, offset, limit int) ([]model.Namespace, int64, error) {
	return s.repo.List(ctx, userID, offset, limit)
}

func (s *namespaceService) Create(ctx context.Context, userID string, req *model.NamespaceRequest) (*model.Namespace, error) {
	namespace := &model.Namespace{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, namespace); err != nil {
		return nil, err
	}
	return namespace, nil
}

func (s *namespaceService) Get(ctx context.Context, userID, id string) (*model.Namespace, error) {
	namespace, err := s.repo.GetByUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if namespace == nil {
		return nil, ErrNotFound
	}
	return namespace, nil
}

func (s *namespaceService) Update(ctx context.Context, userID, id string, req *model.NamespaceRequest) (*model.Namespace, error) {
	namespace, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	namespace.Name = req.Name
	namespace.Description = req.Description
	if err := s.repo.Update(ctx, namespace); err != nil {
		return nil, err
	}
	return namespace, nil
}

func (s *namespaceService) Delete(ctx context.Context, userID, id string) error {
	ok, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}

	if err := s.messageRepo.DeleteByNamespace(ctx, id); err != nil {
		logger.Error("Failed to delete messages of namespace %s: %v", id, err)
	}
	return nil
}
