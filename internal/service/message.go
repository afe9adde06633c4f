package service

import (
	"context"

	"eloquentlog/internal/model"
	"eloquentlog/internal/repository"
	"eloquentlog/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const defaultMessageLang = "en"

// MessageService 消息服务接口，所有操作都限定在用户自己的命名空间内
type MessageService interface {
	List(ctx context.Context, userID, namespaceID string, offset, limit int64) ([]*model.Message, int64, error)
	Create(ctx context.Context, userID, namespaceID string, req *model.MessageRequest) (*model.Message, error)
	Get(ctx context.Context, userID, namespaceID, id string) (*model.Message, error)
	Update(ctx context.Context, userID, namespaceID, id string, req *model.MessageRequest) (*model.Message, error)
	Delete(ctx context.Context, userID, namespaceID, id string) error
}

// messageService 消息服务实现
type messageService struct {
	repo          repository.MessageRepository
	namespaceRepo repository.NamespaceRepository
}

// NewMessageService 创建消息服务实例
func NewMessageService(repo repository.MessageRepository, namespaceRepo repository.NamespaceRepository) MessageService {
	return &messageService{repo: repo, namespaceRepo: namespaceRepo}
}

func (s *messageService) namespace(ctx context.Context, userID, namespaceID string) (*model.Namespace, error) {
	namespace, err := s.namespaceRepo.GetByUser(ctx, userID, namespaceID)
	if err != nil {
		return nil, err
	}
	if namespace == nil {
		return nil, ErrNotFound
	}
	return namespace, nil
}

func (s *messageService) List(ctx context.Context, userID, namespaceID string, offset, limit int64) ([]*model.Message, int64, error) {
	if _, err := s.namespace(ctx, userID, namespaceID); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, namespaceID, offset, limit)
}

func (s *messageService) Create(ctx context.Context, userID, namespaceID string, req *model.MessageRequest) (*model.Message, error) {
	if _, err := s.namespace(ctx, userID, namespaceID); err != nil {
		return nil, err
	}

	message := &model.Message{
		NamespaceID: namespaceID,
		UserID:      userID,
	}
	if err := fill(message, req); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, message); err != nil {
		return nil, err
	}

	if err := s.namespaceRepo.Touch(ctx, namespaceID, message.CreatedAt); err != nil {
		logger.Warn("Failed to touch namespace %s: %v", namespaceID, err)
	}
	return message, nil
}

func (s *messageService) Get(ctx context.Context, userID, namespaceID, id string) (*model.Message, error) {
	if _, err := s.namespace(ctx, userID, namespaceID); err != nil {
		return nil, err
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	message, err := s.repo.Get(ctx, namespaceID, objectID)
	if err != nil {
		return nil, err
	}
	if message == nil {
		return nil, ErrNotFound
	}
	return message, nil
}

func (s *messageService) Update(ctx context.Context, userID, namespaceID, id string, req *model.MessageRequest) (*model.Message, error) {
	message, err := s.Get(ctx, userID, namespaceID, id)
	if err != nil {
		return nil, err
	}
	if err := fill(message, req); err != nil {
		return nil, err
	}

	ok, err := s.repo.Update(ctx, message)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return message, nil
}

func (s *messageService) Delete(ctx context.Context, userID, namespaceID, id string) error {
	if _, err := s.namespace(ctx, userID, namespaceID); err != nil {
		return err
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	ok, err := s.repo.Delete(ctx, namespaceID, objectID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// fill 校验请求并写入消息，未给出的级别、格式和语言取默认值
func fill(message *model.Message, req *model.MessageRequest) error {
	level := req.Level
	if level == "" {
		level = model.MessageLevelInformation
	}
	format := req.Format
	if format == "" {
		format = model.MessageFormatTOML
	}
	if !model.ValidLevel(level) || !model.ValidFormat(format) {
		return ErrInvalidArgument
	}

	lang := req.Lang
	if lang == "" {
		lang = defaultMessageLang
	}

	message.Code = req.Code
	message.Lang = lang
	message.Level = level
	message.Format = format
	message.Title = req.Title
	message.Content = req.Content
	return nil
}
