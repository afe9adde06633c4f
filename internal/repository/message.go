package repository

import (
	"context"
	"time"

	"eloquentlog/internal/model"
	"eloquentlog/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	messageCollection = "messages"
)

// MessageRepository 消息仓储接口
type MessageRepository interface {
	// Create 创建消息
	Create(ctx context.Context, message *model.Message) error
	// Get 获取命名空间下的消息
	Get(ctx context.Context, namespaceID string, id primitive.ObjectID) (*model.Message, error)
	// List 按创建时间倒序获取消息
	List(ctx context.Context, namespaceID string, offset, limit int64) ([]*model.Message, int64, error)
	// Update 更新消息内容
	Update(ctx context.Context, message *model.Message) (bool, error)
	// Delete 删除消息
	Delete(ctx context.Context, namespaceID string, id primitive.ObjectID) (bool, error)
	// DeleteByNamespace 删除命名空间下的全部消息
	DeleteByNamespace(ctx context.Context, namespaceID string) error
}

// messageRepository 消息仓储实现
type messageRepository struct {
	mongo *database.MongoClient
}

// NewMessageRepository 创建消息仓储实例
func NewMessageRepository(mongo *database.MongoClient) MessageRepository {
	return &messageRepository{mongo: mongo}
}

// Create 创建消息
func (r *messageRepository) Create(ctx context.Context, message *model.Message) error {
	now := time.Now()
	message.CreatedAt = now
	message.UpdatedAt = now

	result, err := r.mongo.Collection(messageCollection).InsertOne(ctx, message)
	if err != nil {
		return err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		message.ID = id
	}
	return nil
}

// Get 获取消息
func (r *messageRepository) Get(ctx context.Context, namespaceID string, id primitive.ObjectID) (*model.Message, error) {
	var message model.Message
	err := r.mongo.Collection(messageCollection).
		FindOne(ctx, bson.M{"_id": id, "namespace_id": namespaceID}).
		Decode(&message)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// List 获取消息列表
func (r *messageRepository) List(ctx context.Context, namespaceID string, offset, limit int64) ([]*model.Message, int64, error) {
	collection := r.mongo.Collection(messageCollection)
	filter := bson.M{"namespace_id": namespaceID}

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(offset).
		SetLimit(limit)

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var messages []*model.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

// Update 更新消息
func (r *messageRepository) Update(ctx context.Context, message *model.Message) (bool, error) {
	message.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"code":       message.Code,
			"lang":       message.Lang,
			"level":      message.Level,
			"format":     message.Format,
			"title":      message.Title,
			"content":    message.Content,
			"updated_at": message.UpdatedAt,
		},
	}

	result, err := r.mongo.Collection(messageCollection).
		UpdateOne(ctx, bson.M{"_id": message.ID, "namespace_id": message.NamespaceID}, update)
	if err != nil {
		return false, err
	}
	return result.MatchedCount == 1, nil
}

// Delete 删除消息
func (r *messageRepository) Delete(ctx context.Context, namespaceID string, id primitive.ObjectID) (bool, error) {
	result, err := r.mongo.Collection(messageCollection).
		DeleteOne(ctx, bson.M{"_id": id, "namespace_id": namespaceID})
	if err != nil {
		return false, err
	}
	return result.DeletedCount == 1, nil
}

// DeleteByNamespace 删除命名空间下的消息
func (r *messageRepository) DeleteByNamespace(ctx context.Context, namespaceID string) error {
	_, err := r.mongo.Collection(messageCollection).DeleteMany(ctx, bson.M{"namespace_id": namespaceID})
	return err
}
