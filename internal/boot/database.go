package boot

import (
	"context"
	"time"

	"eloquentlog/internal/model"
	"eloquentlog/pkg/config"
	"eloquentlog/pkg/database"
	"eloquentlog/pkg/redis"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/gorm"
)

// InitDB 初始化 PostgreSQL 数据库连接
func InitDB(cfg *database.Config) (*gorm.DB, error) {
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		return nil, err
	}

	// 自动迁移数据库表
	if err := db.AutoMigrate(
		&model.User{},
		&model.UserEmail{},
		&model.AccessToken{},
		&model.Namespace{},
	); err != nil {
		return nil, err
	}

	return db, nil
}

// InitMongo 初始化 MongoDB 连接并创建消息索引
func InitMongo(cfg *config.MongoDBConfig) (*database.MongoClient, error) {
	client, err := database.NewMongoClient(&database.MongoDBConfig{
		URI:         cfg.URI,
		Database:    cfg.Database,
		MaxPoolSize: cfg.MaxPoolSize,
		MinPoolSize: cfg.MinPoolSize,
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err = client.Collection("messages").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "namespace_id", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("namespace_created_at"),
	})
	if err != nil {
		client.Close(context.Background())
		return nil, err
	}
	return client, nil
}

// InitRedis 初始化 Redis 客户端
func InitRedis(cfg *config.RedisConfig) (*redis.Client, error) {
	return redis.NewClient(&redis.Config{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}
