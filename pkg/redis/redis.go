package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNil 键不存在
var ErrNil = redis.Nil

// Client Redis客户端
type Client struct {
	*redis.Client
}

// Config Redis配置
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewClient 创建Redis客户端
func NewClient(config *Config) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	})

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Client{client}, nil
}

// Set 设置键值对
func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.Client.Set(ctx, key, value, expiration).Err()
}

// Get 获取值，键不存在时返回 ErrNil
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	return c.Client.Get(ctx, key).Result()
}

// Del 删除键
func (c *Client) Del(ctx context.Context, keys ...string) error {
	return c.Client.Del(ctx, keys...).Err()
}

// LPush 将值推入列表头部
func (c *Client) LPush(ctx context.Context, key string, values ...interface{}) error {
	return c.Client.LPush(ctx, key, values...).Err()
}

// BRPop 阻塞地从列表尾部弹出一个值，超时返回 ErrNil
func (c *Client) BRPop(ctx context.Context, timeout time.Duration, key string) (string, error) {
	result, err := c.Client.BRPop(ctx, timeout, key).Result()
	if err != nil {
		return "", err
	}
	// result[0] 为键名，result[1] 为值
	if len(result) != 2 {
		return "", fmt.Errorf("unexpected brpop reply: %v", result)
	}
	return result[1], nil
}

// IsNil 判断是否为键不存在错误
func IsNil(err error) bool {
	return errors.Is(err, redis.Nil)
}
