package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"eloquentlog/pkg/database"
	"eloquentlog/pkg/token"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 应用配置结构
type Config struct {
	Server   ServerConfig    `mapstructure:"server"`
	Console  ConsoleConfig   `mapstructure:"console"`
	Database database.Config `mapstructure:"database"`
	MongoDB  MongoDBConfig   `mapstructure:"mongodb"`
	Redis    RedisConfig     `mapstructure:"redis"`
	Token    TokenConfig     `mapstructure:"token"`
	SMTP     SMTPConfig      `mapstructure:"smtp"`
	Queue    QueueConfig     `mapstructure:"queue"`
	Log      LogConfig       `mapstructure:"log"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port         int
	Mode         string
	Domain       string `mapstructure:"domain"`        // 签名Cookie的Domain
	SecureCookie bool   `mapstructure:"secure_cookie"` // 签名Cookie是否仅限HTTPS
}

// ConsoleConfig 前端控制台配置
type ConsoleConfig struct {
	URL string `mapstructure:"url"` // 邮件中链接的基础地址
}

// MongoDBConfig MongoDB配置
type MongoDBConfig struct {
	URI         string `mapstructure:"uri"`
	Database    string `mapstructure:"database"`
	MaxPoolSize uint64 `mapstructure:"max_pool_size"`
	MinPoolSize uint64 `mapstructure:"min_pool_size"`
}

// RedisConfig Redis配置
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// CredentialConfig 单一用途的令牌配置
type CredentialConfig struct {
	Issuer string        `mapstructure:"issuer"`
	Secret string        `mapstructure:"secret"`
	KeyID  string        `mapstructure:"key_id"`
	TTL    time.Duration `mapstructure:"ttl"`
}

// Settings 转换为令牌签发配置
func (c CredentialConfig) Settings() token.Settings {
	return token.Settings{
		Issuer: c.Issuer,
		Secret: c.Secret,
		KeyID:  c.KeyID,
		TTL:    c.TTL,
	}
}

// TokenConfig 各用途令牌配置
type TokenConfig struct {
	Activation     CredentialConfig `mapstructure:"activation"`
	Authentication CredentialConfig `mapstructure:"authentication"`
	Authorization  CredentialConfig `mapstructure:"authorization"`
	Verification   CredentialConfig `mapstructure:"verification"`
}

// SMTPConfig 邮件服务配置
type SMTPConfig struct {
	Host               string `mapstructure:"host"`
	Port               int    `mapstructure:"port"`
	Username           string `mapstructure:"username"`
	Password           string `mapstructure:"password"`
	FromEmail          string `mapstructure:"from_email"`
	FromName           string `mapstructure:"from_name"`
	ConnectTimeout     int    `mapstructure:"connect_timeout"` // 连接超时(秒)
	InsecureSkipVerify bool   `mapstructure:"insecure_skip_verify"`
}

// QueueConfig 任务队列配置
type QueueConfig struct {
	Key          string        `mapstructure:"key"`
	BlockTimeout time.Duration `mapstructure:"block_timeout"`
	MaxAttempts  int           `mapstructure:"max_attempts"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// LoadConfig 加载配置文件
func LoadConfig(configPath string) (*Config, error) {
	// .env 可选，不存在时忽略
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml") // 设置配置文件类型
	v.SetEnvPrefix("ELOQUENTLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv() // 读取环境变量
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.secure_cookie", true)
	v.SetDefault("queue.key", "eloquentlog:jobs")
	v.SetDefault("queue.block_timeout", 5*time.Second)
	v.SetDefault("queue.max_attempts", 3)
	v.SetDefault("log.level", "info")
	v.SetDefault("smtp.connect_timeout", 10)
	v.SetDefault("token.activation.ttl", 24*time.Hour)
	v.SetDefault("token.authentication.ttl", 24*time.Hour)
	v.SetDefault("token.authorization.ttl", 10*365*24*time.Hour)
	v.SetDefault("token.verification.ttl", time.Hour)
}

// Validate 校验必填配置项
func (c *Config) Validate() error {
	credentials := map[string]CredentialConfig{
		"activation":     c.Token.Activation,
		"authentication": c.Token.Authentication,
		"authorization":  c.Token.Authorization,
		"verification":   c.Token.Verification,
	}
	for name, cred := range credentials {
		if cred.Issuer == "" {
			return fmt.Errorf("token.%s.issuer is required", name)
		}
		if cred.Secret == "" {
			return fmt.Errorf("token.%s.secret is required", name)
		}
		if cred.TTL <= 0 {
			return fmt.Errorf("token.%s.ttl must be positive", name)
		}
	}
	if c.Queue.MaxAttempts < 1 {
		return fmt.Errorf("queue.max_attempts must be at least 1")
	}
	return nil
}
