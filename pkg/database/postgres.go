package database

import (
	"context"
	"fmt"

	"eloquentlog/pkg/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Config 数据库配置
type Config struct {
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxIdleConns int  `mapstructure:"max_idle_conns"`
	MaxOpenConns int  `mapstructure:"max_open_conns"`
	Debug        bool `mapstructure:"debug"` // 打印SQL
}

// DSN 返回PostgreSQL连接串
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		c.Host, c.User, c.Password, c.DBName, c.Port, c.SSLMode)
}

// NewPostgresDB 创建一个新的PostgreSQL连接
func NewPostgresDB(config *Config) (*gorm.DB, error) {
	level := gormlogger.Warn
	if config.Debug {
		level = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(config.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	})
	if err != nil {
		logger.Error("Failed to connect to database: %v", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// 获取底层的sqlDB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// 设置连接池
	sqlDB.SetMaxIdleConns(orDefault(config.MaxIdleConns, 10))
	sqlDB.SetMaxOpenConns(orDefault(config.MaxOpenConns, 100))

	return db, nil
}

// SerializableTx 在 SERIALIZABLE, READ WRITE, DEFERRABLE 事务中执行 fn
//
// fn 返回任意错误都会回滚整个事务。
func SerializableTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SET TRANSACTION ISOLATION LEVEL SERIALIZABLE, READ WRITE, DEFERRABLE").Error; err != nil {
			return err
		}
		return fn(tx)
	})
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
