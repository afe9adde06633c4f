package main

import (
	"context"
	"fmt"
	"time"

	"eloquentlog/internal/boot"
	"eloquentlog/pkg/copyright"
	"eloquentlog/pkg/logger"
	"eloquentlog/pkg/version"

	"github.com/gin-gonic/gin"
)

// checkFatalErr 用于统一处理错误检查并中断流程。
func checkFatalErr(err error, message string) {
	if err != nil {
		logger.Fatal("%s: %v", message, err)
	}
}

func main() {
	if version.BuildTime == "unknown" {
		version.BuildTime = time.Now().Format(time.RFC3339)
	}

	// 加载配置文件（Configuration）
	cfg, err := boot.InitConfig("config/config.yaml")
	checkFatalErr(err, "Failed to load config")

	gin.SetMode(cfg.Server.Mode)

	// 初始化数据库连接（PostgreSQL）
	db, err := boot.InitDB(&cfg.Database)
	checkFatalErr(err, "Failed to connect to database")

	sqlDB, err := db.DB()
	checkFatalErr(err, "Failed to get underlying *sql.DB")
	defer sqlDB.Close()

	// 初始化 MongoDB 连接（MongoDB）
	mongodb, err := boot.InitMongo(&cfg.MongoDB)
	checkFatalErr(err, "Failed to connect to MongoDB")
	defer mongodb.Close(context.Background())

	// 初始化 Redis 客户端（Redis）
	redisClient, err := boot.InitRedis(&cfg.Redis)
	checkFatalErr(err, "Failed to connect to Redis")
	defer redisClient.Close()

	repos := boot.InitRepositories(db, mongodb)
	services := boot.InitServices(cfg, repos, redisClient)
	handlers := boot.InitHandlers(services, cfg)

	r := gin.Default()
	boot.InitRouter(r, handlers, services)

	userCount, err := repos.UserRepo.Count(context.Background())
	if err != nil {
		logger.Warn("Failed to count users: %v", err)
	}

	copyright.PrintCopyright(copyright.SystemStatus{
		Version:        version.GetVersion(),
		RedisStatus:    redisClient != nil,
		MongoDBStatus:  mongodb != nil,
		PostgresStatus: db != nil,
		QueueKey:       cfg.Queue.Key,
		UserCount:      userCount,
		Routes:         r.Routes(),
	})

	// 启动服务器（Server）
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("Starting server on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
