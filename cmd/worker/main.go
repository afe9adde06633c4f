package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"eloquentlog/internal/boot"
	"eloquentlog/internal/job"
	"eloquentlog/internal/mail"
	"eloquentlog/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "配置文件路径")
	flag.Parse()

	cfg, err := boot.InitConfig(*configPath)
	if err != nil {
		logger.Fatal("Failed to load config: %v", err)
	}

	redisClient, err := boot.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	var sender mail.Sender = mail.LogSender{}
	if cfg.SMTP.Host != "" {
		sender = mail.NewSMTPSender(&cfg.SMTP)
	} else {
		logger.Warn("SMTP is not configured, emails are only logged")
	}

	worker := job.NewWorker(redisClient, cfg.Queue.Key, cfg.Queue.BlockTimeout, cfg.Queue.MaxAttempts)
	mail.NewMailer(sender, cfg.Console.URL, cfg.Token.Verification.TTL).Register(worker)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := worker.Run(ctx); err != nil {
		logger.Fatal("Worker stopped: %v", err)
	}
	logger.Info("Worker stopped")
}
