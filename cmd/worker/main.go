package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"vidverse/internal/config"
	infraKafka "vidverse/internal/infra/kafka"
	infraMinio "vidverse/internal/infra/minio"
	"vidverse/internal/probe"
	"vidverse/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	configPath := os.Getenv("VIDVERSE_CONFIG")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.FilePath); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	storage, err := infraMinio.New(&cfg.MinIO)
	if err != nil {
		logger.Fatal("Failed to init minio", zap.Error(err))
	}

	producer := infraKafka.NewProducer(&cfg.Kafka)
	defer producer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 监听系统信号，优雅退出
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	}()

	worker := probe.NewWorker(storage, producer, filepath.Join(os.TempDir(), "vidverse-probe"))

	infraKafka.Consume(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic("video_uploaded"), "vidverse-probe-worker", worker.Handle)
}
