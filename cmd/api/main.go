package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vidverse/api/openapi"
	"vidverse/internal/api/dto"
	"vidverse/internal/api/handler"
	"vidverse/internal/api/middleware"
	"vidverse/internal/api/router"
	"vidverse/internal/config"
	"vidverse/internal/infra/database"
	infraES "vidverse/internal/infra/elasticsearch"
	infraKafka "vidverse/internal/infra/kafka"
	infraMinio "vidverse/internal/infra/minio"
	infraRedis "vidverse/internal/infra/redis"
	"vidverse/internal/repository"
	"vidverse/internal/service"
	"vidverse/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title VidVerse API
// @version 1.0
// @description 视频分享平台 API 服务
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 输入格式: Bearer {token}

func main() {
	// .env 可选，仅用于本地开发
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

	// 初始化数据库并迁移
	if err := database.Init(&cfg.Database, cfg.App.Mode); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	db := database.Get()
	if err := database.Migrate(db); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	// Redis：token 吊销表 + 频道统计缓存
	if err := infraRedis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to init redis", zap.Error(err))
	}
	defer infraRedis.Close()

	storage, err := infraMinio.New(&cfg.MinIO)
	if err != nil {
		logger.Fatal("Failed to init minio", zap.Error(err))
	}

	producer := infraKafka.NewProducer(&cfg.Kafka)
	defer producer.Close()

	// Elasticsearch 可选，失败则搜索降级到 DB
	var (
		indexer  service.SearchIndexer
		esClient *infraES.Client
	)
	if esClient, err = infraES.New(&cfg.Elasticsearch); err != nil {
		logger.Warn("Elasticsearch init failed, search will fallback to DB", zap.Error(err))
	} else if err := esClient.EnsureIndex(context.Background()); err != nil {
		logger.Warn("Elasticsearch index init failed, search will fallback to DB", zap.Error(err))
	} else {
		indexer = esClient
	}

	// 初始化依赖（Repository -> Service -> Handler）
	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)

	authService := service.NewAuthService(userRepo, storage, infraRedis.NewTokenBlacklist(infraRedis.Client))
	userService := service.NewUserService(userRepo, storage)
	videoService := service.NewVideoService(videoRepo, userRepo, likeRepo, storage, producer, indexer)
	searchService := service.NewSearchService(videoRepo, indexer)
	commentService := service.NewCommentService(commentRepo, videoRepo)
	tweetService := service.NewTweetService(tweetRepo, userRepo)
	likeService := service.NewLikeService(likeRepo, videoRepo, commentRepo, tweetRepo)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, userRepo)
	playlistService := service.NewPlaylistService(playlistRepo, videoRepo, userRepo)
	dashboardService := service.NewDashboardService(videoRepo, infraRedis.NewJSONCache(infraRedis.Client), cfg.Redis.StatsTTLDuration())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 启动时全量同步搜索索引
	if indexer != nil {
		go func() {
			if _, _, err := searchService.Reindex(ctx, esClient); err != nil {
				logger.Warn("Search index sync failed", zap.Error(err))
			}
		}()
	}

	// 消费 worker 回报的视频时长（后台 goroutine）
	go infraKafka.Consume(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic("video_probed"), cfg.Kafka.GroupID, videoService.HandleVideoProbed)

	pagination := config.GetPagination()
	dto.SetPageLimits(pagination.DefaultLimit, pagination.MaxLimit)

	gin.SetMode(cfg.App.Mode)
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.App.CorsOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"service":   cfg.App.Name,
			"version":   cfg.App.Version,
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	openapi.SwaggerInfo.Version = cfg.App.Version
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.Setup(r, &router.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		User:         handler.NewUserHandler(userService),
		Video:        handler.NewVideoHandler(videoService),
		Search:       handler.NewSearchHandler(searchService),
		Comment:      handler.NewCommentHandler(commentService),
		Like:         handler.NewLikeHandler(likeService),
		Subscription: handler.NewSubscriptionHandler(subscriptionService),
		Playlist:     handler.NewPlaylistHandler(playlistService),
		Tweet:        handler.NewTweetHandler(tweetService),
		Dashboard:    handler.NewDashboardHandler(dashboardService),
	}, authService)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting application",
			zap.String("name", cfg.App.Name),
			zap.String("version", cfg.App.Version),
			zap.String("mode", cfg.App.Mode),
			zap.String("addr", addr),
			zap.Bool("search_index", indexer != nil),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 监听系统信号，优雅退出
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
}
