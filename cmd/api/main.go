package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "orbittrack/api/openapi"
	"orbittrack/internal/api/graph"
	"orbittrack/internal/api/handler"
	"orbittrack/internal/api/router"
	"orbittrack/internal/config"
	"orbittrack/internal/infra/database"
	"orbittrack/internal/infra/geckoterminal"
	infraKafka "orbittrack/internal/infra/kafka"
	"orbittrack/internal/observability/metrics"
	"orbittrack/internal/repository"
	"orbittrack/internal/service"
	"orbittrack/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// @title OrbitTrack API
// @version 1.0
// @description Solana 热门池子与钱包收藏 GraphQL 服务

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host 127.0.0.1:4000
// @BasePath /

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	flag.Parse()

	// 加载配置文件
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 初始化日志系统
	if err := logger.Init(&cfg.Log); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	// 初始化数据库
	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	if err := database.AutoMigrate(database.Get()); err != nil {
		logger.Fatal("Failed to auto migrate", zap.Error(err))
	}

	// Kafka 可选，未配置 brokers 时 producer 为 nil
	producer := infraKafka.NewProducer(&cfg.Kafka)
	defer producer.Close()

	metrics.Init()

	// 初始化依赖（Repository -> Service -> Handler）
	db := database.Get()
	userRepo := repository.NewUserRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)

	userService := service.NewUserService(userRepo)
	favoriteService := service.NewFavoriteService(favoriteRepo, producer)
	store := service.NewStore(userService, favoriteService)

	marketService := service.NewMarketService(geckoterminal.NewClient(&cfg.Market))

	schema, err := graph.NewSchema(marketService)
	if err != nil {
		logger.Fatal("Failed to build GraphQL schema", zap.Error(err))
	}

	gin.SetMode(cfg.App.Mode)
	r := router.New(&cfg.App, handler.NewGraphQLHandler(schema, store))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: cfg.CORS.AllowedMethods,
		AllowedHeaders: []string{"Content-Type", "Authorization", "x-public-key"},
	}).Handler(r)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: corsHandler,
	}

	logger.Info("Starting application",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("mode", cfg.App.Mode),
		zap.String("addr", addr),
	)
	logger.Info("Configuration loaded",
		zap.String("database", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)),
		zap.String("market", cfg.Market.BaseURL),
		zap.String("network", cfg.Market.Network),
		zap.Bool("kafka", cfg.Kafka.Enabled()),
	)

	// 监听系统信号，优雅退出
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownDuration())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
}
