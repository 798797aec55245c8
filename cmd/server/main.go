package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/feedtamer/config"
	"github.com/d60-Lab/feedtamer/internal/api/handler"
	"github.com/d60-Lab/feedtamer/internal/api/router"
	"github.com/d60-Lab/feedtamer/internal/cache"
	"github.com/d60-Lab/feedtamer/internal/model"
	"github.com/d60-Lab/feedtamer/internal/repository"
	"github.com/d60-Lab/feedtamer/internal/service"
	"github.com/d60-Lab/feedtamer/pkg/database"
	"github.com/d60-Lab/feedtamer/pkg/logger"
	"github.com/d60-Lab/feedtamer/pkg/tracing"
)

// @title feedtamer API
// @version 1.0
// @description 社媒聚合 feed 服务
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("load config: %v", err))
	}
	if err := logger.Init(cfg.Log.Level); err != nil {
		panic(fmt.Sprintf("init logger: %v", err))
	}
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, cfg)
	if err != nil {
		logger.Fatal("init tracing", zap.Error(err))
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Fatal("init database", zap.Error(err))
	}
	if err := db.AutoMigrate(&model.User{}, &model.Account{}, &model.Content{}, &model.UserInteraction{}); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		// 缓存不可用时降级为直读数据库
		logger.Warn("redis unavailable, account snapshots uncached", zap.Error(err))
		rdb = nil
	}

	userRepo := repository.NewUserRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	contentRepo := repository.NewContentRepository(db)
	interactionRepo := repository.NewInteractionRepository(db)

	accountCache := cache.NewAccountCache(accountRepo, rdb, cfg.Redis.TTL)

	refresher := service.NewStatsRefresher(interactionRepo, accountRepo, 4096)
	stopRefresher := refresher.Start(2)
	defer func() { _ = stopRefresher(context.Background()) }()

	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	accountSvc := service.NewAccountService(accountRepo, accountCache)
	feedSvc := service.NewFeedService(accountCache, accountRepo, contentRepo)
	interactionSvc := service.NewInteractionService(contentRepo, interactionRepo, refresher)

	h := handler.New(authSvc, accountSvc, feedSvc, interactionSvc)
	engine := router.New(cfg, h, authSvc)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
