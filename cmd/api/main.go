package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"saju-mbti/internal/bazi"
	"saju-mbti/internal/config"
	"saju-mbti/internal/content"
	"saju-mbti/internal/db"
	"saju-mbti/internal/engine"
	apihttp "saju-mbti/internal/http"
	"saju-mbti/internal/repository"
	"saju-mbti/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if _, err := db.Migrate(ctx, pool, logger); err != nil {
		logger.Fatal("db migrate", zap.Error(err))
	}

	tables, err := content.Load()
	if err != nil {
		logger.Fatal("content load", zap.Error(err))
	}

	var provider bazi.Provider
	if cfg.PillarProvider == "lunar" {
		provider = bazi.NewLunarProvider()
	}
	resolver := bazi.NewResolver(logger, provider)
	eng := engine.New(tables, resolver)

	var (
		limiter    service.RateLimiter
		shareStore service.ShareTokenStore
	)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			limiter = service.NewRedisRateLimiter(redisClient, time.Minute, cfg.RateLimitPerMinute)
			shareStore = service.NewRedisShareTokenStore(redisClient)
		}
		cancel()
	}
	if limiter == nil && cfg.RateLimitPerMinute > 0 {
		limiter = service.NewMemoryRateLimiter(time.Minute, cfg.RateLimitPerMinute)
	}
	if cfg.ShareSecret == "dev-share-secret" {
		logger.Warn("share secret not configured, using development default")
	}

	profileRepo := repository.NewPgProfileRepository(pool)
	reflectionRepo := repository.NewPgReflectionRepository(pool)

	profileSvc := service.NewProfileService(logger, profileRepo, resolver, cfg.DefaultTimezone)
	insightSvc := service.NewInsightService(logger, eng, profileSvc)
	reflectionSvc := service.NewReflectionService(logger, reflectionRepo, insightSvc)
	shareSvc := service.NewShareService(cfg.ShareSecret, cfg.ShareTTL(), shareStore)
	quizSvc := service.NewQuizService(tables)

	profileHandler := apihttp.NewProfileHandler(logger, profileSvc, insightSvc, reflectionSvc)
	insightHandler := apihttp.NewInsightHandler(logger, insightSvc, shareSvc, quizSvc)
	router := apihttp.NewRouter(logger, limiter, cfg.TrustedProxies, pool, profileHandler, insightHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting server",
			zap.String("port", cfg.HTTPPort),
			zap.String("pillar_provider", resolver.ProviderName()),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down server")
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
