package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"smart-upi.backend/internal/config"
	domainRepos "smart-upi.backend/internal/domain/repositories"
	"smart-upi.backend/internal/infrastructure/jobs"
	"smart-upi.backend/internal/infrastructure/repositories"
	"smart-upi.backend/internal/interfaces/http/handlers"
	"smart-upi.backend/internal/interfaces/http/middleware"
	"smart-upi.backend/internal/usecases"
	"smart-upi.backend/pkg/jwt"
	"smart-upi.backend/pkg/logger"
	"smart-upi.backend/pkg/redis"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	logger.Init(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Redis backs the idempotency middleware and, optionally, the state
	// store itself. Unreachable Redis only disables idempotency replay
	// unless it is the selected store driver.
	redisErr := redis.Init(cfg.Redis.URL, cfg.Redis.Password)
	if redisErr != nil {
		logger.Warn(context.Background(), "Redis unavailable, idempotency disabled", zap.Error(redisErr))
	}

	store, err := buildStateStore(cfg, redisErr)
	if err != nil {
		return err
	}

	// JWT + merchant auth
	jwtService := jwt.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.AccessExpiry, cfg.Auth.RefreshExpiry)
	authUsecase, err := buildAuthUsecase(cfg, jwtService)
	if err != nil {
		return fmt.Errorf("failed to initialize merchant auth: %w", err)
	}

	// The ledger engine and its settlement worker
	decider := usecases.NewRandomDecider(cfg.Settlement.SuccessRate)
	ledger, err := usecases.NewLedgerUsecase(context.Background(), store, decider, cfg.Settlement.Delay, cfg.Settlement.SyncDelay)
	if err != nil {
		return err
	}

	worker := jobs.NewSettlementWorker(ledger.SettleAttempt)
	ledger.SetScheduler(worker)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go worker.Start(ctx)

	// Handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	orderHandler := handlers.NewOrderHandler(ledger)
	attemptHandler := handlers.NewAttemptHandler(ledger)
	networkHandler := handlers.NewNetworkHandler(ledger)
	adminHandler := handlers.NewAdminHandler(ledger)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	registerHealthRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:    authHandler,
		orderHandler:   orderHandler,
		attemptHandler: attemptHandler,
		networkHandler: networkHandler,
		adminHandler:   adminHandler,
		merchantAuth:   middleware.MerchantAuthMiddleware(jwtService),
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info(context.Background(), "shutting down")
		worker.Stop()
		cancel()
	}()

	logger.Info(ctx, "smart-upi backend starting",
		zap.String("port", cfg.Server.Port),
		zap.String("store", cfg.Store.Driver),
	)

	if err := r.Run(":" + cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func buildStateStore(cfg *config.Config, redisErr error) (domainRepos.StateStore, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverRedis:
		if redisErr != nil {
			return nil, fmt.Errorf("redis state store selected but redis is unavailable: %w", redisErr)
		}
		return repositories.NewRedisStateStore(redis.GetClient()), nil
	case config.StoreDriverPostgres:
		db, err := gorm.Open(postgres.Open(cfg.Store.Postgres.URL()), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return repositories.NewGormStateStore(db)
	case config.StoreDriverSQLite:
		db, err := gorm.Open(sqlite.Open(cfg.Store.SQLitePath), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return repositories.NewGormStateStore(db)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func buildAuthUsecase(cfg *config.Config, jwtService *jwt.JWTService) (*usecases.AuthUsecase, error) {
	if cfg.Auth.MerchantSecretHash != "" {
		return usecases.NewAuthUsecase(jwtService, cfg.Auth.MerchantSecretHash), nil
	}
	return usecases.NewAuthUsecaseFromPlainSecret(jwtService, cfg.Auth.MerchantSecret)
}
