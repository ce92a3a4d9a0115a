package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/tempoaovivo/account-service/internal/command"
	"github.com/tempoaovivo/account-service/internal/config"
	"github.com/tempoaovivo/account-service/internal/handler"
	"github.com/tempoaovivo/account-service/internal/query"
	"github.com/tempoaovivo/account-service/internal/repository"
	"github.com/tempoaovivo/account-service/shared/events"
	"github.com/tempoaovivo/account-service/shared/logger"
	"github.com/tempoaovivo/account-service/shared/middleware"
	redisClient "github.com/tempoaovivo/account-service/shared/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	log := logger.New(cfg.LogLevel, cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database connection (users table)
	db, err := repository.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	repo := repository.NewUserRepository(db)
	health := handler.NewHealthHandler(repo, log)

	// Redis is optional: without it events are dropped
	var publisher command.EventPublisher = command.NopPublisher{}
	if cfg.RedisAddr != "" {
		redis, err := redisClient.NewClient(ctx, redisClient.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redis.Close()
		publisher = events.NewPublisher(redis.Client, events.DefaultMaxLen)
		health.WithCheck("redis", redis)
		log.WithField("addr", cfg.RedisAddr).Info("publishing user events to redis")
	}

	tokens, err := middleware.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		log.Fatalf("Failed to set up tokens: %v", err)
	}

	// --- CQRS wiring ---
	commandSvc := command.NewUserCommandService(repo, publisher, log)
	authSvc := query.NewAuthQueryService(repo, tokens, log)
	querySvc := query.NewUserQueryService(repo)

	var guard gin.HandlerFunc
	if cfg.RequireAuth {
		guard = middleware.AuthMiddleware(tokens)
	}

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.LoggingMiddleware(log))
	handler.RegisterRoutes(router,
		health,
		handler.NewAuthHandler(authSvc, log),
		handler.NewUserHandler(commandSvc, querySvc, log),
		guard,
	)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           middleware.CORS(cfg.CORSAllowedOrigins)(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"addr":         cfg.Addr(),
			"driver":       cfg.DBDriver,
			"require_auth": cfg.RequireAuth,
		}).Info("Account service starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("Server error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Graceful shutdown failed: %v", err)
	}
}
