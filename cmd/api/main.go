package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	_ "github.com/aqarhub/aqar-hub-api/api/swagger"
	"github.com/aqarhub/aqar-hub-api/internal/handler"
	"github.com/aqarhub/aqar-hub-api/internal/repository"
	"github.com/aqarhub/aqar-hub-api/internal/service"
	"github.com/aqarhub/aqar-hub-api/pkg/cache"
	"github.com/aqarhub/aqar-hub-api/pkg/config"
	"github.com/aqarhub/aqar-hub-api/pkg/database"
	"github.com/aqarhub/aqar-hub-api/pkg/jobs"
	"github.com/aqarhub/aqar-hub-api/pkg/logger"
	"github.com/aqarhub/aqar-hub-api/pkg/storage"
)

// @title AQAR Hub API
// @version 1.0.0
// @description Accreditation document tracking backend
// @BasePath /api
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewMySQL(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect database", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, stats cache disabled", "error", err)
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close() //nolint:errcheck
	}

	store, err := storage.NewLocalStorage(cfg.Uploads.Dir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare upload storage", "error", err)
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)

	metricsService := service.NewMetricsService()
	authService := service.NewAuthService(userRepo, sessionRepo, validate, logr, service.AuthConfig{
		SessionLifetime: cfg.Session.Lifetime,
	})
	userService := service.NewUserService(userRepo, sessionRepo, validate, logr)
	statsService := service.NewStatsService(documentRepo, redisClient, metricsService, logr, cfg.Stats.CacheTTL)
	documentService := service.NewDocumentService(documentRepo, store, statsService, metricsService, validate, logr, service.DocumentConfig{
		MaxFileSizeBytes:  cfg.Uploads.MaxFileSizeBytes,
		AllowedExtensions: cfg.Uploads.AllowedExtensions,
	})
	assignmentService := service.NewAssignmentService(assignmentRepo, userRepo, validate, logr)

	r := handler.NewRouter(cfg, logr, handler.Services{
		Auth:        authService,
		Users:       userService,
		Documents:   documentService,
		Assignments: assignmentService,
		Stats:       statsService,
		Metrics:     metricsService,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cleanup := jobs.NewRunner("session-cleanup", cfg.Session.CleanupInterval, func(ctx context.Context) error {
		purged, err := authService.CleanExpiredSessions(ctx)
		if err != nil {
			return err
		}
		metricsService.RecordSessionsPurged(purged)
		return nil
	}, logr)
	cleanup.Start(ctx)
	defer cleanup.Stop()

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Warnw("graceful shutdown failed", "error", err)
	}
}
