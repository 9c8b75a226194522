package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medeval/internal/cache"
	"medeval/internal/config"
	"medeval/internal/logging"
	"medeval/internal/repository"
	"medeval/internal/service"
	"medeval/internal/transport/rest"
	"medeval/internal/transport/ws"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to an optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	if !cfg.AdminConfigured() {
		logger.Warn("admin secrets not configured, admin login will fail")
	}

	// MongoDB connection
	store, err := repository.Open(ctx, cfg.Mongo.URI, cfg.Mongo.Database, logger)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logger.Warn("close store", zap.Error(err))
		}
	}()

	if cfg.Mongo.Migrate {
		if err := repository.Migrate(cfg.Mongo.URI, cfg.Mongo.Database, logger); err != nil {
			return err
		}
	}

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	logger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// Initialize WebSocket hub
	wsHub := ws.NewHub(logger)
	go wsHub.Run(ctx)

	// Initialize repositories
	db := store.Database()
	questionRepo := repository.NewQuestionRepo(db)
	submissionRepo := repository.NewSubmissionRepo(db)

	// Initialize caches
	sessionCache := cache.NewSessionCache(rdb, cfg.Redis.SessionTTL)

	// Initialize services
	authSvc := service.NewAuthService(service.AuthConfig{
		AdminPassword:       cfg.Auth.AdminPassword,
		AdminPasswordBcrypt: cfg.Auth.AdminPasswordBcrypt,
		JWTSecret:           cfg.Auth.JWTSecret,
		TokenTTL:            cfg.Auth.TokenTTL,
	})
	questionSvc := service.NewQuestionService(questionRepo, logger)
	submissionSvc := service.NewSubmissionService(submissionRepo, logger)
	exportSvc := service.NewExportService(submissionRepo)
	sessionSvc := service.NewSessionService(sessionCache, questionRepo, questionSvc, submissionSvc, logger)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	questionSvc.SetBroadcaster(wsHub)
	submissionSvc.SetBroadcaster(wsHub)

	router := rest.NewRouter(&rest.Container{
		AuthService:        authSvc,
		QuestionService:    questionSvc,
		SubmissionService:  submissionSvc,
		SessionService:     sessionSvc,
		ExportService:      exportSvc,
		Store:              store,
		WSHub:              wsHub,
		Logger:             logger,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		SecureCookie:       cfg.Auth.SecureCookie,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		logger.Info("Shutting down server", zap.String("signal", sig.String()))
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	stop()

	logger.Info("Server exited")
	return nil
}
