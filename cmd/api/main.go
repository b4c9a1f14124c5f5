package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/cors"

	"resumeapi/internal/api"
	"resumeapi/internal/auth"
	"resumeapi/internal/cache"
	"resumeapi/internal/config"
	"resumeapi/internal/controller"
	"resumeapi/internal/database"
	"resumeapi/internal/storage"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.API.SlogLevel()}))
	slog.SetDefault(logger)

	db, err := database.InitDatabase(cfg.Database, logger)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	log.Printf("database connection ready (type=%s)", cfg.Database.Type)

	ctx := context.Background()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	authService, err := auth.NewAuthService(cfg.Auth.SecretKey, cfg.Auth.Algorithm, cfg.Auth.AccessTokenTTL())
	if err != nil {
		log.Fatalf("init auth service: %v", err)
	}
	authController := controller.NewAuthController(db, authService, logger)
	seedAdmin(ctx, authController, cfg.Admin, logger)

	var (
		resumeCache *cache.ResumeCache
		media       api.MediaDeps
	)

	if cfg.Redis.Enabled() {
		redisClient, err := cache.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatalf("init redis: %v", err)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error("close redis client failed", slog.Any("error", err))
			}
		}()
		resumeCache = cache.NewResumeCache(redisClient, cfg.Redis.CacheTTL, logger)

		asynqClient := asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() {
			if err := asynqClient.Close(); err != nil {
				logger.Error("close asynq client failed", slog.Any("error", err))
			}
		}()
		media.Queue = asynqClient
		log.Printf("redis ready at %s (cache ttl %s)", cfg.Redis.Addr, cfg.Redis.CacheTTL)
	}

	if cfg.MinIO.Enabled() {
		storageClient, err := storage.NewClient(ctx, cfg.MinIO)
		if err != nil {
			log.Fatalf("init storage client: %v", err)
		}
		media.Storage = storageClient
		log.Printf("storage client ready, bucket=%s", cfg.MinIO.Bucket)
	}

	if addr := strings.TrimSpace(cfg.Resume.ClamdAddr); addr != "" {
		media.Scanner = api.NewClamdScanner(addr)
	}

	router := api.NewRouter(cfg, logger)
	api.RegisterRoutes(router, api.Services{
		Auth:   authController,
		Resume: controller.NewResumeController(db, resumeCache, logger),
		Media:  media,
		Config: cfg.Resume,
		Logger: logger,
	})

	handler := cors.New(cors.Options{
		AllowedOrigins:   cfg.API.Origins(),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Correlation-ID"},
		ExposedHeaders:   []string{"X-Correlation-ID"},
		AllowCredentials: true,
	}).Handler(router)

	srv := &http.Server{
		Addr:              cfg.API.Address(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Printf("api listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start api server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
	}
}

// seedAdmin creates the bootstrap account once; an existing account is left untouched.
func seedAdmin(ctx context.Context, users *controller.AuthController, admin config.AdminConfig, logger *slog.Logger) {
	if strings.TrimSpace(admin.Username) == "" || admin.Password == "" {
		return
	}
	user, created, err := users.EnsureUser(ctx, admin.Username, admin.Password)
	if err != nil {
		log.Fatalf("seed admin user: %v", err)
	}
	if created {
		logger.Info("admin user created", slog.String("username", user.Username))
		return
	}
	logger.Info("admin user already exists", slog.String("username", user.Username))
}
