package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"resumeapi/internal/cache"
	"resumeapi/internal/config"
	"resumeapi/internal/metrics"
	"resumeapi/internal/pdf"
	"resumeapi/internal/storage"
	"resumeapi/internal/tasks"
	"resumeapi/internal/worker"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.API.SlogLevel()}))
	slog.SetDefault(logger)

	if !cfg.Redis.Enabled() {
		log.Fatal("worker requires REDIS_ADDR")
	}
	if !cfg.MinIO.Enabled() {
		log.Fatal("worker requires MINIO_ENDPOINT")
	}

	ctx := context.Background()
	storageClient, err := storage.NewClient(ctx, cfg.MinIO)
	if err != nil {
		log.Fatalf("init storage client: %v", err)
	}
	log.Printf("storage client ready, bucket=%s", cfg.MinIO.Bucket)

	redisClient, err := cache.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("ping redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error("close redis client failed", slog.Any("error", err))
		}
	}()

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: cfg.Worker.Concurrency,
		Logger:      newAsynqLogger(logger),
	})

	pdfHandler := worker.NewPDFTaskHandler(pdf.NewRenderer(pdf.DefaultTimeout), storageClient, logger).
		WithNotifier(worker.NewRedisNotifier(redisClient))

	if cfg.Worker.MetricsAddr != "" {
		go serveMetrics(cfg.Worker.MetricsAddr, logger)
	}

	mux := asynq.NewServeMux()
	mux.Use(metrics.AsynqMetricsMiddleware())
	mux.Handle(tasks.TypePDFRender, pdfHandler)

	logger.Info("worker service started", slog.String("redis_addr", cfg.Redis.Addr))
	if err := server.Run(mux); err != nil {
		logger.Error("worker server stopped", slog.Any("error", err))
	}
}

func serveMetrics(addr string, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	logger.Info("worker metrics listening", slog.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("metrics server stopped", slog.Any("error", err))
	}
}
