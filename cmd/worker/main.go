package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fhuszti/cms-uploads-go/internal/cache"
	"github.com/fhuszti/cms-uploads-go/internal/config"
	"github.com/fhuszti/cms-uploads-go/internal/db"
	"github.com/fhuszti/cms-uploads-go/internal/detector"
	workerHandler "github.com/fhuszti/cms-uploads-go/internal/handler/worker"
	"github.com/fhuszti/cms-uploads-go/internal/logger"
	"github.com/fhuszti/cms-uploads-go/internal/port"
	"github.com/fhuszti/cms-uploads-go/internal/repository/mariadb"
	"github.com/fhuszti/cms-uploads-go/internal/storage"
	"github.com/fhuszti/cms-uploads-go/internal/task"
	uploadSvc "github.com/fhuszti/cms-uploads-go/internal/usecase/upload"
	"github.com/hibiken/asynq"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	if cfg.RedisAddr == "" {
		logger.Error(ctx, "⚠️  REDIS_ADDR must be set to run the worker")
		os.Exit(1)
	}

	database := initDb(ctx, cfg)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Warnf(ctx, "DB close error: %v", err)
		}
	}()

	strg := initStorage(ctx, cfg)

	repo := mariadb.NewUploadRepository(database.DB)
	ca := cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)
	inspectSvc := uploadSvc.NewUploadInspector(repo, strg, detector.NewMimetypeDetector(), ca)

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeInspectUpload, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseInspectUploadPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.InspectUploadHandler(ctx, p, inspectSvc)
	})

	runWorker(ctx, mux, cfg)
}

func initDb(ctx context.Context, cfg *config.Settings) *db.Database {
	logger.Info(ctx, "initialising database...")

	database, err := db.New(ctx, db.MariaDbConfig{
		DSN:             cfg.MariaDBDSN,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	return database
}

func initStorage(ctx context.Context, cfg *config.Settings) port.Storage {
	if cfg.StorageDriver != config.StorageDriverMinio {
		strg, err := storage.NewDiskStorage(cfg.UploadDir)
		if err != nil {
			logger.Errorf(ctx, "❌  Failed to initialize upload directory %q: %v", cfg.UploadDir, err)
			os.Exit(1)
		}
		return strg
	}

	client, err := storage.NewMinioClient(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
	)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}
	strg, err := client.WithBucket(ctx, cfg.MinioBucket)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize bucket %q: %v", cfg.MinioBucket, err)
		os.Exit(1)
	}
	return strg
}

func runWorker(ctx context.Context, mux *asynq.ServeMux, cfg *config.Settings) {
	srv := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}, asynq.Config{
		Concurrency:     10,
		ShutdownTimeout: cfg.ShutdownTimeout,
	})

	if err := srv.Start(mux); err != nil {
		logger.Errorf(ctx, "❌  Worker failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "🚀 Worker started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// stop accepting new tasks and wait for in-flight ones up to ShutdownTimeout
	srv.Shutdown()
	logger.Info(ctx, "✅  Worker gracefully stopped")
}
