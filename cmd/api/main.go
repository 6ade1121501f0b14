package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/fhuszti/cms-uploads-go/internal/cache"
	"github.com/fhuszti/cms-uploads-go/internal/config"
	"github.com/fhuszti/cms-uploads-go/internal/db"
	"github.com/fhuszti/cms-uploads-go/internal/detector"
	"github.com/fhuszti/cms-uploads-go/internal/handler/api"
	"github.com/fhuszti/cms-uploads-go/internal/logger"
	"github.com/fhuszti/cms-uploads-go/internal/metrics"
	cMiddleware "github.com/fhuszti/cms-uploads-go/internal/middleware"
	"github.com/fhuszti/cms-uploads-go/internal/model"
	"github.com/fhuszti/cms-uploads-go/internal/port"
	"github.com/fhuszti/cms-uploads-go/internal/renderer"
	"github.com/fhuszti/cms-uploads-go/internal/repository/mariadb"
	"github.com/fhuszti/cms-uploads-go/internal/storage"
	"github.com/fhuszti/cms-uploads-go/internal/task"
	uploadSvc "github.com/fhuszti/cms-uploads-go/internal/usecase/upload"
	"github.com/fhuszti/cms-uploads-go/internal/uuid"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	database := initDb(ctx, cfg)
	strg := initStorage(ctx, cfg)
	m := metrics.New()
	r := initRouter(ctx, m)

	uploadRepo := mariadb.NewUploadRepository(database.DB)
	det := detector.NewMimetypeDetector()

	var ca port.Cache
	if cfg.RedisAddr != "" {
		ca = cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)
		logger.Info(ctx, "✅  Redis cache enabled")
	} else {
		ca = cache.NewNoop()
		logger.Warn(ctx, "⚠️  Redis not configured, caching is disabled")
	}

	inspectorSvc := uploadSvc.NewUploadInspector(uploadRepo, strg, det, ca)
	var dispatcher port.TaskDispatcher
	if cfg.RedisAddr != "" {
		dispatcher = task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
	} else {
		dispatcher = task.NewInlineDispatcher(inspectorSvc)
		logger.Warn(ctx, "⚠️  No task queue, uploads are inspected inline")
	}

	auth := cMiddleware.WithDSTAuth(cfg.JWTPublicKey, cfg.JWTRequiredRole)

	r.Method(http.MethodGet, "/metrics", m.Handler())

	validatorSvc := uploadSvc.NewContentValidator(strg, det)
	uploaderSvc := uploadSvc.NewUploader(uploadRepo, strg, validatorSvc, dispatcher, uuid.NewUUID)
	api.MountUploadRoutes(r.With(auth), uploaderSvc, m, map[model.Category]int64{
		model.CategoryMedia:    cfg.MaxMediaBytes,
		model.CategoryDocument: cfg.MaxDocumentBytes,
	})

	listerSvc := uploadSvc.NewUploadLister(uploadRepo)
	r.Get("/uploads", api.ListUploadsHandler(listerSvc))

	getterSvc := uploadSvc.NewUploadGetter(uploadRepo)
	rendererSvc := renderer.NewHTTPRenderer(ca, cfg.CacheTTL)
	r.With(cMiddleware.WithUploadID()).
		Get("/uploads/{id}", api.GetUploadHandler(rendererSvc, getterSvc))

	openerSvc := uploadSvc.NewUploadOpener(uploadRepo, strg)
	r.With(cMiddleware.WithUploadID()).
		Get("/uploads/{id}/content", api.GetUploadContentHandler(openerSvc))

	deleterSvc := uploadSvc.NewUploadDeleter(uploadRepo, ca, strg)
	r.With(auth, cMiddleware.WithUploadID()).
		Delete("/uploads/{id}", api.DeleteUploadHandler(deleterSvc))

	listenRouter(ctx, r, cfg, database)
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

func initRouter(ctx context.Context, m *metrics.Metrics) *chi.Mux {
	logger.Info(ctx, "initialising router...")

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(m.Middleware)

	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	return r
}

func initStorage(ctx context.Context, cfg *config.Settings) port.Storage {
	switch cfg.StorageDriver {
	case config.StorageDriverMinio:
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
	default:
		strg, err := storage.NewDiskStorage(cfg.UploadDir)
		if err != nil {
			logger.Errorf(ctx, "❌  Failed to initialize upload directory %q: %v", cfg.UploadDir, err)
			os.Exit(1)
		}
		return strg
	}
}

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings, database *db.Database) {
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")

	if err := database.Close(); err != nil {
		logger.Errorf(ctx, "DB close error: %v", err)
		os.Exit(1)
	}
}
