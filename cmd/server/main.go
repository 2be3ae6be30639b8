package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	appcontent "github.com/portfolio/backend/internal/application/content"
	mediaapp "github.com/portfolio/backend/internal/application/media"
	"github.com/portfolio/backend/internal/domain/content"
	"github.com/portfolio/backend/internal/infrastructure/config"
	"github.com/portfolio/backend/internal/infrastructure/logger"
	"github.com/portfolio/backend/internal/infrastructure/persistence"
	"github.com/portfolio/backend/internal/infrastructure/storage"
	"github.com/portfolio/backend/internal/interfaces/http/handler"
	"github.com/portfolio/backend/internal/interfaces/http/middleware"
	"github.com/portfolio/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync(log) }()

	log.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("store_driver", cfg.Store.Driver),
		zap.String("media_backend", cfg.Media.Backend),
	)

	projectRepo, aboutRepo, closeStore, err := buildStores(cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	blobs, localMediaDir, err := buildBlobStorage(cfg, log)
	if err != nil {
		return err
	}

	uploadService := mediaapp.NewUploadService(blobs,
		mediaapp.WithMaxUploadBytes(cfg.HTTP.MaxUploadSize),
		mediaapp.WithLogger(log),
	)
	projectService := appcontent.NewProjectService(projectRepo, appcontent.WithProjectLogger(log))
	aboutService := appcontent.NewAboutService(aboutRepo, appcontent.WithAboutLogger(log))
	projectionService := appcontent.NewProjectionService()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return fmt.Errorf("set trusted proxies: %w", err)
	}

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.Secure(),
		middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: cfg.HTTP.CORSAllowOrigins,
			AllowMethods: cfg.HTTP.CORSAllowMethods,
			AllowHeaders: cfg.HTTP.CORSAllowHeaders,
			MaxAge:       12 * time.Hour,
		}),
		middleware.BodyLimit(cfg.HTTP.MaxUploadSize),
	)

	if localMediaDir != "" {
		engine.Static(cfg.Media.PublicPath, localMediaDir)
	}

	router.NewRouter(engine).
		Register(handler.NewSystemHandler()).
		Register(handler.NewAboutHandler(aboutService)).
		Register(handler.NewProjectsHandler(projectService)).
		Register(handler.NewDisplayHandler(projectService, projectionService)).
		Register(handler.NewUploadHandler(uploadService)).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}

// buildStores wires the repository backend selected by store.driver.
func buildStores(cfg *config.Config, log *zap.Logger) (content.ProjectRepository, content.AboutRepository, func(), error) {
	switch cfg.Store.Driver {
	case "sqlite":
		gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
		db, err := persistence.NewDatabaseWithLogger(&cfg.Store, gormLog)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		closeFn := func() {
			if err := db.Close(); err != nil {
				log.Warn("failed to close database", zap.Error(err))
			}
		}
		return persistence.NewGormProjectStore(db.DB, log), persistence.NewGormAboutStore(db.DB, log), closeFn, nil

	default: // json, enforced by config validation
		return persistence.NewJSONProjectStore(cfg.Store.DataDir, log),
			persistence.NewJSONAboutStore(cfg.Store.DataDir, log),
			func() {}, nil
	}
}

// buildBlobStorage wires the blob backend selected by media.backend. The
// second return is the local directory to serve statically, empty for s3.
func buildBlobStorage(cfg *config.Config, log *zap.Logger) (mediaapp.BlobStorage, string, error) {
	switch cfg.Media.Backend {
	case "s3":
		blobs, err := storage.NewS3BlobStorage(&cfg.Media, storage.WithLogger(log))
		if err != nil {
			return nil, "", fmt.Errorf("create s3 media backend: %w", err)
		}
		return blobs, "", nil

	default: // local, enforced by config validation
		blobs, err := storage.NewLocalBlobStorage(cfg.Media.LocalDir, cfg.Media.PublicPath, log)
		if err != nil {
			return nil, "", fmt.Errorf("create local media backend: %w", err)
		}
		return blobs, blobs.Dir(), nil
	}
}
