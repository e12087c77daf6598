package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"co2-predictor-service/internal/adapters/primary/http/handlers"
	"co2-predictor-service/internal/adapters/primary/http/middleware"
	"co2-predictor-service/internal/adapters/secondary/csvdataset"
	"co2-predictor-service/internal/adapters/secondary/filestore"
	"co2-predictor-service/internal/adapters/secondary/kube"
	"co2-predictor-service/internal/adapters/secondary/postgres"
	"co2-predictor-service/internal/adapters/secondary/remote"
	"co2-predictor-service/internal/adapters/secondary/sqlite"
	"co2-predictor-service/internal/bootstrap"
	"co2-predictor-service/internal/config"
	"co2-predictor-service/internal/core/domain"
	output "co2-predictor-service/internal/core/ports/output"
	"co2-predictor-service/internal/core/services"
	"co2-predictor-service/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	closeLog := logging.Setup(cfg.Logger)
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ============================================================================
	// Hexagonal Architecture Wiring
	// ============================================================================

	// Secondary Adapters (Output Ports)
	repo, closeRepo, err := openRepository(ctx, cfg)
	if err != nil {
		log.Fatalf("open artifact repository: %v", err)
	}
	defer closeRepo()

	loader := csvdataset.NewFileLoader(cfg.Storage.DataPath)
	fetcher := remote.NewClient(&cfg.Remote)

	// Kubernetes publisher (Optional - based on config)
	var publisher output.ArtifactPublisher
	var source bootstrap.ArtifactSource
	if cfg.Kubernetes.Enabled {
		p, err := kube.NewPublisher(&cfg.Kubernetes)
		if err != nil {
			log.Warnf("Kubernetes publisher init failed (continuing without K8s integration): %v", err)
		} else {
			publisher = p
			source = p
			log.Info("Kubernetes publisher initialized")
		}
	} else {
		log.Info("Kubernetes integration disabled")
	}

	// Core Services (Application Layer)
	trainingSvc := services.NewTrainingService(loader, repo, publisher)
	artifactSvc := services.NewArtifactService(repo)
	predictionSvc, err := services.NewPredictionService(repo, cfg.Predict.CacheSize, cfg.Predict.BatchLimit)
	if err != nil {
		log.Fatalf("create prediction service: %v", err)
	}

	// Serving model
	driver := bootstrap.New(repo, trainingSvc, fetcher, source, bootstrap.Options{
		ModelPath: cfg.Storage.ModelPath,
		DataPath:  cfg.Storage.DataPath,
		ModelURL:  cfg.Remote.ModelURL,
		DataURL:   cfg.Remote.DataURL,
	})
	artifact, err := driver.EnsureArtifact(ctx)
	switch {
	case err == nil:
		if err := predictionSvc.Activate(artifact); err != nil {
			log.Fatalf("activate model artifact: %v", err)
		}
	case errors.Is(err, domain.ErrArtifactNotFound):
		log.WithError(err).Warn("starting without a model; POST /train to create one")
	default:
		log.Fatalf("prepare model artifact: %v", err)
	}

	if cfg.Storage.Watch && cfg.Storage.ModelPath != "" {
		go watchModelFile(ctx, cfg.Storage.ModelPath, driver, predictionSvc)
	}

	// Primary Adapter (HTTP Handlers)
	h := handlers.New(trainingSvc, artifactSvc, predictionSvc)

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(), gin.Recovery())

	api := router.Group("/api/v1/co2")
	h.RegisterRoutes(api)
	router.GET("/healthz", h.Health)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	<-ctx.Done()
	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}

func openRepository(ctx context.Context, cfg *config.Config) (output.ArtifactRepository, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		poolCfg, err := pgxpool.ParseConfig(cfg.Database.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("parse db config: %w", err)
		}
		poolCfg.MaxConns = int32(cfg.Database.MaxOpenConns)
		poolCfg.MinConns = int32(cfg.Database.MaxIdleConns)
		poolCfg.MaxConnLifetime = cfg.Database.ConnMaxLifetime

		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("create db pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("ping db: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Info("database connection established")
		return postgres.NewModelArtifactRepository(pool), pool.Close, nil

	case config.StorageDriverSQLite:
		db, err := sqlite.Open(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		log.WithField("path", cfg.Storage.SQLitePath).Info("sqlite artifact store opened")
		return sqlite.NewModelArtifactRepository(db), func() { _ = db.Close() }, nil

	default:
		store, err := filestore.NewStore(cfg.Storage.ArtifactDir, filepath.Join(cfg.Storage.ArtifactDir, "current.json"))
		if err != nil {
			return nil, nil, err
		}
		log.WithField("dir", cfg.Storage.ArtifactDir).Info("file artifact store opened")
		return store, func() {}, nil
	}
}

// watchModelFile activates the model file whenever it is replaced on disk,
// for example by co2ctl train or a mounted ConfigMap update.
func watchModelFile(ctx context.Context, path string, driver *bootstrap.Driver, predictionSvc *services.PredictionService) {
	err := filestore.Watch(ctx, path, func(artifact *domain.ModelArtifact) {
		if err := driver.ImportFile(ctx, path, artifact); err != nil {
			log.WithError(err).Warn("failed to record replaced model file")
		}
		if active := predictionSvc.Active(); active != nil && active.ID == artifact.ID {
			return
		}
		if err := predictionSvc.Activate(artifact); err != nil {
			log.WithError(err).Warn("replaced model file rejected")
		}
	})
	if err != nil {
		log.WithError(err).Error("model file watcher stopped")
	}
}
