package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fhuszti/assets-cdn-go/internal/config"
	"github.com/fhuszti/assets-cdn-go/internal/db"
	workerHandler "github.com/fhuszti/assets-cdn-go/internal/handler/worker"
	"github.com/fhuszti/assets-cdn-go/internal/port"
	"github.com/fhuszti/assets-cdn-go/internal/repository/mariadb"
	"github.com/fhuszti/assets-cdn-go/internal/storage"
	"github.com/fhuszti/assets-cdn-go/internal/task"
	"github.com/fhuszti/assets-cdn-go/internal/transcoder"
	assetSvc "github.com/fhuszti/assets-cdn-go/internal/usecase/asset"
	"github.com/hibiken/asynq"

	"github.com/fhuszti/assets-cdn-go/internal/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}
	if cfg.RedisAddr == "" {
		logger.Error(ctx, "⚠️  REDIS_ADDR must be set to run the worker")
		os.Exit(1)
	}

	logger.Init()

	database := initDb(cfg)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Warnf(ctx, "DB close error: %v", err)
		}
	}()

	local := storage.NewLocalStorage(cfg.LocalStoragePath)
	initBuckets(local, cfg.Buckets)

	var tiers []port.Tier
	if cfg.UseS3 {
		remote := initMinio(cfg)
		initBuckets(remote, cfg.Buckets)
		tiers = append(tiers, remote)
	}
	tiers = append(tiers, local)
	retriever := assetSvc.NewTieredRetriever(tiers...)

	repo := mariadb.NewAssetRepository(database.DB)
	trans := transcoder.New(cfg.Codec, cfg.TranscodeWorkers)
	warmSvc := assetSvc.NewVariantWarmer(repo, retriever, trans, local, cfg.Codec)

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeWarmVariant, func(ctx context.Context, t *asynq.Task) error {
		in, err := task.ParseWarmVariantPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.WarmVariantHandler(ctx, in, warmSvc)
	})

	runWorker(ctx, mux, cfg, database)
}

func initDb(cfg *config.Settings) *db.Database {
	ctx := context.Background()
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	return database
}

func initMinio(cfg *config.Settings) port.Storage {
	strg, err := storage.NewMinioStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
	)
	if err != nil {
		logger.Errorf(context.Background(), "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	return strg
}

func initBuckets(strg port.Storage, buckets []string) {
	for _, b := range buckets {
		if err := strg.InitBucket(b); err != nil {
			logger.Errorf(context.Background(), "❌  Failed to initialize bucket %q: %v", b, err)
			os.Exit(1)
		}
	}
}

func runWorker(ctx context.Context, mux *asynq.ServeMux, cfg *config.Settings, database *db.Database) {
	srv := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}, asynq.Config{Concurrency: 10})

	// Run server in background
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "❌  Worker failed: %v", err)
			os.Exit(1)
		}
	}()
	logger.Info(ctx, "🚀 Worker started")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// Give Asynq up to 30 sec to finish tasks
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	srv.Shutdown()       // stop accepting new tasks, finish in-flight
	<-shutdownCtx.Done() // either timeout or done

	logger.Info(ctx, "✅  Worker gracefully stopped")
}
