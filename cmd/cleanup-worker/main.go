package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/PriyanshuKSharma/media-storage-saas/internal/assets"
	"github.com/PriyanshuKSharma/media-storage-saas/internal/cron"
	"github.com/PriyanshuKSharma/media-storage-saas/pkg/cloudinary"
	"github.com/PriyanshuKSharma/media-storage-saas/pkg/config"
	"github.com/PriyanshuKSharma/media-storage-saas/pkg/db"
	"github.com/PriyanshuKSharma/media-storage-saas/pkg/logger"
	"github.com/PriyanshuKSharma/media-storage-saas/pkg/metrics"
	"github.com/PriyanshuKSharma/media-storage-saas/pkg/migrate"
	"github.com/PriyanshuKSharma/media-storage-saas/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "cleanup-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "cleanup-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	remote, err := cloudinary.NewClient(context.Background(), cfg.Cloudinary, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cloudinary client", err)
		os.Exit(1)
	}

	metricsCollector := metrics.NewCronJobMetrics(prometheus.DefaultRegisterer)

	cleanupJob, err := cron.NewStaleAssetCleanupJob(cron.StaleAssetCleanupJobParams{
		Logger:    logg,
		Repo:      assets.NewRepository(dbClient.DB()),
		Remote:    remote,
		Metrics:   metricsCollector,
		Retention: cfg.Cleanup.Retention,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cleanup job", err)
		os.Exit(1)
	}

	lock, err := cron.NewRedisLock(redisClient, redisClient.LockKey(lockName(cfg.App.Env)), cfg.Cleanup.LockTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cleanup lock", err)
		os.Exit(1)
	}

	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(cleanupJob),
		Lock:     lock,
		Metrics:  metricsCollector,
		Interval: cfg.Cleanup.Interval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cleanup service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"interval": cfg.Cleanup.Interval.String(),
	})
	logg.Info(ctx, "starting cleanup worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "cleanup worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "cleanup worker shutting down gracefully")
}

func lockName(env string) string {
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("cleanup-worker:%s", env)
}
