package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/PriyanshuKSharma/media-storage-saas/pkg/db/models"
	"github.com/PriyanshuKSharma/media-storage-saas/pkg/enums"
	"github.com/PriyanshuKSharma/media-storage-saas/pkg/logger"
	"github.com/PriyanshuKSharma/media-storage-saas/pkg/metrics"
)

const (
	defaultAssetRetention = 24 * time.Hour
	cleanupBatchSize      = 200
)

type staleAssetRepo interface {
	ListPendingBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.Asset, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type remoteDestroyer interface {
	Destroy(ctx context.Context, publicID string, kind enums.AssetKind) error
}

// StaleAssetCleanupJobParams configure the cleanup job.
type StaleAssetCleanupJobParams struct {
	Logger    *logger.Logger
	Repo      staleAssetRepo
	Remote    remoteDestroyer
	Metrics   *metrics.CronJobMetrics
	Retention time.Duration
}

// NewStaleAssetCleanupJob builds a job that removes asset rows stuck in
// pending longer than the retention window. Rows go pending when an upload
// crashes between persisting metadata and finishing the media transfer.
func NewStaleAssetCleanupJob(params StaleAssetCleanupJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("asset repository required")
	}
	if params.Remote == nil {
		return nil, fmt.Errorf("remote media client required")
	}
	retention := params.Retention
	if retention <= 0 {
		retention = defaultAssetRetention
	}
	return &staleAssetCleanupJob{
		logg:      params.Logger,
		repo:      params.Repo,
		remote:    params.Remote,
		metrics:   params.Metrics,
		retention: retention,
		now:       time.Now,
	}, nil
}

type staleAssetCleanupJob struct {
	logg      *logger.Logger
	repo      staleAssetRepo
	remote    remoteDestroyer
	metrics   *metrics.CronJobMetrics
	retention time.Duration
	now       func() time.Time
}

func (j *staleAssetCleanupJob) Name() string { return "stale-asset-cleanup" }

func (j *staleAssetCleanupJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-j.retention)
	rows, err := j.repo.ListPendingBefore(ctx, cutoff, cleanupBatchSize)
	if err != nil {
		return fmt.Errorf("query stale assets: %w", err)
	}

	var cleaned int
	var errs []error
	for _, row := range rows {
		rowCtx := j.logg.WithAssetID(ctx, row.ID.String())
		// A pending row may still have had bytes land remotely before the
		// crash. Destroy is best-effort; a missing remote asset is not an
		// error worth keeping the row for.
		if err := j.remote.Destroy(rowCtx, row.PublicID, row.Kind); err != nil {
			j.logg.Warn(rowCtx, "remote destroy failed, removing row anyway")
		}
		// One stuck row must not keep the rest of the batch waiting for
		// the next cycle.
		if err := j.repo.Delete(rowCtx, row.ID); err != nil {
			j.logg.Error(rowCtx, "delete stale asset row failed", err)
			errs = append(errs, fmt.Errorf("delete stale asset row %s: %w", row.ID, err))
			continue
		}
		cleaned++
	}

	if j.metrics != nil && cleaned > 0 {
		j.metrics.AddAssetsCleaned(int64(cleaned))
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":     cutoff,
		"candidates": len(rows),
		"cleaned":    cleaned,
	})
	j.logg.Info(logCtx, "stale asset cleanup complete")
	return multierr.Combine(errs...)
}
