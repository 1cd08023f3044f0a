package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/PriyanshuKSharma/media-storage-saas/pkg/db/models"
	"github.com/PriyanshuKSharma/media-storage-saas/pkg/enums"
	"github.com/PriyanshuKSharma/media-storage-saas/pkg/logger"
)

type stubAssetRepo struct {
	rows      []models.Asset
	listErr   error
	deleted   []uuid.UUID
	deleteErr error
	failID    uuid.UUID
	gotCutoff time.Time
	gotLimit  int
}

func (s *stubAssetRepo) ListPendingBefore(_ context.Context, cutoff time.Time, limit int) ([]models.Asset, error) {
	s.gotCutoff = cutoff
	s.gotLimit = limit
	return s.rows, s.listErr
}

func (s *stubAssetRepo) Delete(_ context.Context, id uuid.UUID) error {
	if s.deleteErr != nil && (s.failID == uuid.Nil || s.failID == id) {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, id)
	return nil
}

type stubDestroyer struct {
	destroyed []string
	err       error
}

func (s *stubDestroyer) Destroy(_ context.Context, publicID string, _ enums.AssetKind) error {
	s.destroyed = append(s.destroyed, publicID)
	return s.err
}

func newCleanupJob(t *testing.T, repo *stubAssetRepo, remote *stubDestroyer, retention time.Duration) Job {
	t.Helper()
	job, err := NewStaleAssetCleanupJob(StaleAssetCleanupJobParams{
		Logger:    logger.New(logger.Options{ServiceName: "test"}),
		Repo:      repo,
		Remote:    remote,
		Retention: retention,
	})
	if err != nil {
		t.Fatalf("NewStaleAssetCleanupJob: %v", err)
	}
	return job
}

func TestStaleAssetCleanupRemovesOldPendingRows(t *testing.T) {
	t.Parallel()

	rows := []models.Asset{
		{ID: uuid.New(), PublicID: "pending/a", Kind: enums.AssetKindVideo},
		{ID: uuid.New(), PublicID: "pending/b", Kind: enums.AssetKindImage},
	}
	repo := &stubAssetRepo{rows: rows}
	remote := &stubDestroyer{}
	job := newCleanupJob(t, repo, remote, 24*time.Hour)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(repo.deleted) != 2 {
		t.Fatalf("deleted %d rows, want 2", len(repo.deleted))
	}
	if len(remote.destroyed) != 2 {
		t.Fatalf("destroyed %d remote assets, want 2", len(remote.destroyed))
	}
	if repo.gotLimit != cleanupBatchSize {
		t.Errorf("limit = %d", repo.gotLimit)
	}
	if age := time.Since(repo.gotCutoff); age < 24*time.Hour {
		t.Errorf("cutoff %v is not at least the retention old", repo.gotCutoff)
	}
}

func TestStaleAssetCleanupContinuesPastDestroyFailure(t *testing.T) {
	t.Parallel()

	repo := &stubAssetRepo{rows: []models.Asset{{ID: uuid.New(), PublicID: "pending/a", Kind: enums.AssetKindVideo}}}
	remote := &stubDestroyer{err: errors.New("remote unavailable")}
	job := newCleanupJob(t, repo, remote, 24*time.Hour)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(repo.deleted) != 1 {
		t.Fatal("row should be removed even when the remote destroy fails")
	}
}

func TestStaleAssetCleanupContinuesPastDeleteFailure(t *testing.T) {
	t.Parallel()

	stuck := uuid.New()
	rows := []models.Asset{
		{ID: uuid.New(), PublicID: "pending/a", Kind: enums.AssetKindVideo},
		{ID: stuck, PublicID: "pending/b", Kind: enums.AssetKindVideo},
		{ID: uuid.New(), PublicID: "pending/c", Kind: enums.AssetKindImage},
	}
	repo := &stubAssetRepo{
		rows:      rows,
		deleteErr: errors.New("db down"),
		failID:    stuck,
	}
	job := newCleanupJob(t, repo, &stubDestroyer{}, 24*time.Hour)

	err := job.Run(context.Background())
	if err == nil {
		t.Fatal("expected delete failure to surface")
	}
	if len(repo.deleted) != 2 {
		t.Fatalf("deleted %d rows, want the 2 healthy ones", len(repo.deleted))
	}
	for _, id := range repo.deleted {
		if id == stuck {
			t.Fatal("stuck row must not be recorded as deleted")
		}
	}
}

func TestStaleAssetCleanupListFailure(t *testing.T) {
	t.Parallel()

	repo := &stubAssetRepo{listErr: errors.New("db down")}
	job := newCleanupJob(t, repo, &stubDestroyer{}, 24*time.Hour)

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected list failure to surface")
	}
}
