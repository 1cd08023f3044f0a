package assets

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/PriyanshuKSharma/media-storage-saas/pkg/db/models"
	"github.com/PriyanshuKSharma/media-storage-saas/pkg/enums"
)

// Repository exposes asset metadata persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an asset repository bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists an asset record.
func (r *Repository) Create(ctx context.Context, asset *models.Asset) (*models.Asset, error) {
	if err := r.db.WithContext(ctx).Create(asset).Error; err != nil {
		return nil, err
	}
	return asset, nil
}

// Update saves the current state of an asset record.
func (r *Repository) Update(ctx context.Context, asset *models.Asset) error {
	return r.db.WithContext(ctx).Save(asset).Error
}

// Delete removes an asset record.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Asset{}).Error
}

// ListReadyByUser returns a user's ready assets of one kind, newest first.
func (r *Repository) ListReadyByUser(ctx context.Context, userID string, kind enums.AssetKind) ([]models.Asset, error) {
	var rows []models.Asset
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND kind = ? AND status = ?", userID, kind, enums.AssetStatusReady).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListPendingBefore returns pending assets created before the cutoff, oldest
// first, capped at limit.
func (r *Repository) ListPendingBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.Asset, error) {
	var rows []models.Asset
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", enums.AssetStatusPending, cutoff).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
