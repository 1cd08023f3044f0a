package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/PriyanshuKSharma/media-storage-saas/pkg/enums"
)

// Asset captures metadata for one uploaded media item. The media service owns
// the bytes; this row only records identity and size accounting.
type Asset struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	UserID          string            `gorm:"column:user_id;not null;index"`
	Kind            enums.AssetKind   `gorm:"column:kind;not null"`
	Status          enums.AssetStatus `gorm:"column:status;not null"`
	Title           string            `gorm:"column:title;not null"`
	Description     *string           `gorm:"column:description"`
	PublicID        string            `gorm:"column:public_id;not null;uniqueIndex"`
	SecureURL       string            `gorm:"column:secure_url"`
	DurationSec     float64           `gorm:"column:duration_sec"`
	OriginalBytes   int64             `gorm:"column:original_bytes;not null"`
	CompressedBytes int64             `gorm:"column:compressed_bytes;not null"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
