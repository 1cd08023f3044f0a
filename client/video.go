package client

import (
	"strconv"
	"time"

	"github.com/PriyanshuKSharma/media-storage-saas/internal/stats"
)

// Video is one asset record as served by the listing endpoint. Byte sizes
// travel as decimal strings.
type Video struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    *string   `json:"description"`
	PublicID       string    `json:"publicId"`
	URL            string    `json:"url"`
	OriginalSize   string    `json:"originalSize"`
	CompressedSize string    `json:"compressedSize"`
	Duration       float64   `json:"duration"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	UserID         string    `json:"userId"`
}

// OriginalBytes parses the original size field. Unparseable sizes read as 0.
func (v Video) OriginalBytes() int64 {
	n, _ := strconv.ParseInt(v.OriginalSize, 10, 64)
	return n
}

// CompressedBytes parses the compressed size field.
func (v Video) CompressedBytes() int64 {
	n, _ := strconv.ParseInt(v.CompressedSize, 10, 64)
	return n
}

// CompressionPercent is the rounded size reduction for display.
func (v Video) CompressionPercent() int {
	return stats.CompressionPercent(v.OriginalBytes(), v.CompressedBytes())
}

// FormattedOriginalSize renders the original size in human units.
func (v Video) FormattedOriginalSize() string {
	return stats.FormatSize(v.OriginalBytes())
}

// FormattedCompressedSize renders the compressed size in human units.
func (v Video) FormattedCompressedSize() string {
	return stats.FormatSize(v.CompressedBytes())
}

// FormattedDuration renders the duration as minutes:seconds.
func (v Video) FormattedDuration() string {
	return stats.FormatDuration(v.Duration)
}

// RelativeCreatedAt renders the upload time relative to now.
func (v Video) RelativeCreatedAt() string {
	return stats.FormatRelativeTime(v.CreatedAt)
}
