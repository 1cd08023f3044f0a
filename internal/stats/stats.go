// Package stats derives display values from stored asset size accounting.
package stats

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

// CompressionPercent returns the rounded size reduction percentage. A zero
// original size returns 0 rather than dividing by zero. Inputs where the
// compressed size exceeds the original yield a negative percentage, which is
// reported as-is.
func CompressionPercent(originalBytes, compressedBytes int64) int {
	if originalBytes == 0 {
		return 0
	}
	ratio := float64(compressedBytes) / float64(originalBytes)
	return int(math.Round((1 - ratio) * 100))
}

// FormatSize renders a byte count in human-readable units.
func FormatSize(bytes int64) string {
	return humanize.Bytes(uint64(bytes))
}

// FormatDuration renders seconds as minutes:seconds with zero-padded
// seconds. Fractional seconds round, and a rounded value of 60 carries into
// the minutes so the result is never ":60".
func FormatDuration(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	minutes := int(seconds) / 60
	remaining := int(math.Round(math.Mod(seconds, 60)))
	if remaining == 60 {
		minutes++
		remaining = 0
	}
	return fmt.Sprintf("%d:%02d", minutes, remaining)
}

// FormatRelativeTime renders a timestamp relative to now, e.g. "3 days ago".
func FormatRelativeTime(t time.Time) string {
	return humanize.Time(t)
}
