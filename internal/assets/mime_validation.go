package assets

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/PriyanshuKSharma/media-storage-saas/pkg/enums"
)

// sniffLimit bounds how many leading bytes are consumed for detection.
const sniffLimit = 3072

var allowedMimesByKind = map[enums.AssetKind][]string{
	enums.AssetKindImage: {"image/gif", "image/jpeg", "image/png", "image/webp"},
	enums.AssetKindVideo: {"video/mp4", "video/quicktime", "video/webm"},
}

// sniffContent detects the mime type from the stream's leading bytes and
// returns a reader that replays them, so the full payload can still be
// uploaded afterwards.
func sniffContent(r io.Reader) (string, io.Reader, error) {
	head := make([]byte, sniffLimit)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", nil, fmt.Errorf("read file head: %w", err)
	}
	head = head[:n]
	detected := mimetype.Detect(head)
	return strings.ToLower(detected.String()), io.MultiReader(bytes.NewReader(head), r), nil
}

func isAllowedMime(kind enums.AssetKind, mimeType string) bool {
	base := mimeType
	if i := strings.IndexByte(base, ';'); i >= 0 {
		base = strings.TrimSpace(base[:i])
	}
	for _, candidate := range allowedMimesByKind[kind] {
		if strings.EqualFold(candidate, base) {
			return true
		}
	}
	return false
}

func allowedMimeDescription(kind enums.AssetKind) string {
	allowed := append([]string(nil), allowedMimesByKind[kind]...)
	sort.Strings(allowed)
	return strings.Join(allowed, ", ")
}
