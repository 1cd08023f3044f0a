package enums

import "fmt"

// AssetKind distinguishes the two ingestion paths.
type AssetKind string

const (
	AssetKindImage AssetKind = "image"
	AssetKindVideo AssetKind = "video"
)

var validAssetKinds = []AssetKind{
	AssetKindImage,
	AssetKindVideo,
}

// String returns the literal string for the kind.
func (a AssetKind) String() string {
	return string(a)
}

// IsValid reports whether the kind is known.
func (a AssetKind) IsValid() bool {
	for _, candidate := range validAssetKinds {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAssetKind converts raw input into an AssetKind.
func ParseAssetKind(value string) (AssetKind, error) {
	for _, candidate := range validAssetKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid asset kind %q", value)
}
