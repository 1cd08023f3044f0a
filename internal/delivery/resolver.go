// Package delivery builds Cloudinary delivery URLs for stored assets. It is
// pure string construction; a storage key the CDN does not know simply yields
// a URL the CDN rejects at fetch time.
package delivery

import (
	"fmt"
	"strings"

	"github.com/PriyanshuKSharma/media-storage-saas/pkg/enums"
	pkgerrors "github.com/PriyanshuKSharma/media-storage-saas/pkg/errors"
)

const deliveryBase = "https://res.cloudinary.com"

// Options describes one rendered variant of an asset. Zero-valued fields are
// omitted from the transformation segment.
type Options struct {
	Kind        enums.AssetKind
	Width       int
	Height      int
	Crop        string
	Gravity     string
	AspectRatio string
	Quality     string

	// Format forces the delivered file format by extension. Video sources
	// with an image format produce a still frame, which is how thumbnails
	// for videos are made.
	Format string
}

// Resolver maps storage keys to delivery URLs for one Cloudinary account.
type Resolver struct {
	cloudName string
}

func NewResolver(cloudName string) (*Resolver, error) {
	if cloudName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery: cloud name is required")
	}
	return &Resolver{cloudName: cloudName}, nil
}

// URL returns the delivery URL for storageKey rendered per opts.
func (r *Resolver) URL(storageKey string, opts Options) string {
	resourceType := "image"
	if opts.Kind == enums.AssetKindVideo {
		resourceType = "video"
	}

	var b strings.Builder
	b.WriteString(deliveryBase)
	b.WriteByte('/')
	b.WriteString(r.cloudName)
	b.WriteByte('/')
	b.WriteString(resourceType)
	b.WriteString("/upload/")
	if t := transformation(opts); t != "" {
		b.WriteString(t)
		b.WriteByte('/')
	}
	b.WriteString(storageKey)
	if opts.Format != "" {
		b.WriteByte('.')
		b.WriteString(opts.Format)
	}
	return b.String()
}

// ThumbnailURL is the small fixed-size card preview. Video sources are
// delivered as a jpg still frame.
func (r *Resolver) ThumbnailURL(storageKey string, kind enums.AssetKind) string {
	return r.URL(storageKey, Options{
		Kind:    kind,
		Width:   400,
		Height:  225,
		Crop:    "fill",
		Gravity: "auto",
		Quality: "auto",
		Format:  "jpg",
	})
}

// FullURL is the full-resolution shape used for playback and download. No
// format is forced so the CDN serves its stored encoding.
func (r *Resolver) FullURL(storageKey string, kind enums.AssetKind) string {
	return r.URL(storageKey, Options{
		Kind:   kind,
		Width:  1920,
		Height: 1080,
	})
}

// ProfileURL renders an image asset to a social profile's exact dimensions.
func (r *Resolver) ProfileURL(storageKey string, p Profile) string {
	return r.URL(storageKey, Options{
		Kind:        enums.AssetKindImage,
		Width:       p.Width,
		Height:      p.Height,
		AspectRatio: p.AspectRatio,
		Crop:        "fill",
		Gravity:     "auto",
	})
}

// transformation renders the comma-joined transformation segment in a fixed
// parameter order so equal options always produce equal URLs.
func transformation(opts Options) string {
	parts := make([]string, 0, 6)
	if opts.Width > 0 {
		parts = append(parts, fmt.Sprintf("w_%d", opts.Width))
	}
	if opts.Height > 0 {
		parts = append(parts, fmt.Sprintf("h_%d", opts.Height))
	}
	if opts.AspectRatio != "" {
		parts = append(parts, "ar_"+opts.AspectRatio)
	}
	if opts.Crop != "" {
		parts = append(parts, "c_"+opts.Crop)
	}
	if opts.Gravity != "" {
		parts = append(parts, "g_"+opts.Gravity)
	}
	if opts.Quality != "" {
		parts = append(parts, "q_"+opts.Quality)
	}
	return strings.Join(parts, ",")
}
