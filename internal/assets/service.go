package assets

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/PriyanshuKSharma/media-storage-saas/pkg/cloudinary"
	"github.com/PriyanshuKSharma/media-storage-saas/pkg/config"
	"github.com/PriyanshuKSharma/media-storage-saas/pkg/db/models"
	"github.com/PriyanshuKSharma/media-storage-saas/pkg/enums"
	pkgerrors "github.com/PriyanshuKSharma/media-storage-saas/pkg/errors"
	"github.com/PriyanshuKSharma/media-storage-saas/pkg/logger"
)

type assetRepository interface {
	Create(ctx context.Context, asset *models.Asset) (*models.Asset, error)
	Update(ctx context.Context, asset *models.Asset) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListReadyByUser(ctx context.Context, userID string, kind enums.AssetKind) ([]models.Asset, error)
}

type mediaUploader interface {
	Upload(ctx context.Context, file io.Reader, params cloudinary.UploadParams) (*cloudinary.UploadResult, error)
}

// Service exposes ingestion and listing semantics for uploaded assets.
type Service interface {
	IngestVideo(ctx context.Context, userID string, input IngestVideoInput) (*models.Asset, error)
	IngestImage(ctx context.Context, userID string, input IngestImageInput) (*models.Asset, error)
	ListVideos(ctx context.Context, userID string) ([]models.Asset, error)
}

type service struct {
	repo     assetRepository
	uploader mediaUploader
	limits   config.UploadConfig
	logg     *logger.Logger
}

// NewService constructs an asset service backed by the provided repository
// and media uploader.
func NewService(repo assetRepository, uploader mediaUploader, limits config.UploadConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("asset repository required")
	}
	if uploader == nil {
		return nil, fmt.Errorf("media uploader required")
	}
	if limits.MaxVideoBytes <= 0 || limits.MaxImageBytes <= 0 {
		return nil, fmt.Errorf("upload size limits must be positive")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, uploader: uploader, limits: limits, logg: logg}, nil
}

// IngestVideoInput models one video upload request.
type IngestVideoInput struct {
	File        io.Reader
	FileName    string
	Title       string
	Description *string

	// DeclaredBytes is the byte size the client measured before sending.
	DeclaredBytes int64
}

// IngestImageInput models one image upload request.
type IngestImageInput struct {
	File          io.Reader
	FileName      string
	DeclaredBytes int64
}

func (s *service) IngestVideo(ctx context.Context, userID string, input IngestVideoInput) (*models.Asset, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if input.File == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file is required")
	}
	if input.DeclaredBytes <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "originalSize must be positive")
	}
	if input.DeclaredBytes > s.limits.MaxVideoBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("file exceeds the %d byte video limit", s.limits.MaxVideoBytes))
	}

	mimeType, body, err := sniffContent(input.File)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "inspect file content")
	}
	if !isAllowedMime(enums.AssetKindVideo, mimeType) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("unsupported file type %s, expected one of %s", mimeType, allowedMimeDescription(enums.AssetKindVideo)))
	}

	var description *string
	if input.Description != nil {
		if trimmed := strings.TrimSpace(*input.Description); trimmed != "" {
			description = &trimmed
		}
	}

	row := &models.Asset{
		ID:            uuid.New(),
		UserID:        userID,
		Kind:          enums.AssetKindVideo,
		Status:        enums.AssetStatusPending,
		Title:         title,
		Description:   description,
		PublicID:      pendingPublicID(),
		OriginalBytes: input.DeclaredBytes,
	}
	if _, err := s.repo.Create(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist asset row")
	}

	result, err := s.uploader.Upload(ctx, body, cloudinary.UploadParams{
		Kind:     enums.AssetKindVideo,
		FileName: sanitizeFileName(input.FileName),
	})
	if err != nil {
		if deleteErr := s.repo.Delete(ctx, row.ID); deleteErr != nil {
			s.logg.Error(s.logg.WithAssetID(ctx, row.ID.String()), "remove asset row after failed upload", deleteErr)
		}
		return nil, err
	}

	row.Status = enums.AssetStatusReady
	row.PublicID = result.PublicID
	row.SecureURL = result.SecureURL
	row.DurationSec = result.Duration
	row.CompressedBytes = result.CompressedBytes
	if row.OriginalBytes < result.Bytes {
		row.OriginalBytes = result.Bytes
	}
	if err := s.repo.Update(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "finalize asset row")
	}
	return row, nil
}

func (s *service) IngestImage(ctx context.Context, userID string, input IngestImageInput) (*models.Asset, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.File == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file is required")
	}
	if input.DeclaredBytes <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file size must be positive")
	}
	if input.DeclaredBytes > s.limits.MaxImageBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("file exceeds the %d byte image limit", s.limits.MaxImageBytes))
	}

	mimeType, body, err := sniffContent(input.File)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "inspect file content")
	}
	if !isAllowedMime(enums.AssetKindImage, mimeType) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("unsupported file type %s, expected one of %s", mimeType, allowedMimeDescription(enums.AssetKindImage)))
	}

	fileName := sanitizeFileName(input.FileName)
	title := fileName
	if title == "" {
		title = "untitled image"
	}

	row := &models.Asset{
		ID:            uuid.New(),
		UserID:        userID,
		Kind:          enums.AssetKindImage,
		Status:        enums.AssetStatusPending,
		Title:         title,
		PublicID:      pendingPublicID(),
		OriginalBytes: input.DeclaredBytes,
	}
	if _, err := s.repo.Create(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist asset row")
	}

	result, err := s.uploader.Upload(ctx, body, cloudinary.UploadParams{
		Kind:     enums.AssetKindImage,
		FileName: fileName,
	})
	if err != nil {
		if deleteErr := s.repo.Delete(ctx, row.ID); deleteErr != nil {
			s.logg.Error(s.logg.WithAssetID(ctx, row.ID.String()), "remove asset row after failed upload", deleteErr)
		}
		return nil, err
	}

	row.Status = enums.AssetStatusReady
	row.PublicID = result.PublicID
	row.SecureURL = result.SecureURL
	row.CompressedBytes = result.CompressedBytes
	if row.OriginalBytes < result.Bytes {
		row.OriginalBytes = result.Bytes
	}
	if err := s.repo.Update(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "finalize asset row")
	}
	return row, nil
}

func (s *service) ListVideos(ctx context.Context, userID string) ([]models.Asset, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	rows, err := s.repo.ListReadyByUser(ctx, userID, enums.AssetKindVideo)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list assets")
	}
	return rows, nil
}

// pendingPublicID fills the unique public_id column until the media service
// assigns the real storage key.
func pendingPublicID() string {
	return "pending/" + uuid.NewString()
}

func sanitizeFileName(name string) string {
	clean := path.Base(strings.TrimSpace(name))
	if clean == "." || clean == "/" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(clean))
	for _, r := range clean {
		switch {
		case r == '/' || r == '\\' || unicode.IsControl(r):
			continue
		case unicode.IsSpace(r):
			b.WriteRune('-')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
