package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/PriyanshuKSharma/media-storage-saas/api/middleware"
	"github.com/PriyanshuKSharma/media-storage-saas/api/responses"
	"github.com/PriyanshuKSharma/media-storage-saas/api/validators"
	"github.com/PriyanshuKSharma/media-storage-saas/internal/assets"
	"github.com/PriyanshuKSharma/media-storage-saas/pkg/config"
	"github.com/PriyanshuKSharma/media-storage-saas/pkg/db/models"
	pkgerrors "github.com/PriyanshuKSharma/media-storage-saas/pkg/errors"
	"github.com/PriyanshuKSharma/media-storage-saas/pkg/logger"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 2000

	// multipartMemoryLimit bounds how much of the form is held in memory;
	// the file part spills to a temp file past this.
	multipartMemoryLimit = 32 << 20
)

// videoResponse is the wire shape of one asset record. Byte sizes travel as
// decimal strings.
type videoResponse struct {
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

// uploadVideoForm carries the non-file multipart fields.
type uploadVideoForm struct {
	Title        string `json:"title" validate:"required,max=200"`
	Description  string `json:"description" validate:"max=2000"`
	OriginalSize int64  `json:"originalSize" validate:"gt=0"`
}

func toVideoResponse(row models.Asset) videoResponse {
	return videoResponse{
		ID:             row.ID.String(),
		Title:          row.Title,
		Description:    row.Description,
		PublicID:       row.PublicID,
		URL:            row.SecureURL,
		OriginalSize:   strconv.FormatInt(row.OriginalBytes, 10),
		CompressedSize: strconv.FormatInt(row.CompressedBytes, 10),
		Duration:       row.DurationSec,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
		UserID:         row.UserID,
	}
}

// UploadVideo ingests one video from a multipart form carrying file, title,
// description, and the client-measured originalSize.
func UploadVideo(svc assets.Service, limits config.UploadConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "asset service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		// Reject bodies past the cap plus form overhead before buffering.
		r.Body = http.MaxBytesReader(w, r.Body, limits.MaxVideoBytes+multipartMemoryLimit)
		if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}
		defer func() {
			if r.MultipartForm != nil {
				_ = r.MultipartForm.RemoveAll()
			}
		}()

		file, header, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "file is required"))
			return
		}
		defer file.Close()

		declaredSize, err := strconv.ParseInt(r.FormValue("originalSize"), 10, 64)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "originalSize must be a byte count"))
			return
		}

		form := uploadVideoForm{
			Title:        validators.SanitizeString(r.FormValue("title"), maxTitleLen),
			Description:  validators.SanitizeString(r.FormValue("description"), maxDescriptionLen),
			OriginalSize: declaredSize,
		}
		if err := validators.ValidateStruct(form); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := assets.IngestVideoInput{
			File:          file,
			FileName:      header.Filename,
			Title:         form.Title,
			DeclaredBytes: form.OriginalSize,
		}
		if form.Description != "" {
			input.Description = &form.Description
		}

		row, err := svc.IngestVideo(r.Context(), userID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, toVideoResponse(*row))
	}
}

// ListVideos returns the caller's ready videos as a bare JSON array, newest
// first.
func ListVideos(svc assets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "asset service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		rows, err := svc.ListVideos(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload := make([]videoResponse, 0, len(rows))
		for _, row := range rows {
			payload = append(payload, toVideoResponse(row))
		}
		responses.WriteRaw(w, payload)
	}
}
