package controllers

import (
	"net/http"

	"github.com/PriyanshuKSharma/media-storage-saas/api/middleware"
	"github.com/PriyanshuKSharma/media-storage-saas/api/responses"
	"github.com/PriyanshuKSharma/media-storage-saas/internal/assets"
	"github.com/PriyanshuKSharma/media-storage-saas/pkg/config"
	pkgerrors "github.com/PriyanshuKSharma/media-storage-saas/pkg/errors"
	"github.com/PriyanshuKSharma/media-storage-saas/pkg/logger"
)

// UploadImage ingests one image from a multipart form carrying only the file
// part and returns its storage key.
func UploadImage(svc assets.Service, limits config.UploadConfig, logg *logger.Logger) http.HandlerFunc {
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

		r.Body = http.MaxBytesReader(w, r.Body, limits.MaxImageBytes+multipartMemoryLimit)
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

		row, err := svc.IngestImage(r.Context(), userID, assets.IngestImageInput{
			File:          file,
			FileName:      header.Filename,
			DeclaredBytes: header.Size,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{
			"publicId": row.PublicID,
			"url":      row.SecureURL,
		})
	}
}
