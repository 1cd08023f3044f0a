package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/PriyanshuKSharma/media-storage-saas/api/controllers"
	"github.com/PriyanshuKSharma/media-storage-saas/api/middleware"
	"github.com/PriyanshuKSharma/media-storage-saas/internal/assets"
	"github.com/PriyanshuKSharma/media-storage-saas/pkg/config"
	"github.com/PriyanshuKSharma/media-storage-saas/pkg/db"
	"github.com/PriyanshuKSharma/media-storage-saas/pkg/logger"
	"github.com/PriyanshuKSharma/media-storage-saas/pkg/redis"
)

// NewRouter assembles the HTTP surface: health probes, and authenticated
// ingestion and listing endpoints.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	assetService assets.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	uploadPolicy := middleware.NewUploadRateLimitPolicy(
		"upload",
		cfg.Upload.RateLimitWindow,
		cfg.Upload.IPRateLimit,
		cfg.Upload.UserRateLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Get("/videos", controllers.ListVideos(assetService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.UploadRateLimit(uploadPolicy, redisClient, logg))
			r.Post("/videos", controllers.UploadVideo(assetService, cfg.Upload, logg))
			r.Post("/images", controllers.UploadImage(assetService, cfg.Upload, logg))
		})
	})

	return r
}
