package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/PriyanshuKSharma/media-storage-saas/pkg/config"
	"github.com/PriyanshuKSharma/media-storage-saas/pkg/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: config.AppEnvDev},
		JWT: config.JWTConfig{Secret: "0123456789abcdef0123456789abcdef", Issuer: "media-storage-saas"},
	}
}

func TestRouterHealthLive(t *testing.T) {
	t.Parallel()

	router := NewRouter(testConfig(), logger.New(logger.Options{ServiceName: "test"}), nil, nil, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRouterRequiresAuthOnAPI(t *testing.T) {
	t.Parallel()

	router := NewRouter(testConfig(), logger.New(logger.Options{ServiceName: "test"}), nil, nil, nil)

	for _, target := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/videos"},
		{http.MethodPost, "/api/v1/videos"},
		{http.MethodPost, "/api/v1/images"},
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(target.method, target.path, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s status = %d, want 401", target.method, target.path, rec.Code)
		}
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	t.Parallel()

	router := NewRouter(testConfig(), logger.New(logger.Options{ServiceName: "test"}), nil, nil, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}
