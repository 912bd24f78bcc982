package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgAuth "github.com/ingenio-organico-app/ingenio-organico-app/pkg/auth"
	"github.com/ingenio-organico-app/ingenio-organico-app/pkg/config"
)

func testRouter(t *testing.T) (http.Handler, *config.Config) {
	t.Helper()
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:            "router-test-secret",
			Issuer:            "ingenio-test",
			ExpirationMinutes: 60,
		},
	}
	return NewRouter(Dependencies{
		Config:          cfg,
		MetricsRegistry: prometheus.NewRegistry(),
	}), cfg
}

func TestRouterHealthLive(t *testing.T) {
	router, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "live")
}

func TestRouterServesMetrics(t *testing.T) {
	router, _ := testRouter(t)

	// Hit a route first so there is something to scrape.
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestRouterAdminRoutesRequireAuth(t *testing.T) {
	router, _ := testRouter(t)

	for _, path := range []string{
		"/api/admin/v1/products",
		"/api/admin/v1/orders/weeks",
		"/api/admin/v1/stats/2025-01",
		"/api/admin/v1/stats/2025-01/share",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestRouterAdminTokenPassesAuth(t *testing.T) {
	router, cfg := testRouter(t)

	token, err := pkgAuth.MintAdminToken(cfg.JWT, time.Now())
	require.NoError(t, err)

	// The catalog service is nil in this wiring, so passing auth surfaces a
	// 500 from the handler rather than a 401 from the middleware.
	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/products", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRouterPublicRoutesExist(t *testing.T) {
	router, _ := testRouter(t)

	// Nil services respond 500, proving the route is wired rather than 404.
	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/storefront"},
		{http.MethodPost, "/api/v1/checkout"},
		{http.MethodPost, "/api/v1/checkout/quote"},
		{http.MethodPost, "/api/v1/auth/login"},
	} {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.NotEqual(t, http.StatusNotFound, rec.Code, tc.path)
	}
}
