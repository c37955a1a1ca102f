package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/storefront-api/internal/handler/health"
	"github.com/jwalitptl/storefront-api/internal/handler/prometheus"
	"github.com/jwalitptl/storefront-api/internal/i18n"
	"github.com/jwalitptl/storefront-api/internal/middleware"
)

type echoHandler struct{}

func (echoHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/echo", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"locale": c.GetString(middleware.ContextLocale)})
	})
	r.POST("/echo", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
}

func newTestRouter(t *testing.T) *Router {
	t.Helper()
	catalog, err := i18n.NewCatalog("en")
	require.NoError(t, err)

	r := NewRouter(RouterConfig{
		Catalog:   catalog,
		CORS:      middleware.DefaultCORSConfig(),
		Security:  middleware.DefaultSecurityConfig(),
		SizeLimit: middleware.DefaultSizeLimitConfig(),
		Timeout:   middleware.DefaultTimeoutConfig(),
		Cache:     middleware.DefaultCacheConfig(),
		RateLimiter: middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  0.001,
			Burst: 1,
		}),
	},
		health.NewHandler(nil),
		prometheus.New(promclient.NewRegistry(), "storefront"),
		echoHandler{},
	)
	r.Setup()
	return r
}

func serve(r *Router, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	r.Engine().ServeHTTP(w, req)
	return w
}

func TestRouterHealth(t *testing.T) {
	r := newTestRouter(t)

	w := serve(r, http.MethodGet, "/api/v1/health/live")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderXRequestID))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))

	w = serve(r, http.MethodGet, "/api/v1/health/ready")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouterLocale(t *testing.T) {
	r := newTestRouter(t)

	w := serve(r, http.MethodGet, "/api/v1/echo?locale=de")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"locale":"de"}`, w.Body.String())
	assert.Equal(t, "de", w.Header().Get("Content-Language"))
}

func TestRouterRateLimitsSubmissionsOnly(t *testing.T) {
	r := newTestRouter(t)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/api/v1/echo").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodPost, "/api/v1/echo").Code)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/v1/echo").Code)
	}
}

func TestRouterMetrics(t *testing.T) {
	r := newTestRouter(t)

	serve(r, http.MethodGet, "/api/v1/health/live")
	serve(r, http.MethodGet, "/nope")

	w := serve(r, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `storefront_http_requests_total{method="GET",path="/api/v1/health/live",status="200"} 1`), body)
	assert.Contains(t, body, `path="unmatched"`)
}
