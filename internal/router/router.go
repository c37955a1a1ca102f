package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/storefront-api/internal/handler/health"
	"github.com/jwalitptl/storefront-api/internal/handler/prometheus"
	"github.com/jwalitptl/storefront-api/internal/i18n"
	"github.com/jwalitptl/storefront-api/internal/middleware"
	"github.com/jwalitptl/storefront-api/pkg/logger"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type RouterConfig struct {
	Logger    *logger.Logger
	Catalog   *i18n.Catalog
	CORS      middleware.CORSConfig
	Security  middleware.SecurityConfig
	SizeLimit middleware.SizeLimitConfig
	Timeout   middleware.TimeoutConfig
	Cache     middleware.CacheConfig
	// RateLimiter limits form submissions. Nil disables rate limiting.
	RateLimiter *middleware.RateLimiter
	MetricsPath string
}

type Router struct {
	engine   *gin.Engine
	config   RouterConfig
	health   *health.Handler
	metrics  *prometheus.Handler
	handlers []Handler
}

// NewRouter builds the engine and its global middleware. metrics may be nil.
func NewRouter(config RouterConfig, healthH *health.Handler, metrics *prometheus.Handler, handlers ...Handler) *Router {
	gin.SetMode(gin.ReleaseMode)

	if config.Logger == nil {
		config.Logger = logger.Nop()
	}
	if config.MetricsPath == "" {
		config.MetricsPath = "/metrics"
	}

	engine := gin.New()

	r := &Router{
		engine:   engine,
		config:   config,
		health:   healthH,
		metrics:  metrics,
		handlers: handlers,
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(config.Logger),
		middleware.Logger(config.Logger),
	)
	if metrics != nil {
		engine.Use(metrics.Middleware())
	}
	engine.Use(
		middleware.SecurityHeaders(config.Security),
		middleware.CORS(config.CORS),
		middleware.SizeLimit(config.SizeLimit),
		middleware.Timeout(config.Timeout),
	)

	return r
}

func (r *Router) Setup() {
	if r.metrics != nil {
		r.engine.GET(r.config.MetricsPath, r.metrics.Handler())
	}

	api := r.engine.Group("/api/v1")

	if r.health != nil {
		r.health.RegisterRoutes(api)
	}

	forms := api.Group("")
	forms.Use(
		middleware.Locale(r.config.Catalog),
		middleware.CustomerToken(),
		middleware.Cache(r.config.Cache),
	)
	if r.config.RateLimiter != nil {
		forms.Use(submissionsOnly(r.config.RateLimiter.RateLimit()))
	}

	for _, h := range r.handlers {
		h.RegisterRoutes(forms)
	}
}

// submissionsOnly applies next to POST requests. Page reads pass through.
func submissionsOnly(next gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}
		next(c)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
