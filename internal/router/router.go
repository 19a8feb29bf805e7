package router

import (
	"time"

	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	prometheusHandler "github.com/jwalitptl/clinic-directory/internal/handler/prometheus"
	"github.com/jwalitptl/clinic-directory/internal/middleware"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// Handlers groups what gets mounted where. Root handlers keep the
// unversioned paths; V1 handlers live under /api/v1.
type Handlers struct {
	Health  Handler
	Metrics *prometheusHandler.Handler
	Root    []Handler
	V1      []Handler
}

type RouterConfig struct {
	RateLimitEnabled bool
	RateLimit        rate.Limit
	RateBurst        int
	CORSConfig       middleware.CORSConfig
	RequestTimeout   time.Duration
	MaxBodyBytes     int64
	StaticDir        string
}

type Router struct {
	engine   *gin.Engine
	handlers Handlers
}

func NewRouter(config RouterConfig, handlers Handlers) *Router {
	engine := gin.New()
	middleware.RegisterValidation()

	r := &Router{
		engine:   engine,
		handlers: handlers,
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.ErrorHandler(),
	)
	if handlers.Metrics != nil {
		engine.Use(handlers.Metrics.Middleware())
	}
	engine.Use(
		middleware.SecurityHeaders(middleware.DefaultSecurityConfig()),
		middleware.CORS(config.CORSConfig),
	)

	if config.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
		})
		engine.Use(rateLimiter.RateLimit())
	}

	sizeLimit := middleware.DefaultSizeLimitConfig()
	if config.MaxBodyBytes > 0 {
		sizeLimit.MaxBodySize = config.MaxBodyBytes
	}
	engine.Use(
		middleware.SizeLimit(sizeLimit),
		middleware.Timeout(middleware.TimeoutConfig{Duration: config.RequestTimeout}),
	)

	if config.StaticDir != "" {
		engine.Use(static.Serve("/", static.LocalFile(config.StaticDir, false)))
	}

	return r
}

// Setup mounts every route. Call it once, before serving.
func (r *Router) Setup() {
	if r.handlers.Health != nil {
		r.handlers.Health.RegisterRoutes(&r.engine.RouterGroup)
	}
	if r.handlers.Metrics != nil {
		r.handlers.Metrics.RegisterRoutes(&r.engine.RouterGroup)
	}

	root := r.engine.Group("", middleware.Cache(middleware.DefaultCacheConfig()))
	for _, h := range r.handlers.Root {
		h.RegisterRoutes(root)
	}

	api := r.engine.Group("/api/v1",
		middleware.Version("1"),
		middleware.Cache(middleware.DefaultCacheConfig()),
	)
	for _, h := range r.handlers.V1 {
		h.RegisterRoutes(api)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
