package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-generator/internal/resumes"
	"resume-generator/internal/services/health"
	"resume-generator/internal/shared/config"
	"resume-generator/internal/shared/metrics"
	"resume-generator/internal/shared/server/middleware"
	"resume-generator/internal/shared/server/respond"
)

// RouterDeps holds handler dependencies for routing.
type RouterDeps struct {
	Config         config.Config
	ResumesHandler *resumes.Handler
	HealthHandler  *health.Handler
	// OpenAPI serves the API description when set.
	OpenAPI gin.HandlerFunc
	// Limiter is shared by every request; nil creates one.
	Limiter *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(rateLimitConfig(deps)),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	if deps.HealthHandler != nil {
		deps.HealthHandler.RegisterRoutes(api)
	} else {
		api.GET("/health", func(c *gin.Context) {
			respond.JSON(c, http.StatusOK, gin.H{"status": health.StatusOK})
		})
	}
	if deps.OpenAPI != nil {
		api.GET("/openapi.json", deps.OpenAPI)
	}
	if deps.ResumesHandler != nil {
		deps.ResumesHandler.RegisterRoutes(api)
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "route not found", nil)
	})

	return r
}

func rateLimitConfig(deps RouterDeps) middleware.RateLimitConfig {
	rules := map[string]middleware.RateLimitRule{}
	if deps.Config.CompileRateLimitRPS > 0 && deps.Config.CompileRateLimitBurst > 0 {
		rules[middleware.GroupCompile] = middleware.RateLimitRule{
			Rate:  deps.Config.CompileRateLimitRPS,
			Burst: deps.Config.CompileRateLimitBurst,
		}
	}
	return middleware.RateLimitConfig{
		Rules:        rules,
		DefaultGroup: middleware.GroupDefault,
		GroupFor: func(c *gin.Context) string {
			if resumes.IsCompileRoute(c) {
				return middleware.GroupCompile
			}
			return middleware.GroupDefault
		},
		Limiter: deps.Limiter,
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
