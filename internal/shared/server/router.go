package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"career-coach/internal/interviews"
	"career-coach/internal/learningpaths"
	"career-coach/internal/profiles"
	"career-coach/internal/resumes"
	"career-coach/internal/services/health"
	"career-coach/internal/shared/config"
	"career-coach/internal/shared/metrics"
	"career-coach/internal/shared/server/middleware"
	"career-coach/internal/shared/server/respond"
)

const (
	groupGeneration = "GENERATION"
	groupDefault    = "DEFAULT"
)

// RouterDeps holds the handlers mounted under /api/v1.
type RouterDeps struct {
	Config        config.Config
	Health        *health.Service
	Profiles      *profiles.Handler
	Interviews    *interviews.Handler
	LearningPaths *learningpaths.Handler
	Resumes       *resumes.Handler
	Limiter       *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) (*gin.Engine, error) {
	if err := ConfigureValidation(); err != nil {
		return nil, err
	}
	if deps.Profiles == nil || deps.Interviews == nil || deps.LearningPaths == nil {
		return nil, errors.New("router: profile, interview and learning path handlers are required")
	}

	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	rules := map[string]middleware.RateLimitRule{}
	if deps.Config.RateLimitRPS > 0 && deps.Config.RateLimitBurst > 0 {
		rules[groupGeneration] = middleware.RateLimitRule{Rate: deps.Config.RateLimitRPS, Burst: deps.Config.RateLimitBurst}
	}

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Rules:        rules,
		DefaultGroup: groupDefault,
		GroupFor:     rateLimitGroup,
		Limiter:      deps.Limiter,
	}))
	api.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			respond.OK(c, gin.H{"status": "ok"})
			return
		}
		respond.OK(c, deps.Health.Status(c.Request.Context()))
	})
	deps.Profiles.RegisterRoutes(api)
	deps.Interviews.RegisterRoutes(api)
	deps.LearningPaths.RegisterRoutes(api)
	if deps.Resumes != nil {
		deps.Resumes.RegisterRoutes(api)
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "route not found", nil)
	})

	return r, nil
}

// rateLimitGroup puts the routes that call the language model in their own bucket.
func rateLimitGroup(c *gin.Context) string {
	if c.Request.Method != http.MethodPost {
		return groupDefault
	}
	switch c.FullPath() {
	case "/api/v1/profiles", "/api/v1/interview-sessions", "/api/v1/learning-paths":
		return groupGeneration
	default:
		return groupDefault
	}
}

// ConfigureValidation registers the custom binding rules on gin's validator.
func ConfigureValidation() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("router: unexpected binding validator engine")
	}
	respond.UseJSONFieldNames(v)
	return profiles.RegisterValidations(v)
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
