package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"career-backend/internal/applications"
	googleauth "career-backend/internal/auth"
	"career-backend/internal/careers"
	"career-backend/internal/documents"
	"career-backend/internal/parsing"
	"career-backend/internal/publishedresumes"
	"career-backend/internal/resumes"
	"career-backend/internal/shared/config"
	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/shared/server/respond"
	"career-backend/internal/usage"
	"career-backend/internal/users"
)

// RouterDeps bundles the handlers the router mounts.
type RouterDeps struct {
	Config             config.Config
	CareersHandler     *careers.Handler
	ResumesHandler     *resumes.Handler
	PublishHandler     *publishedresumes.Handler
	ApplicationHandler *applications.Handler
	ParsingHandler     *parsing.Handler
	DocumentsHandler   *documents.Handler
	UsersHandler       *users.Handler
	UsageHandler       *usage.Handler
	GoogleAuth         *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes
// registered. The public slug read sits outside the auth middleware
// behind its own rate limit.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	public := r.Group("/")
	public.Use(middleware.RateLimit(middleware.NewRateLimiter(time.Now), middleware.RateLimitRule{
		Rate:  deps.Config.PublicReadRate,
		Burst: deps.Config.PublicReadBurst,
	}))
	deps.PublishHandler.RegisterPublicRoutes(public)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	deps.GoogleAuth.RegisterRoutes(api)

	api.Use(middleware.Auth())
	deps.UsersHandler.RegisterRoutes(api)
	deps.CareersHandler.RegisterRoutes(api)
	deps.ResumesHandler.RegisterRoutes(api)
	deps.PublishHandler.RegisterRoutes(api)
	deps.ApplicationHandler.RegisterRoutes(api)
	deps.ParsingHandler.RegisterRoutes(api)
	deps.DocumentsHandler.RegisterRoutes(api)
	deps.UsageHandler.RegisterRoutes(api)
	if devLike(deps.Config.Env) {
		deps.UsageHandler.RegisterDevRoutes(api)
	}

	return r
}

func devLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
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
