package server

import (
	"time"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/candidates"
	"resume-screener/internal/chat"
	"resume-screener/internal/notify"
	"resume-screener/internal/shared/config"
	"resume-screener/internal/shared/metrics"
	"resume-screener/internal/shared/server/middleware"
	"resume-screener/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config            config.Config
	CandidatesHandler *candidates.Handler
	ChatHandler       *chat.Handler
	NotifyHandler     *notify.Handler
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
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	api.Use(middleware.RateLimit(middleware.RateLimitConfig{
		GroupFor: rateLimitGroup,
		Rules: map[string]middleware.RateLimitRule{
			"UPLOAD": {Rate: 1, Burst: 5},
			"CHAT":   {Rate: 2, Burst: 10},
		},
	}))

	api.GET("/health", func(c *gin.Context) {
		respond.OK(c, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	if deps.CandidatesHandler != nil {
		deps.CandidatesHandler.RegisterRoutes(api)
	}
	if deps.ChatHandler != nil {
		deps.ChatHandler.RegisterRoutes(api)
	}
	if deps.NotifyHandler != nil {
		deps.NotifyHandler.RegisterRoutes(api)
	}

	return r
}

func rateLimitGroup(c *gin.Context) string {
	switch c.FullPath() {
	case "/api/upload":
		return "UPLOAD"
	case "/api/chat", "/api/hr-chat":
		return "CHAT"
	default:
		return ""
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
