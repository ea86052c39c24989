package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"analyzer-backend/internal/analysis"
	"analyzer-backend/internal/llm"
	llmopenai "analyzer-backend/internal/llm/openai"
	"analyzer-backend/internal/shared/config"
	"analyzer-backend/internal/shared/metrics"
	"analyzer-backend/internal/shared/server/middleware"
	"analyzer-backend/internal/shared/server/respond"
	"analyzer-backend/internal/shared/telemetry"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"ANALYZE": {Rate: 1, Burst: 5},
			},
			GroupFor: analyzeGroup,
		}),
	)

	// Dependencies
	var client llm.Client
	oa, err := llmopenai.NewClient(cfg.OpenAIAPIKey, cfg.DefaultModel, time.Duration(cfg.LLMTimeoutSecs)*time.Second)
	if err != nil {
		telemetry.Warn("llm.not_configured", map[string]any{"err": err.Error()})
		client = llm.PlaceholderClient{}
	} else {
		client = oa
	}
	svc := analysis.NewService(client, cfg.DefaultModel)
	handler := analysis.NewHandler(svc, "")

	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"status": "healthy"})
	})
	r.GET("/metrics", metrics.Handler())
	handler.RegisterRoutes(&r.RouterGroup)

	return r
}

func analyzeGroup(c *gin.Context) string {
	if c.Request.Method == http.MethodPost {
		return "ANALYZE"
	}
	return ""
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
