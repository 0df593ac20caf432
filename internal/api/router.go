package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/knowbaseai/knowbase/internal/dbpool"
	"github.com/knowbaseai/knowbase/internal/middleware"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log         *logrus.Logger
	Pool        *dbpool.Pool
	Stats       StatsProvider
	Documents   DocumentProvider
	Ingestion   IngestionHistoryProvider
	APIKey      string
	CORSOrigins []string
	Version     string
}

// Router-level limits.
const (
	maxBodySize = 10 << 20 // 10 MB
	rateLimit   = 100      // requests per second per IP
	rateBurst   = 200      // token bucket burst size
)

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(ctx context.Context, r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MaxBodySize(maxBodySize))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		MaxAge:           1 * time.Hour,
		AllowCredentials: false,
	}))
	r.Use(middleware.NewRateLimiter(ctx, rateLimit, rateBurst).Handler())
	r.Use(middleware.PrometheusMiddleware())

	// Metrics endpoint (unauthenticated, like health).
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// registerRoutes sets up all API route handlers on the given router group.
func registerRoutes(ctx context.Context, api *gin.RouterGroup, deps *RouterDeps) {
	log := deps.Log

	health := NewHealthHandler(deps.Pool, log, deps.Version)
	stats := NewStatsHandler(deps.Stats, log)
	documents := NewDocumentHandler(deps.Documents, log)
	ingestion := NewIngestionHandler(deps.Ingestion, log)

	// Health and readiness are unauthenticated.
	api.GET("/health", health.Liveness)
	api.GET("/ready", health.Readiness)

	// All other API routes require authentication when a key is configured.
	if deps.APIKey != "" {
		bfGuard := middleware.NewBruteForceGuard(ctx, log)
		api.Use(middleware.BruteForceMiddleware(bfGuard))
		api.Use(middleware.AuthMiddleware(deps.APIKey, log, bfGuard))
	}

	// Statistics.
	api.GET("/stats", stats.GetStats)

	// Documents.
	api.GET("/documents", documents.List)
	api.POST("/documents", documents.Create)
	api.POST("/documents/bulk", documents.BulkIngest)
	api.GET("/documents/:id", documents.Get)
	api.DELETE("/documents/:id", documents.Delete)

	// Ingestion bookkeeping.
	api.GET("/ingestion/history", ingestion.GetHistory)
}

// NewRouter creates and configures the Gin engine with all middleware and routes.
func NewRouter(ctx context.Context, deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(ctx, r, deps)
	registerRoutes(ctx, r.Group("/api/v1"), deps)

	return r
}
