package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yangnim21029/pagelens/api/handler"
	"github.com/yangnim21029/pagelens/api/middleware"
	"github.com/yangnim21029/pagelens/cache"
	"github.com/yangnim21029/pagelens/config"
	"github.com/yangnim21029/pagelens/pipeline"
	"github.com/yangnim21029/pagelens/webhook"
	"github.com/yangnim21029/pagelens/wordpress"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health endpoint is intentionally outside auth so monitoring probes always work.
func NewRouter(p *pipeline.Pipeline, wp *wordpress.Client, cfg *config.Config, cc *cache.Cache, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	metrics := &handler.Metrics{}
	conv := wordpress.NewMarkdownConverter()

	v1 := r.Group("/api/v1")

	// Health — no auth required.
	v1.GET("/health", handler.Health(metrics, startTime))

	// Protected group — auth + rate limit.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	// Audit
	protected.POST("/audit", handler.Audit(p, cc, metrics))
	protected.POST("/audit/url", handler.AuditURL(p, wp, conv, cc, metrics))

	// Batch
	batchOpts := handler.BatchOptions{
		MaxConcurrency: cfg.Batch.MaxConcurrency,
		MaxItems:       cfg.Batch.MaxItems,
		JobTTL:         cfg.Batch.JobTTL,
		Webhook:        webhook.NewClient(cfg.Webhook.Secret, cfg.Webhook.Timeout),
	}
	protected.POST("/batch/audit", handler.PostBatch(p, batchOpts, metrics))
	protected.GET("/batch/:id", handler.GetBatch())

	return r
}
