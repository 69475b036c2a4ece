package handler

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yangnim21029/pagelens/cache"
	"github.com/yangnim21029/pagelens/models"
	"github.com/yangnim21029/pagelens/pipeline"
	"github.com/yangnim21029/pagelens/report"
)

// Metrics counts served audits for the health endpoint.
type Metrics struct {
	AuditsServed atomic.Int64
}

// Audit returns a handler for POST /api/v1/audit.
//
// Orchestration flow:
//  1. Parse & validate request.
//  2. Cache lookup when max_age_ms is set.
//  3. Pipeline.Run → scored report + page understanding.
//  4. Cache store, respond 200.
func Audit(p *pipeline.Pipeline, cc *cache.Cache, metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var req models.AuditRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.AuditResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}

		cacheKey := ""
		if cc != nil && req.MaxAgeMs > 0 {
			cacheKey = cache.Key(req.PageDetails.URL, req.HTML, req.FocusKeyword, req.RelatedKeywords, req.Options)
			if cached, hit := cc.Get(cacheKey, req.MaxAgeMs); hit {
				cached.CacheStatus = "hit"
				cached.ProcessingTimeMs = time.Since(start).Milliseconds()
				metrics.AuditsServed.Add(1)
				respondAudit(c, cached)
				return
			}
		}

		result, err := p.Run(c.Request.Context(), &req)
		if err != nil {
			respondError(c, err, time.Since(start).Milliseconds())
			return
		}

		resp := &models.AuditResponse{
			Success:           true,
			Report:            result.Report,
			PageUnderstanding: result.PageUnderstanding,
			ProcessingTimeMs:  time.Since(start).Milliseconds(),
		}

		if cacheKey != "" {
			cc.Set(cacheKey, resp)
			resp.CacheStatus = "miss"
		}

		metrics.AuditsServed.Add(1)
		respondAudit(c, resp)
	}
}

// respondAudit writes the successful response as JSON, or as the rendered
// markdown report when the caller asked for ?format=markdown.
func respondAudit(c *gin.Context, resp *models.AuditResponse) {
	if c.Query("format") == "markdown" && resp.Report != nil {
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(report.Markdown(resp.Report)))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// respondError maps an AuditError to the correct HTTP status code and writes
// a structured JSON error response.
func respondError(c *gin.Context, err error, elapsedMs int64) {
	auditErr, ok := err.(*models.AuditError)
	if !ok {
		auditErr = models.NewAuditError(models.ErrCodeInternal, err.Error(), err)
	}

	c.JSON(mapErrorToStatus(auditErr), models.AuditResponse{
		Success:          false,
		Error:            auditErr.ToDetail(),
		ProcessingTimeMs: elapsedMs,
	})
}

// mapErrorToStatus translates error codes to HTTP status codes.
func mapErrorToStatus(e *models.AuditError) int {
	switch e.Code {
	case models.ErrCodeValidation, models.ErrCodeInvalidInput:
		return http.StatusBadRequest // 400
	case models.ErrCodeExtraction:
		return http.StatusUnprocessableEntity // 422
	case models.ErrCodeRateLimited:
		return http.StatusTooManyRequests // 429
	case models.ErrCodeUnauthorized:
		return http.StatusUnauthorized // 401
	case models.ErrCodeFetchFailed:
		return http.StatusBadGateway // 502
	default:
		return http.StatusInternalServerError // 500
	}
}
