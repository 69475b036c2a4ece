package handler

import (
	"net/http"
	nurl "net/url"
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/gin-gonic/gin"
	"github.com/yangnim21029/pagelens/cache"
	"github.com/yangnim21029/pagelens/models"
	"github.com/yangnim21029/pagelens/pipeline"
	"github.com/yangnim21029/pagelens/wordpress"
)

// AuditURL returns a handler for POST /api/v1/audit/url.
//
// The page content is fetched from the site's WordPress REST API, then
// audited like a direct HTML submission. The response carries a Markdown
// preview of the fetched content so callers can verify what was analyzed.
func AuditURL(p *pipeline.Pipeline, wp *wordpress.Client, conv *converter.Converter, cc *cache.Cache, metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var req models.AuditURLRequest
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
			cacheKey = cache.Key(req.URL, "", req.FocusKeyword, req.RelatedKeywords, req.Options)
			if cached, hit := cc.Get(cacheKey, req.MaxAgeMs); hit {
				cached.CacheStatus = "hit"
				cached.ProcessingTimeMs = time.Since(start).Milliseconds()
				metrics.AuditsServed.Add(1)
				respondAudit(c, cached)
				return
			}
		}

		page, err := wp.FetchPage(c.Request.Context(), req.URL)
		if err != nil {
			respondError(c, err, time.Since(start).Milliseconds())
			return
		}

		result, err := p.Run(c.Request.Context(), &models.AuditRequest{
			HTML:            page.HTML,
			PageDetails:     page.Details,
			FocusKeyword:    req.FocusKeyword,
			RelatedKeywords: req.RelatedKeywords,
			Options:         req.Options,
		})
		if err != nil {
			respondError(c, err, time.Since(start).Milliseconds())
			return
		}

		resp := &models.AuditResponse{
			Success:           true,
			Report:            result.Report,
			PageUnderstanding: result.PageUnderstanding,
			ProcessingTimeMs:  time.Since(start).Milliseconds(),
			ContentMarkdown:   contentPreview(conv, page),
		}

		if cacheKey != "" {
			cc.Set(cacheKey, resp)
			resp.CacheStatus = "miss"
		}

		metrics.AuditsServed.Add(1)
		respondAudit(c, resp)
	}
}

// contentPreview renders the fetched content as Markdown. Rendering failures
// only lose the preview, never the audit.
func contentPreview(conv *converter.Converter, page *wordpress.Page) string {
	domain := ""
	if parsed, err := nurl.Parse(page.Details.URL); err == nil {
		domain = parsed.Scheme + "://" + parsed.Host
	}
	md, err := wordpress.ToMarkdown(conv, page.HTML, domain)
	if err != nil {
		return ""
	}
	return md
}
