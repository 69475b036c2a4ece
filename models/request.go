package models

// AuditOptions carries the optional per-call configuration for one audit.
type AuditOptions struct {
	// ContentSelectors is an ordered list of CSS selectors tried in order;
	// the first one that matches becomes the analyzed scope. When empty the
	// whole document body is analyzed — there is no hidden default list.
	ContentSelectors []string `json:"content_selectors,omitempty"`

	// ExcludeSelectors lists elements removed from the scope before analysis
	// (navigation, ads, comment sections, ...).
	ExcludeSelectors []string `json:"exclude_selectors,omitempty"`

	// BaseURL overrides the base used to resolve relative links. Defaults to
	// the page URL (or a <base> tag when present).
	BaseURL string `json:"base_url,omitempty"`

	// Assessments optionally restricts the run to a subset of catalog IDs.
	// When empty the full catalog is evaluated and scored.
	Assessments []string `json:"assessments,omitempty"`
}

// AuditRequest is the payload for POST /api/v1/audit.
type AuditRequest struct {
	// HTML is the raw document to audit. Required.
	HTML string `json:"html" binding:"required"`

	// PageDetails provides the page URL, title and optional metadata. Required.
	PageDetails PageDetails `json:"page_details" binding:"required"`

	// FocusKeyword is the primary phrase the page is optimized for. Optional;
	// keyword-dependent rules return OK when empty.
	FocusKeyword string `json:"focus_keyword,omitempty"`

	// RelatedKeywords are secondary phrases, evaluated with
	// character-containment matching. Order matters (first match wins).
	RelatedKeywords []string `json:"related_keywords,omitempty"`

	// Options carries selector scoping and assessment selection.
	Options AuditOptions `json:"options"`

	// MaxAgeMs enables the response cache: a cached report younger than this
	// many milliseconds is returned instead of re-auditing. 0 disables.
	MaxAgeMs int `json:"max_age_ms,omitempty" binding:"omitempty,min=0"`
}

// AuditURLRequest is the payload for POST /api/v1/audit/url. The content is
// fetched from the page's WordPress REST API before auditing.
type AuditURLRequest struct {
	URL             string       `json:"url" binding:"required,url"`
	FocusKeyword    string       `json:"focus_keyword,omitempty"`
	RelatedKeywords []string     `json:"related_keywords,omitempty"`
	Options         AuditOptions `json:"options"`
	MaxAgeMs        int          `json:"max_age_ms,omitempty" binding:"omitempty,min=0"`
}

// AuditResponse is the envelope for audit endpoints.
type AuditResponse struct {
	Success bool `json:"success"`

	// Report is the scored audit result. Nil when Success is false.
	Report *ScoredReport `json:"report,omitempty"`

	// PageUnderstanding is a display summary derived from the snapshot.
	PageUnderstanding *PageUnderstanding `json:"page_understanding,omitempty"`

	// ProcessingTimeMs is the elapsed pipeline time. Present on failures too.
	ProcessingTimeMs int64 `json:"processing_time_ms"`

	// CacheStatus indicates whether the response was served from cache.
	// Values: "hit", "miss", or empty (caching not requested).
	CacheStatus string `json:"cache_status,omitempty"`

	// ContentMarkdown is a Markdown preview of the fetched content. Only set
	// by the URL-audit flow when the caller asks for it.
	ContentMarkdown string `json:"content_markdown,omitempty"`

	// Error is populated only when Success is false.
	Error *ErrorDetail `json:"error,omitempty"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status       string `json:"status"` // "healthy"
	Uptime       string `json:"uptime"`
	AuditsServed int64  `json:"audits_served"`
	Version      string `json:"version"`
}
