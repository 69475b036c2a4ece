package models

// BatchAuditItem is one page in a batch audit.
type BatchAuditItem struct {
	HTML            string       `json:"html" binding:"required"`
	PageDetails     PageDetails  `json:"page_details" binding:"required"`
	FocusKeyword    string       `json:"focus_keyword,omitempty"`
	RelatedKeywords []string     `json:"related_keywords,omitempty"`
	Options         AuditOptions `json:"options"`
}

// BatchAuditRequest is the payload for POST /api/v1/batch/audit.
type BatchAuditRequest struct {
	// Items holds the pages to audit. Required.
	Items []BatchAuditItem `json:"items" binding:"required,min=1,max=100"`

	// WebhookURL, when set, receives a signed batch.completed event once all
	// items finish.
	WebhookURL string `json:"webhook_url,omitempty" binding:"omitempty,url"`
}

// BatchAuditResponse is the immediate response for POST /api/v1/batch/audit.
type BatchAuditResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Total  int    `json:"total"`
}

// BatchStatusResponse is the response for GET /api/v1/batch/:id.
type BatchStatusResponse struct {
	ID        string           `json:"id"`
	Status    string           `json:"status"`
	Completed int              `json:"completed"`
	Total     int              `json:"total"`
	Results   []*AuditResponse `json:"results,omitempty"`
}
