package models

// PageDetails holds caller-supplied metadata about the page under audit.
type PageDetails struct {
	URL           string `json:"url" binding:"required,url"`
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description,omitempty"`
	Language      string `json:"language,omitempty"`
	PublishedDate string `json:"published_date,omitempty"`
	Author        string `json:"author,omitempty"`
	SiteName      string `json:"site_name,omitempty"`
}

// CanonicalIngredients is the validated, normalized audit input. It is
// created once per request by the gatherer and never mutated afterwards.
type CanonicalIngredients struct {
	HTMLContent     string
	PageDetails     PageDetails
	FocusKeyword    string   // lower-cased, trimmed; may be empty
	RelatedKeywords []string // lower-cased, trimmed, order preserved
}

// HasFocusKeyword reports whether a focus keyword was supplied.
func (ci *CanonicalIngredients) HasFocusKeyword() bool {
	return ci.FocusKeyword != ""
}

// AllKeywords returns the focus keyword followed by the related keywords,
// skipping empties. Order matters: related-keyword matching is first-wins.
func (ci *CanonicalIngredients) AllKeywords() []string {
	keywords := make([]string, 0, len(ci.RelatedKeywords)+1)
	if ci.FocusKeyword != "" {
		keywords = append(keywords, ci.FocusKeyword)
	}
	for _, kw := range ci.RelatedKeywords {
		if kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}
