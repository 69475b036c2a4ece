// Package gatherer validates and normalizes caller-supplied audit input into
// the canonical ingredients record the rest of the pipeline consumes. It
// fails fast on missing or too-short input and performs no I/O.
package gatherer

import (
	"strings"

	"github.com/yangnim21029/pagelens/models"
)

// MinHTMLLength is the minimum number of characters of HTML worth auditing.
const MinHTMLLength = 100

// Input is the raw caller-supplied audit input.
type Input struct {
	HTML            string
	PageDetails     models.PageDetails
	FocusKeyword    string
	RelatedKeywords []string
}

// Gather validates the input and returns the normalized ingredients.
// Keywords are lower-cased and trimmed; empty related keywords are dropped
// while preserving order. Failures carry models.ErrCodeValidation.
func Gather(in Input) (*models.CanonicalIngredients, error) {
	if strings.TrimSpace(in.HTML) == "" {
		return nil, models.NewAuditError(models.ErrCodeValidation,
			"html content is empty", nil)
	}
	if len(in.HTML) < MinHTMLLength {
		return nil, models.NewAuditError(models.ErrCodeValidation,
			"html content is too short to audit (minimum 100 characters)", nil)
	}
	if strings.TrimSpace(in.PageDetails.URL) == "" {
		return nil, models.NewAuditError(models.ErrCodeValidation,
			"page url is required", nil)
	}
	if strings.TrimSpace(in.PageDetails.Title) == "" {
		return nil, models.NewAuditError(models.ErrCodeValidation,
			"page title is required", nil)
	}

	related := make([]string, 0, len(in.RelatedKeywords))
	for _, kw := range in.RelatedKeywords {
		if normalized := normalizeKeyword(kw); normalized != "" {
			related = append(related, normalized)
		}
	}

	return &models.CanonicalIngredients{
		HTMLContent:     in.HTML,
		PageDetails:     in.PageDetails,
		FocusKeyword:    normalizeKeyword(in.FocusKeyword),
		RelatedKeywords: related,
	}, nil
}

func normalizeKeyword(kw string) string {
	return strings.ToLower(strings.TrimSpace(kw))
}
