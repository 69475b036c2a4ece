// Package assess implements the audit rule catalog: twelve SEO rules and
// four readability rules, each a pure function from a structural snapshot
// and canonical ingredients to one evaluation. Rules never mutate their
// input and never perform I/O, so concurrent audits need no coordination.
package assess

import (
	"fmt"

	"github.com/yangnim21029/pagelens/models"
)

// Stable rule identifiers. These are a public API contract: external callers
// key on them, so renaming one is a breaking change.
const (
	RuleH1Missing             = "H1_MISSING"
	RuleMultipleH1            = "MULTIPLE_H1"
	RuleH1KeywordMissing      = "H1_KEYWORD_MISSING"
	RuleH2SynonymsMissing     = "H2_SYNONYMS_MISSING"
	RuleImagesMissingAlt      = "IMAGES_MISSING_ALT"
	RuleKeywordMissingFirstP  = "KEYWORD_MISSING_FIRST_PARAGRAPH"
	RuleKeywordDensityLow     = "KEYWORD_DENSITY_LOW"
	RuleMetaDescriptionNeeds  = "META_DESCRIPTION_NEEDS_IMPROVEMENT"
	RuleMetaDescriptionWidth  = "META_DESCRIPTION_MISSING"
	RuleTitleNeedsImprovement = "TITLE_NEEDS_IMPROVEMENT"
	RuleTitleKeywordMissing   = "TITLE_MISSING"
	RuleContentLengthShort    = "CONTENT_LENGTH_SHORT"

	RuleFleschReadingEase      = "FLESCH_READING_EASE"
	RuleParagraphLengthLong    = "PARAGRAPH_LENGTH_LONG"
	RuleSentenceLengthLong     = "SENTENCE_LENGTH_LONG"
	RuleSubheadingDistribution = "SUBHEADING_DISTRIBUTION_POOR"
)

// Outcome is what one rule check produces; the engine merges it with the
// rule's static metadata into a full Evaluation.
type Outcome struct {
	Status         models.Status
	Score          int
	Recommendation string
	Details        models.Details
}

type checkFunc func(*models.StructuralSnapshot, *models.CanonicalIngredients, Config) Outcome

type rule struct {
	id          string
	category    models.Category
	name        string
	description string
	impact      models.Impact
	standards   *models.Standards
	check       checkFunc
}

// Engine evaluates the rule catalog against one document. It is stateless
// after construction and safe for concurrent use.
type Engine struct {
	cfg     Config
	catalog []rule
}

// New builds an engine with the given standards configuration.
func New(cfg Config) *Engine {
	e := &Engine{cfg: cfg}
	e.catalog = append(seoRules(cfg), readabilityRules(cfg)...)
	return e
}

// CatalogIDs returns the rule IDs in evaluation order.
func (e *Engine) CatalogIDs() []string {
	ids := make([]string, len(e.catalog))
	for i, r := range e.catalog {
		ids[i] = r.id
	}
	return ids
}

// CatalogSize returns the number of rules in the full catalog.
func (e *Engine) CatalogSize() int {
	return len(e.catalog)
}

// Run evaluates the catalog. With a non-empty selection only the named rules
// run; an unknown ID is a validation error. Exactly one evaluation per
// active rule is returned, in catalog order. A panicking rule is surfaced as
// an ASSESSMENT_ERROR instead of crashing the pipeline.
func (e *Engine) Run(snap *models.StructuralSnapshot, ci *models.CanonicalIngredients, selected []string) ([]models.Evaluation, error) {
	active, err := e.resolveSelection(selected)
	if err != nil {
		return nil, err
	}

	evals := make([]models.Evaluation, 0, len(e.catalog))
	for _, r := range e.catalog {
		if active != nil {
			if _, ok := active[r.id]; !ok {
				continue
			}
		}

		out, err := e.evaluate(r, snap, ci)
		if err != nil {
			return nil, err
		}

		evals = append(evals, models.Evaluation{
			ID:             r.id,
			Category:       r.category,
			Name:           r.name,
			Description:    r.description,
			Status:         out.Status,
			Score:          out.Score,
			Impact:         r.impact,
			Recommendation: out.Recommendation,
			Details:        out.Details,
			Standards:      r.standards,
		})
	}
	return evals, nil
}

func (e *Engine) resolveSelection(selected []string) (map[string]struct{}, error) {
	if len(selected) == 0 {
		return nil, nil
	}
	known := make(map[string]struct{}, len(e.catalog))
	for _, r := range e.catalog {
		known[r.id] = struct{}{}
	}
	active := make(map[string]struct{}, len(selected))
	for _, id := range selected {
		if _, ok := known[id]; !ok {
			return nil, models.NewAuditError(models.ErrCodeValidation,
				"unknown assessment id: "+id, nil)
		}
		active[id] = struct{}{}
	}
	return active, nil
}

func (e *Engine) evaluate(r rule, snap *models.StructuralSnapshot, ci *models.CanonicalIngredients) (out Outcome, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = models.NewAuditError(models.ErrCodeAssessment,
				fmt.Sprintf("rule %s failed: %v", r.id, rec), nil)
		}
	}()
	out = r.check(snap, ci, e.cfg)
	return out, nil
}

// noKeywordOutcome is the shared result for keyword-dependent rules when the
// caller supplied no focus keyword: never BAD, always a neutral OK.
func noKeywordOutcome() Outcome {
	return Outcome{
		Status:         models.StatusOK,
		Score:          75,
		Recommendation: "No focus keyword provided; set one to enable this check.",
		Details:        models.Details{"reason": "no keyword provided"},
	}
}
