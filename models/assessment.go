package models

// Category separates the two rule sets.
type Category string

const (
	CategorySEO         Category = "SEO"
	CategoryReadability Category = "READABILITY"
)

// Status is the internal three-valued health of one evaluation.
type Status string

const (
	StatusGood Status = "GOOD"
	StatusOK   Status = "OK"
	StatusBad  Status = "BAD"
)

// Impact is the severity multiplier used for score aggregation only.
type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

// Weight returns the aggregation weight for the impact level.
func (i Impact) Weight() float64 {
	switch i {
	case ImpactHigh:
		return 3
	case ImpactMedium:
		return 2
	default:
		return 1
	}
}

// Standards describes the numeric or pixel band a threshold-based rule is
// judged against, for callers that render optimal/acceptable targets.
type Standards struct {
	Optimal     string `json:"optimal"`
	Acceptable  string `json:"acceptable,omitempty"`
	Description string `json:"description,omitempty"`
}

// Details is the rule-specific evidence payload. Each rule fills its own
// keys (matched keyword, pixel width, long-sentence count, ...); no single
// rigid schema is forced across the catalog.
type Details map[string]any

// Evaluation is the outcome of a single catalog rule. Exactly one Evaluation
// per active catalog entry is produced per run.
type Evaluation struct {
	ID             string     `json:"id"` // stable catalog key, public contract
	Category       Category   `json:"category"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Status         Status     `json:"status"`
	Score          int        `json:"score"` // 0–100
	Impact         Impact     `json:"impact"`
	Recommendation string     `json:"recommendation"`
	Details        Details    `json:"details,omitempty"`
	Standards      *Standards `json:"standards,omitempty"`
}
