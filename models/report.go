package models

// Grade is the letter-grade band applied to the category and overall scores.
type Grade string

const (
	GradeExcellent        Grade = "EXCELLENT"
	GradeGood             Grade = "GOOD"
	GradeNeedsImprovement Grade = "NEEDS_IMPROVEMENT"
	GradePoor             Grade = "POOR"
)

// Rating is the public three-valued rating exposed on detailed issues. It is
// an identity mapping from Status today, kept as a separate seam so the
// public vocabulary can diverge without touching the rule engine.
type Rating string

const (
	RatingGood Rating = "good"
	RatingOK   Rating = "ok"
	RatingBad  Rating = "bad"
)

// OverallScores aggregates the category and blended scores with their grades.
type OverallScores struct {
	SEOScore         int   `json:"seo_score"`
	ReadabilityScore int   `json:"readability_score"`
	OverallScore     int   `json:"overall_score"`
	SEOGrade         Grade `json:"seo_grade"`
	ReadabilityGrade Grade `json:"readability_grade"`
	OverallGrade     Grade `json:"overall_grade"`
}

// DetailedIssue is the public projection of one Evaluation.
type DetailedIssue struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Rating         Rating     `json:"rating"`
	Recommendation string     `json:"recommendation"`
	Impact         Impact     `json:"impact"`
	Score          int        `json:"score"`
	Details        Details    `json:"details,omitempty"`
	Standards      *Standards `json:"standards,omitempty"`
}

// Summary condenses the issue list: counts by rating plus the top-3 critical
// issues (bad + high impact) and top-3 quick wins (ok + high impact), both
// sorted by score descending.
type Summary struct {
	TotalIssues    int             `json:"total_issues"`
	GoodIssues     int             `json:"good_issues"`
	OKIssues       int             `json:"ok_issues"`
	BadIssues      int             `json:"bad_issues"`
	CriticalIssues []DetailedIssue `json:"critical_issues"`
	QuickWins      []DetailedIssue `json:"quick_wins"`
}

// PageUnderstanding is a display-oriented projection of the structural
// snapshot. It reuses the counts the extractor already computed; it is not a
// second computation path.
type PageUnderstanding struct {
	H1Count             int     `json:"h1_count"`
	H2Count             int     `json:"h2_count"`
	H3Count             int     `json:"h3_count"`
	ImageCount          int     `json:"image_count"`
	VideoCount          int     `json:"video_count"`
	InternalLinkCount   int     `json:"internal_link_count"`
	ExternalLinkCount   int     `json:"external_link_count"`
	ParagraphCount      int     `json:"paragraph_count"`
	WordCount           int     `json:"word_count"`
	AvgWordsPerSentence float64 `json:"avg_words_per_sentence"`
	ReadingTimeMinutes  int     `json:"reading_time_minutes"`
}

// ScoredReport is the final audit result returned to callers. Built once per
// request and not mutated afterwards.
type ScoredReport struct {
	URL            string          `json:"url"`
	Timestamp      string          `json:"timestamp"` // RFC 3339
	OverallScores  OverallScores   `json:"overall_scores"`
	DetailedIssues []DetailedIssue `json:"detailed_issues"`
	Summary        Summary         `json:"summary"`
}
