// Package report projects rule evaluations into the public audit report:
// detailed issues, the summary, and an optional markdown rendering.
package report

import (
	"sort"
	"time"

	"github.com/yangnim21029/pagelens/models"
)

const summaryHighlightCap = 3

// Format assembles the final report from the evaluations and the aggregate
// scores. Issue order follows evaluation order; only the summary highlights
// are re-sorted.
func Format(url string, evals []models.Evaluation, scores models.OverallScores, now time.Time) (*models.ScoredReport, error) {
	if url == "" {
		return nil, models.NewAuditError(models.ErrCodeFormat, "report url is empty", nil)
	}

	issues := make([]models.DetailedIssue, len(evals))
	for i, ev := range evals {
		issues[i] = toIssue(ev)
	}

	return &models.ScoredReport{
		URL:            url,
		Timestamp:      now.UTC().Format(time.RFC3339),
		OverallScores:  scores,
		DetailedIssues: issues,
		Summary:        summarize(evals, issues),
	}, nil
}

func toIssue(ev models.Evaluation) models.DetailedIssue {
	return models.DetailedIssue{
		ID:             ev.ID,
		Name:           ev.Name,
		Description:    ev.Description,
		Rating:         ratingFor(ev.Status),
		Recommendation: ev.Recommendation,
		Impact:         ev.Impact,
		Score:          ev.Score,
		Details:        ev.Details,
		Standards:      ev.Standards,
	}
}

func ratingFor(s models.Status) models.Rating {
	switch s {
	case models.StatusGood:
		return models.RatingGood
	case models.StatusOK:
		return models.RatingOK
	default:
		return models.RatingBad
	}
}

func summarize(evals []models.Evaluation, issues []models.DetailedIssue) models.Summary {
	sum := models.Summary{
		TotalIssues:    len(issues),
		CriticalIssues: []models.DetailedIssue{},
		QuickWins:      []models.DetailedIssue{},
	}

	for i, ev := range evals {
		switch ev.Status {
		case models.StatusGood:
			sum.GoodIssues++
		case models.StatusOK:
			sum.OKIssues++
			if ev.Impact == models.ImpactHigh {
				sum.QuickWins = append(sum.QuickWins, issues[i])
			}
		case models.StatusBad:
			sum.BadIssues++
			if ev.Impact == models.ImpactHigh {
				sum.CriticalIssues = append(sum.CriticalIssues, issues[i])
			}
		}
	}

	sum.CriticalIssues = topByScore(sum.CriticalIssues)
	sum.QuickWins = topByScore(sum.QuickWins)
	return sum
}

// topByScore sorts descending by score (stable, so catalog order breaks
// ties) and keeps the leading entries.
func topByScore(issues []models.DetailedIssue) []models.DetailedIssue {
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Score > issues[j].Score
	})
	if len(issues) > summaryHighlightCap {
		issues = issues[:summaryHighlightCap]
	}
	return issues
}
