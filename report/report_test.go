package report

import (
	"strings"
	"testing"
	"time"

	"github.com/yangnim21029/pagelens/models"
)

var testTime = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func ev(id string, status models.Status, impact models.Impact, score int) models.Evaluation {
	return models.Evaluation{
		ID:       id,
		Name:     id,
		Category: models.CategorySEO,
		Status:   status,
		Impact:   impact,
		Score:    score,
	}
}

func TestFormatBasics(t *testing.T) {
	evals := []models.Evaluation{
		ev("A", models.StatusGood, models.ImpactHigh, 100),
		ev("B", models.StatusOK, models.ImpactMedium, 70),
		ev("C", models.StatusBad, models.ImpactLow, 20),
	}

	r, err := Format("https://example.com/post", evals, models.OverallScores{}, testTime)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if r.URL != "https://example.com/post" {
		t.Errorf("URL = %s", r.URL)
	}
	if r.Timestamp != "2026-03-14T12:00:00Z" {
		t.Errorf("Timestamp = %s", r.Timestamp)
	}
	if len(r.DetailedIssues) != 3 {
		t.Fatalf("got %d issues, want 3", len(r.DetailedIssues))
	}

	ratings := []models.Rating{models.RatingGood, models.RatingOK, models.RatingBad}
	for i, want := range ratings {
		if r.DetailedIssues[i].Rating != want {
			t.Errorf("issue %d rating = %s, want %s", i, r.DetailedIssues[i].Rating, want)
		}
	}

	s := r.Summary
	if s.TotalIssues != 3 || s.GoodIssues != 1 || s.OKIssues != 1 || s.BadIssues != 1 {
		t.Errorf("summary counts = %+v", s)
	}
}

func TestFormatEmptyURL(t *testing.T) {
	_, err := Format("", nil, models.OverallScores{}, testTime)
	if err == nil {
		t.Fatal("expected error for empty url")
	}
}

func TestSummaryHighlights(t *testing.T) {
	evals := []models.Evaluation{
		ev("BAD_HIGH_1", models.StatusBad, models.ImpactHigh, 10),
		ev("BAD_HIGH_2", models.StatusBad, models.ImpactHigh, 40),
		ev("BAD_HIGH_3", models.StatusBad, models.ImpactHigh, 30),
		ev("BAD_HIGH_4", models.StatusBad, models.ImpactHigh, 20),
		ev("BAD_MEDIUM", models.StatusBad, models.ImpactMedium, 5),
		ev("OK_HIGH", models.StatusOK, models.ImpactHigh, 75),
		ev("OK_MEDIUM", models.StatusOK, models.ImpactMedium, 75),
	}

	r, err := Format("https://example.com", evals, models.OverallScores{}, testTime)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}

	crit := r.Summary.CriticalIssues
	if len(crit) != 3 {
		t.Fatalf("got %d critical issues, want 3", len(crit))
	}
	wantOrder := []string{"BAD_HIGH_2", "BAD_HIGH_3", "BAD_HIGH_4"}
	for i, want := range wantOrder {
		if crit[i].ID != want {
			t.Errorf("critical[%d] = %s, want %s", i, crit[i].ID, want)
		}
	}

	wins := r.Summary.QuickWins
	if len(wins) != 1 || wins[0].ID != "OK_HIGH" {
		t.Errorf("quick wins = %+v, want only OK_HIGH", wins)
	}
}

func TestMarkdownRendering(t *testing.T) {
	evals := []models.Evaluation{
		ev("TITLE_CHECK", models.StatusBad, models.ImpactHigh, 0),
	}
	evals[0].Recommendation = "Fix the title."

	r, err := Format("https://example.com", evals, models.OverallScores{
		SEOScore: 40, ReadabilityScore: 90, OverallScore: 60,
		SEOGrade: models.GradePoor, ReadabilityGrade: models.GradeExcellent,
		OverallGrade: models.GradeNeedsImprovement,
	}, testTime)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}

	md := Markdown(r)
	for _, want := range []string{
		"# Audit Report: https://example.com",
		"| SEO | 40 | POOR |",
		"### Critical issues",
		"Fix the title.",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}
