package scorer

import (
	"testing"

	"github.com/yangnim21029/pagelens/models"
)

func eval(cat models.Category, impact models.Impact, score int) models.Evaluation {
	return models.Evaluation{Category: cat, Impact: impact, Score: score}
}

func TestScoreWeightsByImpact(t *testing.T) {
	// (3*100 + 1*0) / 4 = 75: the high-impact pass dominates the
	// low-impact failure.
	evals := []models.Evaluation{
		eval(models.CategorySEO, models.ImpactHigh, 100),
		eval(models.CategorySEO, models.ImpactLow, 0),
	}
	got := Score(evals)
	if got.SEOScore != 75 {
		t.Errorf("SEOScore = %d, want 75", got.SEOScore)
	}
}

func TestScoreBlendsCategories(t *testing.T) {
	evals := []models.Evaluation{
		eval(models.CategorySEO, models.ImpactMedium, 80),
		eval(models.CategoryReadability, models.ImpactMedium, 50),
	}
	got := Score(evals)
	if got.SEOScore != 80 || got.ReadabilityScore != 50 {
		t.Fatalf("category scores = %d/%d, want 80/50", got.SEOScore, got.ReadabilityScore)
	}
	// 0.6*80 + 0.4*50 = 68.
	if got.OverallScore != 68 {
		t.Errorf("OverallScore = %d, want 68", got.OverallScore)
	}
	if got.OverallGrade != models.GradeNeedsImprovement {
		t.Errorf("OverallGrade = %s, want NEEDS_IMPROVEMENT", got.OverallGrade)
	}
}

func TestScoreEmptyCategory(t *testing.T) {
	evals := []models.Evaluation{
		eval(models.CategorySEO, models.ImpactHigh, 90),
	}
	got := Score(evals)
	if got.ReadabilityScore != 0 {
		t.Errorf("ReadabilityScore = %d, want 0 for empty category", got.ReadabilityScore)
	}
	if got.ReadabilityGrade != models.GradePoor {
		t.Errorf("ReadabilityGrade = %s, want POOR", got.ReadabilityGrade)
	}
	// 0.6*90 + 0.4*0 = 54.
	if got.OverallScore != 54 || got.OverallGrade != models.GradeNeedsImprovement {
		t.Errorf("overall = %d/%s, want 54/NEEDS_IMPROVEMENT", got.OverallScore, got.OverallGrade)
	}
}

func TestGradeFor(t *testing.T) {
	cases := []struct {
		score int
		want  models.Grade
	}{
		{100, models.GradeExcellent},
		{90, models.GradeExcellent},
		{89, models.GradeGood},
		{75, models.GradeGood},
		{74, models.GradeNeedsImprovement},
		{50, models.GradeNeedsImprovement},
		{49, models.GradePoor},
		{0, models.GradePoor},
	}
	for _, c := range cases {
		if got := GradeFor(c.score); got != c.want {
			t.Errorf("GradeFor(%d) = %s, want %s", c.score, got, c.want)
		}
	}
}
