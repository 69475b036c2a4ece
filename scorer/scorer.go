// Package scorer aggregates rule evaluations into category and overall
// scores with grade bands.
package scorer

import (
	"math"

	"github.com/yangnim21029/pagelens/models"
)

const (
	seoBlendWeight         = 0.6
	readabilityBlendWeight = 0.4

	gradeExcellentFloor        = 90
	gradeGoodFloor             = 75
	gradeNeedsImprovementFloor = 50
)

// Score computes the impact-weighted category averages and the blended
// overall score. A category with no evaluations scores 0.
func Score(evals []models.Evaluation) models.OverallScores {
	seo := categoryScore(evals, models.CategorySEO)
	readability := categoryScore(evals, models.CategoryReadability)
	overall := int(math.Round(seoBlendWeight*float64(seo) + readabilityBlendWeight*float64(readability)))

	return models.OverallScores{
		SEOScore:         seo,
		ReadabilityScore: readability,
		OverallScore:     overall,
		SEOGrade:         GradeFor(seo),
		ReadabilityGrade: GradeFor(readability),
		OverallGrade:     GradeFor(overall),
	}
}

func categoryScore(evals []models.Evaluation, cat models.Category) int {
	var weighted, weights float64
	for _, ev := range evals {
		if ev.Category != cat {
			continue
		}
		w := ev.Impact.Weight()
		weighted += w * float64(ev.Score)
		weights += w
	}
	if weights == 0 {
		return 0
	}
	return int(math.Round(weighted / weights))
}

// GradeFor maps a 0-100 score to its grade band.
func GradeFor(score int) models.Grade {
	switch {
	case score >= gradeExcellentFloor:
		return models.GradeExcellent
	case score >= gradeGoodFloor:
		return models.GradeGood
	case score >= gradeNeedsImprovementFloor:
		return models.GradeNeedsImprovement
	default:
		return models.GradePoor
	}
}
