package report

import (
	"fmt"
	"strings"

	"github.com/yangnim21029/pagelens/models"
)

// Markdown renders a report as a human-readable markdown document, served
// by the audit endpoints when the caller asks for ?format=markdown.
func Markdown(r *models.ScoredReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Audit Report: %s\n\n", r.URL)
	fmt.Fprintf(&b, "Generated %s\n\n", r.Timestamp)

	b.WriteString("## Scores\n\n")
	fmt.Fprintf(&b, "| Category | Score | Grade |\n|---|---|---|\n")
	fmt.Fprintf(&b, "| SEO | %d | %s |\n", r.OverallScores.SEOScore, r.OverallScores.SEOGrade)
	fmt.Fprintf(&b, "| Readability | %d | %s |\n", r.OverallScores.ReadabilityScore, r.OverallScores.ReadabilityGrade)
	fmt.Fprintf(&b, "| Overall | %d | %s |\n\n", r.OverallScores.OverallScore, r.OverallScores.OverallGrade)

	fmt.Fprintf(&b, "## Summary\n\n%d checks: %d good, %d ok, %d bad.\n\n",
		r.Summary.TotalIssues, r.Summary.GoodIssues, r.Summary.OKIssues, r.Summary.BadIssues)

	writeHighlights(&b, "Critical issues", r.Summary.CriticalIssues)
	writeHighlights(&b, "Quick wins", r.Summary.QuickWins)

	b.WriteString("## All checks\n\n")
	for _, issue := range r.DetailedIssues {
		fmt.Fprintf(&b, "- **%s** [%s, %d] %s\n", issue.Name, strings.ToUpper(string(issue.Rating)), issue.Score, issue.Recommendation)
	}

	return b.String()
}

func writeHighlights(b *strings.Builder, title string, issues []models.DetailedIssue) {
	if len(issues) == 0 {
		return
	}
	fmt.Fprintf(b, "### %s\n\n", title)
	for _, issue := range issues {
		fmt.Fprintf(b, "- %s: %s\n", issue.Name, issue.Recommendation)
	}
	b.WriteString("\n")
}
