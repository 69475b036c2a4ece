package assess

import (
	"fmt"
	"math"
	"strings"

	"github.com/yangnim21029/pagelens/models"
	"github.com/yangnim21029/pagelens/textmetrics"
)

func seoRules(cfg Config) []rule {
	return []rule{
		{
			id:          RuleH1Missing,
			category:    models.CategorySEO,
			name:        "H1 heading present",
			description: "The page should carry at least one H1 heading.",
			impact:      models.ImpactHigh,
			check:       checkH1Missing,
		},
		{
			id:          RuleMultipleH1,
			category:    models.CategorySEO,
			name:        "Single H1 heading",
			description: "The page should carry exactly one H1 heading.",
			impact:      models.ImpactMedium,
			check:       checkMultipleH1,
		},
		{
			id:          RuleH1KeywordMissing,
			category:    models.CategorySEO,
			name:        "Keyword in H1",
			description: "The first H1 should carry the focus keyword and a related keyword.",
			impact:      models.ImpactHigh,
			check:       checkH1Keyword,
		},
		{
			id:          RuleH2SynonymsMissing,
			category:    models.CategorySEO,
			name:        "Related keywords in H2 headings",
			description: "H2 headings should cover the related keywords.",
			impact:      models.ImpactMedium,
			check:       checkH2Synonyms,
		},
		{
			id:          RuleImagesMissingAlt,
			category:    models.CategorySEO,
			name:        "Image alt text",
			description: "Every image should carry alt text.",
			impact:      models.ImpactMedium,
			check:       checkImagesAlt,
		},
		{
			id:          RuleKeywordMissingFirstP,
			category:    models.CategorySEO,
			name:        "Keyword in opening text",
			description: "A keyword should appear within the first 100 characters of the body text.",
			impact:      models.ImpactHigh,
			check:       checkKeywordFirstParagraph,
		},
		{
			id:          RuleKeywordDensityLow,
			category:    models.CategorySEO,
			name:        "Keyword density in opening text",
			description: "Keyword characters should make up at least 12% of the first 100 characters.",
			impact:      models.ImpactHigh,
			standards: &models.Standards{
				Optimal:     fmt.Sprintf("≥%.0f%%", cfg.DensityFloorPercent),
				Description: fmt.Sprintf("Keyword character share of the first %d characters; no upper bound is enforced.", cfg.DensityWindow),
			},
			check: checkKeywordDensity,
		},
		{
			id:          RuleMetaDescriptionNeeds,
			category:    models.CategorySEO,
			name:        "Keyword in meta description",
			description: "The meta description should carry the focus keyword.",
			impact:      models.ImpactMedium,
			check:       checkMetaDescriptionKeyword,
		},
		{
			id:          RuleMetaDescriptionWidth,
			category:    models.CategorySEO,
			name:        "Meta description length",
			description: "The meta description should render between 600 and 960 pixels wide.",
			impact:      models.ImpactHigh,
			standards: &models.Standards{
				Optimal:     fmt.Sprintf("%d-%dpx", cfg.MetaWidthMin, cfg.MetaWidthMax),
				Acceptable:  "non-empty",
				Description: "Estimated rendered width; CJK glyphs count 14px, Latin letters 5px.",
			},
			check: checkMetaDescriptionWidth,
		},
		{
			id:          RuleTitleNeedsImprovement,
			category:    models.CategorySEO,
			name:        "Title length",
			description: "The title should render between 150 and 600 pixels wide.",
			impact:      models.ImpactMedium,
			standards: &models.Standards{
				Optimal:     fmt.Sprintf("%d-%dpx", cfg.TitleWidthMin, cfg.TitleWidthMax),
				Acceptable:  fmt.Sprintf("<%dpx", cfg.TitleWidthMin),
				Description: "Estimated rendered width; titles above the ceiling get truncated in search results.",
			},
			check: checkTitleWidth,
		},
		{
			id:          RuleTitleKeywordMissing,
			category:    models.CategorySEO,
			name:        "Keyword in title",
			description: "The title should carry the focus keyword and a related keyword.",
			impact:      models.ImpactHigh,
			check:       checkTitleKeyword,
		},
		{
			id:          RuleContentLengthShort,
			category:    models.CategorySEO,
			name:        "Content length",
			description: "The page should carry at least 300 words of content.",
			impact:      models.ImpactHigh,
			standards: &models.Standards{
				Optimal:     fmt.Sprintf("≥%d words", cfg.MinWordCount),
				Description: "Language-aware word count of the analyzed scope.",
			},
			check: checkContentLength,
		},
	}
}

func checkH1Missing(s *models.StructuralSnapshot, _ *models.CanonicalIngredients, _ Config) Outcome {
	h1Count := s.CountHeadingsOfLevel(1)
	if h1Count >= 1 {
		return Outcome{
			Status:         models.StatusGood,
			Score:          100,
			Recommendation: "The page carries an H1 heading.",
			Details:        models.Details{"h1_count": h1Count},
		}
	}
	return Outcome{
		Status:         models.StatusBad,
		Score:          0,
		Recommendation: "Add an H1 heading that states the page topic.",
		Details:        models.Details{"h1_count": 0},
	}
}

func checkMultipleH1(s *models.StructuralSnapshot, _ *models.CanonicalIngredients, _ Config) Outcome {
	h1Count := s.CountHeadingsOfLevel(1)
	if h1Count == 1 {
		return Outcome{
			Status:         models.StatusGood,
			Score:          100,
			Recommendation: "The page carries exactly one H1 heading.",
			Details:        models.Details{"h1_count": 1},
		}
	}
	rec := "Use exactly one H1 heading; demote the extras to H2."
	if h1Count == 0 {
		rec = "Use exactly one H1 heading."
	}
	return Outcome{
		Status:         models.StatusBad,
		Score:          0,
		Recommendation: rec,
		Details:        models.Details{"h1_count": h1Count},
	}
}

func checkH1Keyword(s *models.StructuralSnapshot, ci *models.CanonicalIngredients, _ Config) Outcome {
	if !ci.HasFocusKeyword() {
		return noKeywordOutcome()
	}

	firstH1 := s.FirstHeadingOfLevel(1)
	h1Text := ""
	if firstH1 != nil {
		h1Text = firstH1.Text
	}

	return keywordPresenceOutcome(h1Text, ci, models.Details{"h1_text": h1Text},
		"first H1")
}

func checkH2Synonyms(s *models.StructuralSnapshot, ci *models.CanonicalIngredients, _ Config) Outcome {
	if len(ci.RelatedKeywords) == 0 {
		return Outcome{
			Status:         models.StatusOK,
			Score:          75,
			Recommendation: "No related keywords provided; add some to enable this check.",
			Details:        models.Details{"reason": "no related keywords provided"},
		}
	}

	h2s := s.HeadingsOfLevel(2)
	if len(h2s) == 0 {
		return Outcome{
			Status:         models.StatusBad,
			Score:          0,
			Recommendation: "Add H2 subheadings that carry the related keywords.",
			Details:        models.Details{"h2_count": 0, "coverage_percent": 0},
		}
	}

	var combined strings.Builder
	for _, h := range h2s {
		combined.WriteString(h.Text)
		combined.WriteByte(' ')
	}
	joined := combined.String()

	matched := []string{}
	for _, kw := range ci.RelatedKeywords {
		if textmetrics.ContainsAllCharacters(joined, kw) {
			matched = append(matched, kw)
		}
	}

	coverage := float64(len(matched)) / float64(len(ci.RelatedKeywords))
	score := int(math.Round(coverage * 100))
	details := models.Details{
		"h2_count":         len(h2s),
		"coverage_percent": score,
		"matched_keywords": matched,
	}

	switch {
	case coverage == 1:
		return Outcome{
			Status:         models.StatusGood,
			Score:          100,
			Recommendation: "H2 headings cover all related keywords.",
			Details:        details,
		}
	case coverage >= 0.5:
		return Outcome{
			Status:         models.StatusOK,
			Score:          score,
			Recommendation: "Work the remaining related keywords into H2 subheadings.",
			Details:        details,
		}
	default:
		return Outcome{
			Status:         models.StatusBad,
			Score:          score,
			Recommendation: "H2 headings cover less than half of the related keywords; restructure the subheadings around them.",
			Details:        details,
		}
	}
}

func checkImagesAlt(s *models.StructuralSnapshot, _ *models.CanonicalIngredients, _ Config) Outcome {
	total := len(s.Images)
	if total == 0 {
		return Outcome{
			Status:         models.StatusGood,
			Score:          100,
			Recommendation: "No images on the page.",
			Details:        models.Details{"image_count": 0},
		}
	}

	withAlt := 0
	var missing []string
	for _, img := range s.Images {
		if strings.TrimSpace(img.Alt) != "" {
			withAlt++
		} else if len(missing) < 5 {
			missing = append(missing, img.Src)
		}
	}

	details := models.Details{
		"image_count":    total,
		"with_alt":       withAlt,
		"missing_sample": missing,
	}

	if withAlt == total {
		return Outcome{
			Status:         models.StatusGood,
			Score:          100,
			Recommendation: "Every image carries alt text.",
			Details:        details,
		}
	}
	return Outcome{
		Status:         models.StatusBad,
		Score:          int(math.Round(float64(withAlt) / float64(total) * 100)),
		Recommendation: fmt.Sprintf("Add alt text to the %d image(s) missing it.", total-withAlt),
		Details:        details,
	}
}

func checkKeywordFirstParagraph(s *models.StructuralSnapshot, ci *models.CanonicalIngredients, cfg Config) Outcome {
	if !ci.HasFocusKeyword() {
		return noKeywordOutcome()
	}

	window := leadingWindow(s.TextContent, cfg.DensityWindow)
	matched, ok := textmetrics.FirstMatchingKeyword(window, ci.AllKeywords())
	if ok {
		return Outcome{
			Status:         models.StatusGood,
			Score:          100,
			Recommendation: "A keyword appears in the opening text.",
			Details:        models.Details{"matched_keyword": matched, "window": window},
		}
	}
	return Outcome{
		Status:         models.StatusBad,
		Score:          0,
		Recommendation: fmt.Sprintf("Open the article with the focus keyword inside the first %d characters.", cfg.DensityWindow),
		Details:        models.Details{"window": window},
	}
}

func checkKeywordDensity(s *models.StructuralSnapshot, ci *models.CanonicalIngredients, cfg Config) Outcome {
	if !ci.HasFocusKeyword() {
		return noKeywordOutcome()
	}

	window := leadingWindow(s.TextContent, cfg.DensityWindow)
	matchedChars, density := keywordDensity(window, ci.AllKeywords(), cfg.DensityWindow)

	details := models.Details{
		"density_percent": math.Round(density*100) / 100,
		"matched_chars":   matchedChars,
		"window_chars":    cfg.DensityWindow,
	}

	if density >= cfg.DensityFloorPercent {
		return Outcome{
			Status:         models.StatusGood,
			Score:          100,
			Recommendation: "Keyword density in the opening text meets the floor.",
			Details:        details,
		}
	}

	score := 40
	if matchedChars == 0 {
		score = 20
	}
	return Outcome{
		Status:         models.StatusBad,
		Score:          score,
		Recommendation: fmt.Sprintf("Raise keyword density in the first %d characters to at least %.0f%%.", cfg.DensityWindow, cfg.DensityFloorPercent),
		Details:        details,
	}
}

func checkMetaDescriptionKeyword(s *models.StructuralSnapshot, ci *models.CanonicalIngredients, _ Config) Outcome {
	if !ci.HasFocusKeyword() {
		return noKeywordOutcome()
	}
	if s.MetaDescription == "" {
		return Outcome{
			Status:         models.StatusBad,
			Score:          0,
			Recommendation: "Write a meta description that carries the focus keyword.",
			Details:        models.Details{"meta_description": ""},
		}
	}

	matched, ok := textmetrics.FirstMatchingKeyword(s.MetaDescription, ci.AllKeywords())
	if ok {
		return Outcome{
			Status:         models.StatusGood,
			Score:          100,
			Recommendation: "The meta description carries a keyword.",
			Details:        models.Details{"matched_keyword": matched},
		}
	}
	return Outcome{
		Status:         models.StatusBad,
		Score:          0,
		Recommendation: "Work the focus keyword into the meta description.",
		Details:        models.Details{"meta_description": s.MetaDescription},
	}
}

func checkMetaDescriptionWidth(s *models.StructuralSnapshot, _ *models.CanonicalIngredients, cfg Config) Outcome {
	width := textmetrics.PixelWidth(s.MetaDescription)
	details := models.Details{
		"pixel_width":     width,
		"char_equivalent": textmetrics.CharEquivalent(width),
	}

	switch {
	case width == 0:
		return Outcome{
			Status:         models.StatusBad,
			Score:          0,
			Recommendation: "Add a meta description; search results fall back to arbitrary page text without one.",
			Details:        details,
		}
	case width >= cfg.MetaWidthMin && width <= cfg.MetaWidthMax:
		return Outcome{
			Status:         models.StatusGood,
			Score:          100,
			Recommendation: "The meta description length is in the optimal range.",
			Details:        details,
		}
	case width < cfg.MetaWidthMin:
		return Outcome{
			Status:         models.StatusOK,
			Score:          60,
			Recommendation: fmt.Sprintf("Lengthen the meta description toward %dpx (~%d characters).", cfg.MetaWidthMin, textmetrics.CharEquivalent(cfg.MetaWidthMin)),
			Details:        details,
		}
	default:
		return Outcome{
			Status:         models.StatusOK,
			Score:          70,
			Recommendation: fmt.Sprintf("Shorten the meta description below %dpx; the tail gets truncated.", cfg.MetaWidthMax),
			Details:        details,
		}
	}
}

func checkTitleWidth(s *models.StructuralSnapshot, _ *models.CanonicalIngredients, cfg Config) Outcome {
	width := textmetrics.PixelWidth(s.Title)
	details := models.Details{
		"pixel_width":     width,
		"char_equivalent": textmetrics.CharEquivalent(width),
		"title":           s.Title,
	}

	switch {
	case width >= cfg.TitleWidthMin && width <= cfg.TitleWidthMax:
		return Outcome{
			Status:         models.StatusGood,
			Score:          100,
			Recommendation: "The title length is in the optimal range.",
			Details:        details,
		}
	case width < cfg.TitleWidthMin:
		return Outcome{
			Status:         models.StatusOK,
			Score:          70,
			Recommendation: fmt.Sprintf("Lengthen the title toward %dpx (~%d characters).", cfg.TitleWidthMin, textmetrics.CharEquivalent(cfg.TitleWidthMin)),
			Details:        details,
		}
	default:
		return Outcome{
			Status:         models.StatusBad,
			Score:          30,
			Recommendation: fmt.Sprintf("Shorten the title below %dpx; search results truncate the rest.", cfg.TitleWidthMax),
			Details:        details,
		}
	}
}

func checkTitleKeyword(s *models.StructuralSnapshot, ci *models.CanonicalIngredients, _ Config) Outcome {
	if !ci.HasFocusKeyword() {
		return noKeywordOutcome()
	}
	return keywordPresenceOutcome(s.Title, ci, models.Details{"title": s.Title}, "title")
}

func checkContentLength(s *models.StructuralSnapshot, _ *models.CanonicalIngredients, cfg Config) Outcome {
	details := models.Details{"word_count": s.WordCount}
	if s.WordCount >= cfg.MinWordCount {
		return Outcome{
			Status:         models.StatusGood,
			Score:          100,
			Recommendation: "The page carries enough content.",
			Details:        details,
		}
	}
	score := int(math.Round(float64(s.WordCount) / float64(cfg.MinWordCount) * 100))
	return Outcome{
		Status:         models.StatusBad,
		Score:          score,
		Recommendation: fmt.Sprintf("Expand the content toward %d words (currently %d).", cfg.MinWordCount, s.WordCount),
		Details:        details,
	}
}

// keywordPresenceOutcome grades a text that should carry both the focus
// keyword and one related keyword: both GOOD, one OK, neither BAD. With no
// related keywords configured the focus keyword alone satisfies the rule.
func keywordPresenceOutcome(text string, ci *models.CanonicalIngredients, details models.Details, where string) Outcome {
	focusIn := textmetrics.ContainsAllCharacters(text, ci.FocusKeyword)
	relatedKw, relatedIn := textmetrics.FirstMatchingKeyword(text, ci.RelatedKeywords)

	details["focus_keyword_present"] = focusIn
	if relatedIn {
		details["matched_related_keyword"] = relatedKw
	}

	relatedRequired := len(ci.RelatedKeywords) > 0
	switch {
	case focusIn && (!relatedRequired || relatedIn):
		return Outcome{
			Status:         models.StatusGood,
			Score:          100,
			Recommendation: fmt.Sprintf("The %s carries the keywords.", where),
			Details:        details,
		}
	case focusIn || relatedIn:
		return Outcome{
			Status:         models.StatusOK,
			Score:          75,
			Recommendation: fmt.Sprintf("The %s carries one keyword; work the other one in as well.", where),
			Details:        details,
		}
	default:
		return Outcome{
			Status:         models.StatusBad,
			Score:          0,
			Recommendation: fmt.Sprintf("Work the focus keyword into the %s.", where),
			Details:        details,
		}
	}
}

// leadingWindow returns the first n characters of text (rune-based).
func leadingWindow(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
