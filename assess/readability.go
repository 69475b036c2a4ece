package assess

import (
	"fmt"
	"math"

	"github.com/yangnim21029/pagelens/models"
	"github.com/yangnim21029/pagelens/textmetrics"
)

func readabilityRules(cfg Config) []rule {
	return []rule{
		{
			id:          RuleFleschReadingEase,
			category:    models.CategoryReadability,
			name:        "Flesch reading ease",
			description: "English prose should score at least 60 on the Flesch reading-ease scale.",
			impact:      models.ImpactMedium,
			standards: &models.Standards{
				Optimal:     fmt.Sprintf("≥%.0f", cfg.FleschGood),
				Acceptable:  fmt.Sprintf("≥%.0f", cfg.FleschOK),
				Description: "206.835 − 1.015·(words/sentence) − 84.6·(syllables/word); CJK characters count one syllable each.",
			},
			check: checkFleschReadingEase,
		},
		{
			id:          RuleParagraphLengthLong,
			category:    models.CategoryReadability,
			name:        "Paragraph length",
			description: "Paragraphs should stay under 150 characters.",
			impact:      models.ImpactLow,
			standards: &models.Standards{
				Optimal:     fmt.Sprintf("≤%d characters", cfg.LongParagraphChars),
				Description: "Character count per paragraph.",
			},
			check: checkParagraphLength,
		},
		{
			id:          RuleSentenceLengthLong,
			category:    models.CategoryReadability,
			name:        "Sentence length",
			description: "Sentences should stay under 20 words, or 30 characters for Chinese text.",
			impact:      models.ImpactMedium,
			standards: &models.Standards{
				Optimal:     fmt.Sprintf("≤%d words (≤%d chars for Chinese)", cfg.LongSentenceWords, cfg.LongSentenceCJKChars),
				Description: "Share of sentences over the threshold.",
			},
			check: checkSentenceLength,
		},
		{
			id:          RuleSubheadingDistribution,
			category:    models.CategoryReadability,
			name:        "Subheading distribution",
			description: "Long content should break into sections of at most 300 words per subheading.",
			impact:      models.ImpactMedium,
			standards: &models.Standards{
				Optimal:     fmt.Sprintf("≤%d words per subheading", cfg.WordsPerSubheadingGood),
				Acceptable:  fmt.Sprintf("≤%d words per subheading", cfg.WordsPerSubheadingMax),
				Description: "Word count divided by the number of H2-H6 subheadings.",
			},
			check: checkSubheadingDistribution,
		},
	}
}

func checkFleschReadingEase(s *models.StructuralSnapshot, _ *models.CanonicalIngredients, cfg Config) Outcome {
	if s.TextStats.CharCount < cfg.MinContentChars {
		return Outcome{
			Status:         models.StatusOK,
			Score:          80,
			Recommendation: "Too little text to score readability.",
			Details:        models.Details{"reason": "insufficient content", "char_count": s.TextStats.CharCount},
		}
	}

	words := s.WordCount
	sentences := s.TextStats.SentenceCount
	if words == 0 || sentences == 0 {
		return Outcome{
			Status:         models.StatusOK,
			Score:          80,
			Recommendation: "Too little text to score readability.",
			Details:        models.Details{"reason": "insufficient content"},
		}
	}

	syllables := textmetrics.TotalSyllables(s.TextContent)
	flesch := 206.835 -
		1.015*(float64(words)/float64(sentences)) -
		84.6*(float64(syllables)/float64(words))

	score := int(math.Round(math.Min(100, math.Max(0, flesch))))
	details := models.Details{
		"flesch_score":       math.Round(flesch*10) / 10,
		"words_per_sentence": math.Round(float64(words)/float64(sentences)*10) / 10,
		"syllables_per_word": math.Round(float64(syllables)/float64(words)*100) / 100,
	}

	switch {
	case flesch >= cfg.FleschGood:
		return Outcome{
			Status:         models.StatusGood,
			Score:          score,
			Recommendation: "The text reads easily.",
			Details:        details,
		}
	case flesch >= cfg.FleschOK:
		return Outcome{
			Status:         models.StatusOK,
			Score:          score,
			Recommendation: "The text is fairly hard to read; shorten sentences and prefer simpler words.",
			Details:        details,
		}
	default:
		return Outcome{
			Status:         models.StatusBad,
			Score:          score,
			Recommendation: "The text is very hard to read; break up long sentences and replace complex words.",
			Details:        details,
		}
	}
}

func checkParagraphLength(s *models.StructuralSnapshot, _ *models.CanonicalIngredients, cfg Config) Outcome {
	total := len(s.Paragraphs)
	if total == 0 {
		return Outcome{
			Status:         models.StatusGood,
			Score:          100,
			Recommendation: "No paragraphs to check.",
			Details:        models.Details{"paragraph_count": 0},
		}
	}

	long := 0
	for _, p := range s.Paragraphs {
		if len([]rune(p)) > cfg.LongParagraphChars {
			long++
		}
	}

	return longUnitsOutcome(long, total, models.Details{
		"paragraph_count": total,
		"long_paragraphs": long,
	},
		"Paragraphs are a comfortable length.",
		fmt.Sprintf("Split the paragraphs over %d characters.", cfg.LongParagraphChars))
}

func checkSentenceLength(s *models.StructuralSnapshot, _ *models.CanonicalIngredients, cfg Config) Outcome {
	sentences := textmetrics.SplitSentences(s.TextContent)
	total := len(sentences)
	if total == 0 {
		return Outcome{
			Status:         models.StatusGood,
			Score:          100,
			Recommendation: "No sentences to check.",
			Details:        models.Details{"sentence_count": 0},
		}
	}

	long := 0
	for _, sent := range sentences {
		if isLongSentence(sent, cfg) {
			long++
		}
	}

	return longUnitsOutcome(long, total, models.Details{
		"sentence_count": total,
		"long_sentences": long,
	},
		"Sentences are a comfortable length.",
		fmt.Sprintf("Break up the sentences over %d words.", cfg.LongSentenceWords))
}

// isLongSentence applies a character threshold to Chinese-dominant sentences
// and a word threshold to everything else.
func isLongSentence(sent string, cfg Config) bool {
	if textmetrics.ChineseRatio(sent) > 0.7 {
		chars := 0
		for _, r := range sent {
			if r != ' ' && r != '\t' && r != '\n' {
				chars++
			}
		}
		return chars > cfg.LongSentenceCJKChars
	}
	return textmetrics.CountWords(sent) > cfg.LongSentenceWords
}

func checkSubheadingDistribution(s *models.StructuralSnapshot, _ *models.CanonicalIngredients, cfg Config) Outcome {
	subheadings := 0
	for _, h := range s.Headings {
		if h.Level >= 2 {
			subheadings++
		}
	}

	details := models.Details{
		"word_count":  s.WordCount,
		"subheadings": subheadings,
	}

	if s.WordCount < cfg.MinWordCount {
		return Outcome{
			Status:         models.StatusGood,
			Score:          100,
			Recommendation: "The content is short enough to stand without subheadings.",
			Details:        details,
		}
	}
	if subheadings == 0 {
		return Outcome{
			Status:         models.StatusBad,
			Score:          0,
			Recommendation: "Break the content into sections with H2 subheadings.",
			Details:        details,
		}
	}

	wph := float64(s.WordCount) / float64(subheadings)
	details["words_per_subheading"] = int(math.Round(wph))

	if wph <= float64(cfg.WordsPerSubheadingGood) {
		return Outcome{
			Status:         models.StatusGood,
			Score:          100,
			Recommendation: "Subheadings are well distributed.",
			Details:        details,
		}
	}

	score := int(math.Round(100 - (wph-float64(cfg.WordsPerSubheadingGood))/6))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	if wph <= float64(cfg.WordsPerSubheadingMax) {
		return Outcome{
			Status:         models.StatusOK,
			Score:          score,
			Recommendation: "Add a few more subheadings to tighten the sections.",
			Details:        details,
		}
	}
	return Outcome{
		Status:         models.StatusBad,
		Score:          score,
		Recommendation: fmt.Sprintf("Sections run over %d words; add subheadings to break them up.", cfg.WordsPerSubheadingMax),
		Details:        details,
	}
}

// longUnitsOutcome grades a ratio of over-threshold units: none long is GOOD,
// over half long is BAD, anything between is OK, with the score tracking the
// share of comfortable units.
func longUnitsOutcome(long, total int, details models.Details, goodRec, fixRec string) Outcome {
	if long == 0 {
		return Outcome{
			Status:         models.StatusGood,
			Score:          100,
			Recommendation: goodRec,
			Details:        details,
		}
	}

	p := float64(long) / float64(total)
	score := int(math.Round(100 * (1 - p)))
	status := models.StatusOK
	if p > 0.5 {
		status = models.StatusBad
	}
	return Outcome{
		Status:         status,
		Score:          score,
		Recommendation: fixRec,
		Details:        details,
	}
}
