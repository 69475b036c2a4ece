// Package textmetrics implements the language-aware text measurements the
// audit pipeline is built on: word and sentence counting that treats mixed
// Chinese/English text correctly, rendered pixel-width estimation, syllable
// estimation, and character-level keyword containment.
//
// Every word count in the repository goes through CountWords. Keyword
// density and words-per-heading are percentages; they are only meaningful
// when numerator and denominator use the same unit.
package textmetrics

import (
	"regexp"
	"strings"
	"unicode"
)

// Branch thresholds for the mixed-language word counter.
const (
	chineseDominantRatio = 0.7
	latinDominantRatio   = 0.1
)

var englishTokenRe = regexp.MustCompile(`[a-zA-Z]+`)

// IsCJK reports whether the rune is a Chinese ideograph.
func IsCJK(r rune) bool {
	return unicode.Is(unicode.Han, r)
}

// ChineseCharCount returns the number of Chinese ideographs in text.
func ChineseCharCount(text string) int {
	n := 0
	for _, r := range text {
		if IsCJK(r) {
			n++
		}
	}
	return n
}

// EnglishTokens returns the [a-zA-Z]+ runs in text, in order.
func EnglishTokens(text string) []string {
	return englishTokenRe.FindAllString(text, -1)
}

// nonSpaceCount returns the number of non-whitespace runes in text.
func nonSpaceCount(text string) int {
	n := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

// ChineseRatio returns the fraction of non-whitespace characters that are
// Chinese ideographs. Returns 0 for whitespace-only input.
func ChineseRatio(text string) float64 {
	total := nonSpaceCount(text)
	if total == 0 {
		return 0
	}
	return float64(ChineseCharCount(text)) / float64(total)
}

// CountWords returns the language-aware word count:
//
//	Chinese-dominant (>70% ideographs): ideographs + English tokens
//	Latin-dominant  (<10% ideographs): whitespace-delimited tokens
//	mixed:                             ideographs + English tokens
func CountWords(text string) int {
	total := nonSpaceCount(text)
	if total == 0 {
		return 0
	}

	chinese := ChineseCharCount(text)
	ratio := float64(chinese) / float64(total)

	if ratio < latinDominantRatio {
		return len(strings.Fields(text))
	}
	return chinese + len(EnglishTokens(text))
}

// sentenceTerminators covers Western and CJK full-stop punctuation.
var sentenceTerminators = map[rune]struct{}{
	'.': {}, '!': {}, '?': {},
	'。': {}, '！': {}, '？': {},
}

// SplitSentences splits text on Western (.!?) and CJK (。！？) terminators
// and returns the trimmed, non-empty sentences.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	for _, r := range text {
		if _, terminal := sentenceTerminators[r]; terminal {
			flush()
			continue
		}
		current.WriteRune(r)
	}
	flush()

	return sentences
}

// CountSentences returns the number of sentences in text.
func CountSentences(text string) int {
	return len(SplitSentences(text))
}

var blankLineRe = regexp.MustCompile(`\n\s*\n`)

// SplitParagraphs splits text on blank lines and returns the trimmed,
// non-empty paragraphs.
func SplitParagraphs(text string) []string {
	var paragraphs []string
	for _, block := range blankLineRe.Split(text, -1) {
		if p := strings.TrimSpace(block); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}
