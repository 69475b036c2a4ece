package textmetrics

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	trailingSilentRe = regexp.MustCompile(`([^aeiouy])(?:ed|es|e)$`)
	vowelClusterRe   = regexp.MustCompile(`[aeiouy]{1,2}`)
)

// Syllables estimates the syllable count of a single English word. Words of
// three letters or fewer count as one; a trailing silent e/ed/es after a
// consonant is stripped, as is a leading y; what remains is counted in
// vowel clusters of one or two, minimum one.
func Syllables(word string) int {
	w := strings.ToLower(strings.TrimSpace(word))
	if utf8.RuneCountInString(w) <= 3 {
		return 1
	}

	w = trailingSilentRe.ReplaceAllString(w, "$1")
	w = strings.TrimPrefix(w, "y")

	n := len(vowelClusterRe.FindAllString(w, -1))
	if n < 1 {
		n = 1
	}
	return n
}

// TotalSyllables estimates the syllable count of a text for Flesch scoring:
// the sum over English tokens, plus one syllable per Chinese ideograph so
// mixed text stays finite.
func TotalSyllables(text string) int {
	total := ChineseCharCount(text)
	for _, token := range EnglishTokens(text) {
		total += Syllables(token)
	}
	return total
}
