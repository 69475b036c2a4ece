package textmetrics

import "strings"

// ContainsAllCharacters reports whether every individual character of needle
// (lower-cased) appears somewhere in haystack (lower-cased). Contiguity is
// deliberately not required: CJK keywords are scored by character overlap
// rather than exact phrase match, so "hello world" contains "low". The
// false-positive potential for short, generic needles is accepted as part of
// the matcher's contract. An empty needle never matches.
func ContainsAllCharacters(haystack, needle string) bool {
	needle = strings.TrimSpace(strings.ToLower(needle))
	if needle == "" {
		return false
	}
	haystack = strings.ToLower(haystack)

	present := make(map[rune]struct{})
	for _, r := range haystack {
		present[r] = struct{}{}
	}

	for _, r := range needle {
		if _, ok := present[r]; !ok {
			return false
		}
	}
	return true
}

// FirstMatchingKeyword returns the first keyword (in list order) whose
// characters are all contained in text, and whether one matched. Ties break
// by list order.
func FirstMatchingKeyword(text string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if ContainsAllCharacters(text, kw) {
			return kw, true
		}
	}
	return "", false
}
