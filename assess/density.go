package assess

import (
	"regexp"
	"strings"
	"sync"

	"github.com/yangnim21029/pagelens/textmetrics"
)

var (
	tokenPatternMu sync.Mutex
	tokenPatterns  = map[string]*regexp.Regexp{}
)

// keywordDensity measures what share of the leading window is covered by
// keyword material. Every keyword decomposes into units, a single Chinese
// character or a whole Latin token, and the units of all keywords are
// deduplicated before counting so overlapping keywords never double-bill a
// character. A Chinese unit contributes one character per occurrence; a
// Latin unit contributes its length per word-boundary occurrence.
func keywordDensity(window string, keywords []string, windowSize int) (matchedChars int, densityPercent float64) {
	if windowSize <= 0 {
		return 0, 0
	}

	loweredWindow := strings.ToLower(window)
	seen := map[string]struct{}{}

	for _, kw := range keywords {
		for _, unit := range keywordUnits(kw) {
			if _, dup := seen[unit.key]; dup {
				continue
			}
			seen[unit.key] = struct{}{}
			matchedChars += unit.countIn(loweredWindow)
		}
	}

	densityPercent = float64(matchedChars) / float64(windowSize) * 100
	return matchedChars, densityPercent
}

type densityUnit struct {
	key     string
	char    string
	token   string
	isLatin bool
}

func (u densityUnit) countIn(loweredWindow string) int {
	if u.isLatin {
		occurrences := len(tokenPattern(u.token).FindAllStringIndex(loweredWindow, -1))
		return occurrences * len([]rune(u.token))
	}
	return strings.Count(loweredWindow, u.char)
}

// keywordUnits splits a keyword into deduplicatable units: each Chinese
// character stands alone, each Latin token stays whole.
func keywordUnits(keyword string) []densityUnit {
	lowered := strings.ToLower(strings.TrimSpace(keyword))
	if lowered == "" {
		return nil
	}

	var units []densityUnit
	for _, r := range lowered {
		if textmetrics.IsCJK(r) {
			units = append(units, densityUnit{
				key:  "c:" + string(r),
				char: string(r),
			})
		}
	}
	for _, tok := range textmetrics.EnglishTokens(lowered) {
		units = append(units, densityUnit{
			key:     "e:" + tok,
			token:   tok,
			isLatin: true,
		})
	}
	return units
}

// tokenPattern returns a cached word-boundary matcher for a lowered token.
func tokenPattern(token string) *regexp.Regexp {
	tokenPatternMu.Lock()
	defer tokenPatternMu.Unlock()
	if re, ok := tokenPatterns[token]; ok {
		return re
	}
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(token) + `\b`)
	tokenPatterns[token] = re
	return re
}
