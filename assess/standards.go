package assess

// Config holds the numeric standards every threshold-based rule is judged
// against. It is an immutable value injected at engine construction, never
// mutable package state.
type Config struct {
	// Title pixel-width band.
	TitleWidthMin int
	TitleWidthMax int

	// Meta-description pixel-width band.
	MetaWidthMin int
	MetaWidthMax int

	// Keyword density floor over the leading text window. There is no
	// ceiling: any density at or above the floor is good.
	DensityFloorPercent float64

	// DensityWindow is the number of leading characters the density
	// numerator and the first-paragraph keyword check look at.
	DensityWindow int

	// Minimum word count before content counts as substantial.
	MinWordCount int

	// Characters above which a paragraph counts as long.
	LongParagraphChars int

	// Words above which a sentence counts as long; CJK-dominant sentences
	// use a character threshold instead.
	LongSentenceWords    int
	LongSentenceCJKChars int

	// Flesch reading-ease status bands and the minimum content size worth
	// scoring at all.
	FleschGood      float64
	FleschOK        float64
	MinContentChars int

	// Words-per-subheading band for heading distribution.
	WordsPerSubheadingGood int
	WordsPerSubheadingMax  int
}

// DefaultConfig returns the standard rule thresholds.
func DefaultConfig() Config {
	return Config{
		TitleWidthMin:          150,
		TitleWidthMax:          600,
		MetaWidthMin:           600,
		MetaWidthMax:           960,
		DensityFloorPercent:    12,
		DensityWindow:          100,
		MinWordCount:           300,
		LongParagraphChars:     150,
		LongSentenceWords:      20,
		LongSentenceCJKChars:   30,
		FleschGood:             60,
		FleschOK:               30,
		MinContentChars:        100,
		WordsPerSubheadingGood: 300,
		WordsPerSubheadingMax:  600,
	}
}
