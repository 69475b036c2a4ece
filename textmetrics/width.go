package textmetrics

import (
	"math"
	"unicode"
)

// Per-character rendered-width weights in pixels. A CJK glyph is visually
// close to three Latin letters wide, so judging title and meta-description
// length by character count misreads Chinese pages; pixel width is the
// script-fair unit. Punctuation carries no width.
const (
	widthCJK        = 14
	widthDigit      = 8
	widthLatin      = 5
	widthWhitespace = 5
)

// PixelWidth estimates the rendered width of text in pixels. Width is
// additive over characters and every weight is non-negative, so appending a
// character never decreases the result.
func PixelWidth(text string) int {
	width := 0
	for _, r := range text {
		switch {
		case IsCJK(r):
			width += widthCJK
		case unicode.IsDigit(r):
			width += widthDigit
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			width += widthLatin
		case unicode.IsSpace(r):
			width += widthWhitespace
		}
	}
	return width
}

// CharEquivalent converts a pixel width into an approximate CJK character
// count for human display.
func CharEquivalent(width int) int {
	return int(math.Round(float64(width) / float64(widthCJK)))
}
