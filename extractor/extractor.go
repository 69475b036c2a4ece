// Package extractor turns raw HTML into the structural snapshot the
// assessment rules consume: title, meta description, headings, images,
// links, videos, paragraphs and the extracted text with its language-aware
// measurements.
//
// Scoping is explicit: when the caller supplies content selectors the first
// one that matches wins, exclude selectors are removed before analysis, and
// with no selectors at all the whole document body is analyzed. There is no
// hidden default selector list.
package extractor

import (
	"math"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/yangnim21029/pagelens/models"
	"github.com/yangnim21029/pagelens/textmetrics"
)

// readingSpeedWPM is the assumed reading speed for the reading-time stat.
const readingSpeedWPM = 200

// Options carries the optional per-call extraction configuration.
type Options struct {
	// ContentSelectors is tried in order; the first selector with a match
	// becomes the analyzed scope. Empty means the whole body.
	ContentSelectors []string

	// ExcludeSelectors are removed from the scope before analysis.
	ExcludeSelectors []string

	// BaseURL resolves relative links and decides internal/external origin.
	// A <base href> tag in the document takes over when this is empty.
	BaseURL string
}

// Extract parses the HTML and returns the structural snapshot.
// Parse failures and documents with no title and no text yield an
// EXTRACTION_ERROR; merely missing tags degrade to empty fields.
func Extract(html string, opts Options) (*models.StructuralSnapshot, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, models.NewAuditError(models.ErrCodeExtraction,
			"failed to parse html document", err)
	}

	matchers, err := compileSelectors(opts.ContentSelectors)
	if err != nil {
		return nil, err
	}
	excludes, err := compileSelectors(opts.ExcludeSelectors)
	if err != nil {
		return nil, err
	}

	scope := selectScope(doc, matchers)
	for _, m := range excludes {
		scope.FindMatcher(m).Remove()
	}

	snapshot := &models.StructuralSnapshot{
		Title:           strings.TrimSpace(doc.Find("title").First().Text()),
		MetaDescription: strings.TrimSpace(doc.Find(`meta[name="description"]`).AttrOr("content", "")),
		Headings:        extractHeadings(scope),
		Images:          extractImages(scope),
		Links:           extractLinks(doc, scope, opts.BaseURL),
		Videos:          extractVideos(scope),
	}

	text := extractText(scope)
	snapshot.TextContent = text
	snapshot.Paragraphs = extractParagraphs(scope, text)

	if snapshot.Title == "" && text == "" {
		return nil, models.NewAuditError(models.ErrCodeExtraction,
			"document has no title and no text content", nil)
	}

	snapshot.WordCount = textmetrics.CountWords(text)
	snapshot.TextStats = models.TextStats{
		CharCount:          len([]rune(text)),
		ParagraphCount:     len(snapshot.Paragraphs),
		SentenceCount:      textmetrics.CountSentences(text),
		ReadingTimeMinutes: readingTime(snapshot.WordCount),
	}

	return snapshot, nil
}

// compileSelectors validates caller-supplied selectors up front so a typo
// surfaces as a validation error instead of silently matching nothing.
func compileSelectors(selectors []string) ([]cascadia.Selector, error) {
	if len(selectors) == 0 {
		return nil, nil
	}
	compiled := make([]cascadia.Selector, 0, len(selectors))
	for _, sel := range selectors {
		sel = strings.TrimSpace(sel)
		if sel == "" {
			continue
		}
		m, err := cascadia.Compile(sel)
		if err != nil {
			return nil, models.NewAuditError(models.ErrCodeValidation,
				"invalid css selector: "+sel, err)
		}
		compiled = append(compiled, m)
	}
	return compiled, nil
}

// selectScope picks the analyzed scope: first matching content selector,
// otherwise the document body, otherwise the whole document.
func selectScope(doc *goquery.Document, matchers []cascadia.Selector) *goquery.Selection {
	for _, m := range matchers {
		if sel := doc.FindMatcher(m); sel.Length() > 0 {
			return sel.First()
		}
	}
	if body := doc.Find("body"); body.Length() > 0 {
		return body
	}
	return doc.Selection
}

func extractHeadings(scope *goquery.Selection) []models.Heading {
	headings := []models.Heading{}
	scope.Find("h1, h2, h3, h4, h5, h6").Each(func(i int, s *goquery.Selection) {
		level := int(s.Get(0).Data[1] - '0')
		headings = append(headings, models.Heading{
			Level: level,
			Text:  strings.TrimSpace(s.Text()),
			Order: i,
		})
	})
	return headings
}

func extractImages(scope *goquery.Selection) []models.Image {
	images := []models.Image{}
	scope.Find("img").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		img := models.Image{
			Src:    strings.TrimSpace(src),
			Title:  s.AttrOr("title", ""),
			Width:  s.AttrOr("width", ""),
			Height: s.AttrOr("height", ""),
		}
		if alt, ok := s.Attr("alt"); ok {
			img.Alt = strings.TrimSpace(alt)
		}
		images = append(images, img)
	})
	return images
}

func extractVideos(scope *goquery.Selection) []models.Video {
	videos := []models.Video{}
	seen := make(map[string]struct{})

	add := func(src string) {
		src = strings.TrimSpace(src)
		if src == "" {
			return
		}
		if _, ok := seen[src]; ok {
			return
		}
		seen[src] = struct{}{}
		videos = append(videos, models.Video{Src: src})
	}

	scope.Find("video").Each(func(_ int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok {
			add(src)
			return
		}
		if src, ok := s.Find("source").First().Attr("src"); ok {
			add(src)
		}
	})

	// Known embed hosts count as videos too.
	scope.Find("iframe[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		lower := strings.ToLower(src)
		if strings.Contains(lower, "youtube.com") ||
			strings.Contains(lower, "youtu.be") ||
			strings.Contains(lower, "vimeo.com") {
			add(src)
		}
	})

	return videos
}

func extractParagraphs(scope *goquery.Selection, text string) []string {
	paragraphs := []string{}
	scope.Find("p").Each(func(_ int, s *goquery.Selection) {
		if p := strings.TrimSpace(s.Text()); p != "" {
			paragraphs = append(paragraphs, p)
		}
	})
	if len(paragraphs) > 0 {
		return paragraphs
	}
	// Markup without <p> tags still has blank-line structure in the text.
	return textmetrics.SplitParagraphs(text)
}

func readingTime(words int) int {
	if words == 0 {
		return 0
	}
	return int(math.Ceil(float64(words) / readingSpeedWPM))
}
