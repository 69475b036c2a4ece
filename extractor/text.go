package extractor

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Elements whose text never belongs to the readable content.
var skippedElements = map[string]struct{}{
	"script": {}, "style": {}, "noscript": {}, "template": {}, "iframe": {},
}

// Elements that end a text block; a paragraph break is inserted after them
// so blank-line-based paragraph and sentence logic sees real structure
// instead of one concatenated run.
var blockElements = map[string]struct{}{
	"p": {}, "div": {}, "section": {}, "article": {}, "blockquote": {},
	"h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
	"li": {}, "ul": {}, "ol": {}, "table": {}, "tr": {}, "figure": {},
	"header": {}, "footer": {}, "aside": {}, "nav": {}, "pre": {},
}

var excessBlankLines = regexp.MustCompile(`\n{3,}`)

// extractText walks the scope's nodes and returns the visible text with
// block boundaries preserved as blank lines. A plain Selection.Text() call
// glues adjacent blocks together, which breaks sentence and paragraph
// counting downstream.
func extractText(scope *goquery.Selection) string {
	var sb strings.Builder
	for _, node := range scope.Nodes {
		writeNodeText(&sb, node)
	}

	text := sb.String()
	text = excessBlankLines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

func writeNodeText(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		if t := collapseSpace(n.Data); t != "" {
			if sb.Len() > 0 && !endsWithBoundary(sb.String()) {
				sb.WriteByte(' ')
			}
			sb.WriteString(t)
		}
		return
	case html.ElementNode:
		if _, skip := skippedElements[n.Data]; skip {
			return
		}
		if n.Data == "br" {
			sb.WriteByte('\n')
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeNodeText(sb, c)
	}

	if n.Type == html.ElementNode {
		if _, block := blockElements[n.Data]; block {
			sb.WriteString("\n\n")
		}
	}
}

var spaceRun = regexp.MustCompile(`\s+`)

func collapseSpace(s string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

func endsWithBoundary(s string) bool {
	return strings.HasSuffix(s, "\n") || strings.HasSuffix(s, " ")
}
