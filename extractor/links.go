package extractor

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/yangnim21029/pagelens/models"
)

// extractLinks collects hyperlinks from the scope and classifies each as
// internal or external by comparing the resolved origin against the base
// URL. The base comes from the caller, or from a <base href> tag when the
// caller supplied none. mailto:, tel:, fragment and javascript: targets are
// never external.
func extractLinks(doc *goquery.Document, scope *goquery.Selection, baseURL string) []models.Link {
	base := resolveBase(doc, baseURL)

	links := []models.Link{}
	scope.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" {
			return
		}

		link := models.Link{
			Href:       href,
			Text:       strings.TrimSpace(s.Text()),
			IsNoFollow: hasNoFollow(s.AttrOr("rel", "")),
		}

		if !isNavigable(href) {
			links = append(links, link)
			return
		}

		resolved := resolve(base, href)
		if resolved != nil {
			link.Href = resolved.String()
			link.IsExternal = isExternal(base, resolved)
		}

		links = append(links, link)
	})

	return links
}

// resolveBase parses the supplied base URL, falling back to the document's
// <base href> tag. Returns nil when neither is usable.
func resolveBase(doc *goquery.Document, baseURL string) *url.URL {
	if baseURL != "" {
		if u, err := url.Parse(baseURL); err == nil && u.Host != "" {
			return u
		}
	}
	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if u, err := url.Parse(strings.TrimSpace(href)); err == nil && u.Host != "" {
			return u
		}
	}
	return nil
}

// isNavigable filters out pseudo-targets that never leave the page origin.
func isNavigable(href string) bool {
	lower := strings.ToLower(href)
	switch {
	case strings.HasPrefix(lower, "mailto:"),
		strings.HasPrefix(lower, "tel:"),
		strings.HasPrefix(lower, "javascript:"),
		strings.HasPrefix(href, "#"):
		return false
	}
	return true
}

func resolve(base *url.URL, href string) *url.URL {
	if base != nil {
		if u, err := base.Parse(href); err == nil {
			return u
		}
		return nil
	}
	u, err := url.Parse(href)
	if err != nil {
		return nil
	}
	return u
}

// isExternal compares origins (scheme + host). With no base URL at all,
// absolute links are treated as external and relative ones as internal.
func isExternal(base, resolved *url.URL) bool {
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return false
	}
	if base == nil {
		return resolved.Host != ""
	}
	return !strings.EqualFold(resolved.Scheme, base.Scheme) ||
		!strings.EqualFold(resolved.Host, base.Host)
}

func hasNoFollow(rel string) bool {
	for _, part := range strings.Fields(strings.ToLower(rel)) {
		if part == "nofollow" {
			return true
		}
	}
	return false
}
