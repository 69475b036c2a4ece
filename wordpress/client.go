// Package wordpress fetches post content from WordPress sites through the
// public REST API, so URL-based audits see the editorial content instead of
// a themed page full of navigation chrome.
package wordpress

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	nurl "net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"

	"github.com/yangnim21029/pagelens/models"
)

const maxResponseBytes = 10 * 1024 * 1024 // 10 MB cap

// Client fetches posts from WordPress REST APIs. Safe for concurrent use.
type Client struct {
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
}

// NewClient builds a client with the given per-fetch timeout.
func NewClient(timeout time.Duration, userAgent string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
		logger:     logger,
	}
}

// Page is the fetched, audit-ready content of one post.
type Page struct {
	// HTML is a full document assembled from the post content, suitable for
	// structural analysis.
	HTML string

	// Details carries the metadata read from the post and, where the API
	// left gaps, from readability extraction.
	Details models.PageDetails
}

// restPost mirrors the fields we use from /wp/v2/posts.
type restPost struct {
	Link  string `json:"link"`
	Date  string `json:"date"`
	Title struct {
		Rendered string `json:"rendered"`
	} `json:"title"`
	Content struct {
		Rendered string `json:"rendered"`
	} `json:"content"`
	Excerpt struct {
		Rendered string `json:"rendered"`
	} `json:"excerpt"`
}

// FetchPage resolves a post URL to its REST API record and assembles an
// auditable page. Failures carry models.ErrCodeFetchFailed.
func (c *Client) FetchPage(ctx context.Context, pageURL string) (*Page, error) {
	parsed, err := nurl.Parse(pageURL)
	if err != nil || parsed.Host == "" {
		return nil, models.NewAuditError(models.ErrCodeValidation,
			"invalid page url: "+pageURL, err)
	}

	slug := postSlug(parsed)
	if slug == "" {
		return nil, models.NewAuditError(models.ErrCodeValidation,
			"url has no post slug: "+pageURL, nil)
	}

	post, err := c.fetchPost(ctx, parsed, slug)
	if err != nil {
		return nil, err
	}

	page := &Page{
		HTML: assembleDocument(post),
		Details: models.PageDetails{
			URL:           pageURL,
			Title:         strings.TrimSpace(stripTags(post.Title.Rendered)),
			Description:   strings.TrimSpace(stripTags(post.Excerpt.Rendered)),
			PublishedDate: post.Date,
		},
	}
	c.enrichDetails(page)

	if page.Details.Title == "" {
		return nil, models.NewAuditError(models.ErrCodeFetchFailed,
			"post has no title: "+pageURL, nil)
	}
	return page, nil
}

func (c *Client) fetchPost(ctx context.Context, parsed *nurl.URL, slug string) (*restPost, error) {
	endpoint := fmt.Sprintf("%s://%s/?rest_route=/wp/v2/posts&slug=%s",
		parsed.Scheme, parsed.Host, nurl.QueryEscape(slug))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, models.NewAuditError(models.ErrCodeFetchFailed,
			"build request: "+err.Error(), err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, models.NewAuditError(models.ErrCodeFetchFailed,
			"wordpress api request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, models.NewAuditError(models.ErrCodeFetchFailed,
			fmt.Sprintf("wordpress api returned HTTP %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, models.NewAuditError(models.ErrCodeFetchFailed,
			"read wordpress api response", err)
	}

	var posts []restPost
	if err := json.Unmarshal(body, &posts); err != nil {
		return nil, models.NewAuditError(models.ErrCodeFetchFailed,
			"wordpress api returned malformed JSON", err)
	}
	if len(posts) == 0 {
		return nil, models.NewAuditError(models.ErrCodeFetchFailed,
			"no post found for slug "+slug, nil)
	}

	c.logger.Debug("fetched wordpress post", "slug", slug, "link", posts[0].Link)
	return &posts[0], nil
}

// enrichDetails fills metadata gaps (author, site name, language) using
// readability extraction over the assembled document. Extraction failures
// are ignored: the post record alone is enough to audit.
func (c *Client) enrichDetails(page *Page) {
	parsed, err := nurl.Parse(page.Details.URL)
	if err != nil {
		return
	}
	article, err := readability.FromReader(strings.NewReader(page.HTML), parsed)
	if err != nil {
		c.logger.Debug("readability enrichment failed", "url", page.Details.URL, "error", err)
		return
	}
	if page.Details.Author == "" {
		page.Details.Author = article.Byline
	}
	if page.Details.SiteName == "" {
		page.Details.SiteName = article.SiteName
	}
	if page.Details.Language == "" {
		page.Details.Language = article.Language
	}
	if page.Details.Description == "" {
		page.Details.Description = article.Excerpt
	}
}

// postSlug returns the last non-empty path segment.
func postSlug(u *nurl.URL) string {
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if s := strings.TrimSpace(segments[i]); s != "" {
			return s
		}
	}
	return ""
}

// assembleDocument wraps the rendered post content in a minimal document so
// the structural extractor sees a title and meta description.
func assembleDocument(post *restPost) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<title>")
	b.WriteString(stripTags(post.Title.Rendered))
	b.WriteString("</title>\n")
	if excerpt := strings.TrimSpace(stripTags(post.Excerpt.Rendered)); excerpt != "" {
		b.WriteString(`<meta name="description" content="`)
		b.WriteString(strings.ReplaceAll(excerpt, `"`, "&quot;"))
		b.WriteString("\">\n")
	}
	b.WriteString("</head>\n<body>\n<article>\n<h1>")
	b.WriteString(post.Title.Rendered)
	b.WriteString("</h1>\n")
	b.WriteString(post.Content.Rendered)
	b.WriteString("\n</article>\n</body>\n</html>")
	return b.String()
}

// stripTags removes markup from a rendered fragment, leaving text only.
func stripTags(fragment string) string {
	var b strings.Builder
	inTag := false
	for _, r := range fragment {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
