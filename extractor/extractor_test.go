package extractor

import (
	"errors"
	"reflect"
	"testing"

	"github.com/yangnim21029/pagelens/models"
)

const sampleHTML = `<!DOCTYPE html>
<html>
<head>
  <title>Best Coffee Beans</title>
  <meta name="description" content="A guide to buying coffee beans.">
</head>
<body>
  <nav class="site-nav"><a href="/about">About</a></nav>
  <article class="post-content">
    <h1>Coffee Bean Guide</h1>
    <p>Choosing coffee beans is the first step. Freshness matters most!</p>
    <h2>Roast Levels</h2>
    <p>Light roasts keep origin character. Dark roasts taste bolder.</p>
    <img src="/img/beans.jpg" alt="roasted beans">
    <img src="/img/bag.jpg">
    <a href="/shop">Shop</a>
    <a href="https://other.example.org/roasting" rel="nofollow noopener">Roasting science</a>
    <a href="mailto:hi@example.com">Mail us</a>
    <a href="#top">Back to top</a>
    <video src="/clips/brew.mp4"></video>
    <iframe src="https://www.youtube.com/embed/abc123"></iframe>
  </article>
  <footer>All rights reserved.</footer>
</body>
</html>`

func TestExtract_Snapshot(t *testing.T) {
	snap, err := Extract(sampleHTML, Options{BaseURL: "https://example.com/post"})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if snap.Title != "Best Coffee Beans" {
		t.Errorf("title = %q", snap.Title)
	}
	if snap.MetaDescription != "A guide to buying coffee beans." {
		t.Errorf("meta description = %q", snap.MetaDescription)
	}

	levels := make([]int, len(snap.Headings))
	for i, h := range snap.Headings {
		levels[i] = h.Level
		if h.Order != i {
			t.Errorf("heading %d has order %d", i, h.Order)
		}
	}
	if !reflect.DeepEqual(levels, []int{1, 2}) {
		t.Errorf("heading levels = %v, want [1 2]", levels)
	}

	if len(snap.Images) != 2 {
		t.Fatalf("image count = %d, want 2", len(snap.Images))
	}
	if snap.Images[0].Alt != "roasted beans" {
		t.Errorf("first image alt = %q", snap.Images[0].Alt)
	}
	if snap.Images[1].Alt != "" {
		t.Errorf("second image alt = %q, want empty", snap.Images[1].Alt)
	}

	if len(snap.Videos) != 2 {
		t.Errorf("video count = %d, want 2 (video tag + youtube embed)", len(snap.Videos))
	}

	if len(snap.Paragraphs) != 2 {
		t.Errorf("paragraph count = %d, want 2", len(snap.Paragraphs))
	}
	if snap.WordCount == 0 {
		t.Error("word count is zero")
	}
	if snap.TextStats.SentenceCount < 4 {
		t.Errorf("sentence count = %d, want at least 4", snap.TextStats.SentenceCount)
	}
}

func TestExtract_LinkClassification(t *testing.T) {
	snap, err := Extract(sampleHTML, Options{BaseURL: "https://example.com/post"})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	byHref := map[string]models.Link{}
	for _, l := range snap.Links {
		byHref[l.Href] = l
	}

	shop, ok := byHref["https://example.com/shop"]
	if !ok {
		t.Fatalf("relative link not resolved against base: %v", snap.Links)
	}
	if shop.IsExternal {
		t.Error("same-origin link classified as external")
	}

	ext, ok := byHref["https://other.example.org/roasting"]
	if !ok {
		t.Fatal("external link missing")
	}
	if !ext.IsExternal {
		t.Error("cross-origin link not classified as external")
	}
	if !ext.IsNoFollow {
		t.Error("rel=nofollow not detected")
	}

	if mail, ok := byHref["mailto:hi@example.com"]; !ok || mail.IsExternal {
		t.Error("mailto link must never be external")
	}
	if frag, ok := byHref["#top"]; !ok || frag.IsExternal {
		t.Error("fragment link must never be external")
	}
}

func TestExtract_ContentSelectors(t *testing.T) {
	// First selector has no match, second wins; nav/footer fall outside.
	snap, err := Extract(sampleHTML, Options{
		ContentSelectors: []string{".main-article", ".post-content"},
		BaseURL:          "https://example.com/post",
	})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	for _, l := range snap.Links {
		if l.Href == "https://example.com/about" {
			t.Error("nav link leaked into scoped extraction")
		}
	}
	if len(snap.Headings) != 2 {
		t.Errorf("heading count = %d, want 2", len(snap.Headings))
	}
}

func TestExtract_ExcludeSelectors(t *testing.T) {
	snap, err := Extract(sampleHTML, Options{
		ExcludeSelectors: []string{"nav", "footer"},
		BaseURL:          "https://example.com/post",
	})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	for _, l := range snap.Links {
		if l.Text == "About" {
			t.Error("excluded nav link still present")
		}
	}
}

func TestExtract_WholeBodyByDefault(t *testing.T) {
	snap, err := Extract(sampleHTML, Options{BaseURL: "https://example.com/post"})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	found := false
	for _, l := range snap.Links {
		if l.Text == "About" {
			found = true
		}
	}
	if !found {
		t.Error("without selectors the whole body must be analyzed, nav included")
	}
}

func TestExtract_InvalidSelector(t *testing.T) {
	_, err := Extract(sampleHTML, Options{ContentSelectors: []string{"[[["}})
	if err == nil {
		t.Fatal("expected error for invalid selector")
	}
	var auditErr *models.AuditError
	if !errors.As(err, &auditErr) || auditErr.Code != models.ErrCodeValidation {
		t.Errorf("error = %v, want VALIDATION_ERROR", err)
	}
}

func TestExtract_MalformedDegradesGracefully(t *testing.T) {
	// Unclosed tags, no meta description, no body text structure.
	snap, err := Extract("<html><title>t</title><body><h2>only heading<p>text here", Options{})
	if err != nil {
		t.Fatalf("malformed html must not fail extraction: %v", err)
	}
	if snap.MetaDescription != "" {
		t.Errorf("meta description = %q, want empty", snap.MetaDescription)
	}
}

func TestExtract_Deterministic(t *testing.T) {
	first, err := Extract(sampleHTML, Options{BaseURL: "https://example.com/post"})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	second, err := Extract(sampleHTML, Options{BaseURL: "https://example.com/post"})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if first.WordCount != second.WordCount {
		t.Errorf("word count differs across runs: %d vs %d", first.WordCount, second.WordCount)
	}
	if !reflect.DeepEqual(first.TextStats, second.TextStats) {
		t.Errorf("text stats differ: %+v vs %+v", first.TextStats, second.TextStats)
	}
}

func TestExtract_SchemeChangesOrigin(t *testing.T) {
	doc := `<html><head><title>t</title></head>
<body><p>some content long enough to matter</p><a href="http://example.com/legacy">legacy</a></body></html>`

	snap, err := Extract(doc, Options{BaseURL: "https://example.com/post"})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(snap.Links) != 1 {
		t.Fatalf("got %d links, want 1", len(snap.Links))
	}
	// Same host, different scheme: a different origin.
	if !snap.Links[0].IsExternal {
		t.Error("http link on an https page classified internal")
	}
}

func TestExtract_BaseTagFallback(t *testing.T) {
	htmlWithBase := `<html><head><title>t</title><base href="https://example.com/"></head>
<body><p>some content long enough to matter</p><a href="/x">x</a><a href="https://elsewhere.net/y">y</a></body></html>`

	snap, err := Extract(htmlWithBase, Options{})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	for _, l := range snap.Links {
		switch l.Text {
		case "x":
			if l.IsExternal {
				t.Error("base-tag-relative link classified external")
			}
		case "y":
			if !l.IsExternal {
				t.Error("cross-origin link not external with base tag")
			}
		}
	}
}
