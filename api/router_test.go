package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/yangnim21029/pagelens/assess"
	"github.com/yangnim21029/pagelens/cache"
	"github.com/yangnim21029/pagelens/config"
	"github.com/yangnim21029/pagelens/models"
	"github.com/yangnim21029/pagelens/pipeline"
	"github.com/yangnim21029/pagelens/wordpress"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head><title>Best Coffee Brewing Guide for Beginners</title></head>
<body>
	<article>
		<h1>Best Coffee Brewing Guide</h1>
		<p>Coffee brewing rewards patience. This guide walks through the basics.</p>
		<h2>Grinding the coffee</h2>
		<p>A burr grinder gives an even grind and a clean taste.</p>
	</article>
</body>
</html>`

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{
		Server:    config.ServerConfig{Mode: "test"},
		RateLimit: config.RateLimitConfig{RequestsPerSecond: 1000, Burst: 1000},
		Batch:     config.BatchConfig{MaxConcurrency: 2, MaxItems: 10},
	}
	p := pipeline.New(assess.DefaultConfig(), nil)
	wp := wordpress.NewClient(5*time.Second, "PageLens-Test/1.0", nil)
	return NewRouter(p, wp, cfg, cache.New(10), time.Now())
}

func postJSON(t *testing.T, router http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuditEndpoint(t *testing.T) {
	router := testRouter(t)

	w := postJSON(t, router, "/api/v1/audit", models.AuditRequest{
		HTML: articleHTML,
		PageDetails: models.PageDetails{
			URL:   "https://example.com/coffee-guide",
			Title: "Best Coffee Brewing Guide",
		},
		FocusKeyword: "coffee",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}

	var resp models.AuditResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !resp.Success {
		t.Fatalf("Success = false: %+v", resp.Error)
	}
	if resp.Report == nil || len(resp.Report.DetailedIssues) != 16 {
		t.Errorf("expected full catalog report, got %+v", resp.Report)
	}
	if resp.PageUnderstanding == nil || resp.PageUnderstanding.H1Count != 1 {
		t.Errorf("page understanding = %+v", resp.PageUnderstanding)
	}
}

func TestAuditEndpointCaching(t *testing.T) {
	router := testRouter(t)

	req := models.AuditRequest{
		HTML: articleHTML,
		PageDetails: models.PageDetails{
			URL:   "https://example.com/coffee-guide",
			Title: "Best Coffee Brewing Guide",
		},
		FocusKeyword: "coffee",
		MaxAgeMs:     60000,
	}

	first := postJSON(t, router, "/api/v1/audit", req)
	var firstResp models.AuditResponse
	if err := json.Unmarshal(first.Body.Bytes(), &firstResp); err != nil {
		t.Fatalf("unmarshal first response: %v", err)
	}
	if firstResp.CacheStatus != "miss" {
		t.Errorf("first CacheStatus = %q, want miss", firstResp.CacheStatus)
	}

	second := postJSON(t, router, "/api/v1/audit", req)
	var secondResp models.AuditResponse
	if err := json.Unmarshal(second.Body.Bytes(), &secondResp); err != nil {
		t.Fatalf("unmarshal second response: %v", err)
	}
	if secondResp.CacheStatus != "hit" {
		t.Errorf("second CacheStatus = %q, want hit", secondResp.CacheStatus)
	}
}

func TestAuditEndpointConcurrentCacheHits(t *testing.T) {
	router := testRouter(t)

	req := models.AuditRequest{
		HTML: articleHTML,
		PageDetails: models.PageDetails{
			URL:   "https://example.com/coffee-guide",
			Title: "Best Coffee Brewing Guide",
		},
		FocusKeyword: "coffee",
		MaxAgeMs:     60000,
	}

	// Prime the cache, then hit it from many goroutines at once. Each hit
	// stamps its own CacheStatus and elapsed time while others encode the
	// same entry.
	postJSON(t, router, "/api/v1/audit", req)

	body, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	var wg sync.WaitGroup
	codes := make([]int, 16)
	statuses := make([]string, 16)
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			hr := httptest.NewRequest(http.MethodPost, "/api/v1/audit", bytes.NewReader(body))
			hr.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, hr)
			codes[i] = w.Code

			var resp models.AuditResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				return
			}
			statuses[i] = resp.CacheStatus
		}(i)
	}
	wg.Wait()

	for i := range codes {
		if codes[i] != http.StatusOK {
			t.Errorf("request %d: status = %d", i, codes[i])
		}
		if statuses[i] != "hit" {
			t.Errorf("request %d: CacheStatus = %q, want hit", i, statuses[i])
		}
	}
}

func TestAuditEndpointMarkdownFormat(t *testing.T) {
	router := testRouter(t)

	w := postJSON(t, router, "/api/v1/audit?format=markdown", models.AuditRequest{
		HTML: articleHTML,
		PageDetails: models.PageDetails{
			URL:   "https://example.com/coffee-guide",
			Title: "Best Coffee Brewing Guide",
		},
		FocusKeyword: "coffee",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/markdown") {
		t.Errorf("Content-Type = %q, want text/markdown", ct)
	}
	body := w.Body.String()
	if !strings.Contains(body, "# Audit Report: https://example.com/coffee-guide") {
		t.Errorf("markdown body missing report header: %s", body)
	}
	if !strings.Contains(body, "## Scores") {
		t.Error("markdown body missing scores section")
	}
}

func TestBatchEndpoints(t *testing.T) {
	router := testRouter(t)

	item := models.BatchAuditItem{
		HTML: articleHTML,
		PageDetails: models.PageDetails{
			URL:   "https://example.com/coffee-guide",
			Title: "Best Coffee Brewing Guide",
		},
		FocusKeyword: "coffee",
	}
	w := postJSON(t, router, "/api/v1/batch/audit", models.BatchAuditRequest{
		Items: []models.BatchAuditItem{item, item},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("submit status = %d, body: %s", w.Code, w.Body.String())
	}

	var submitted models.BatchAuditResponse
	if err := json.Unmarshal(w.Body.Bytes(), &submitted); err != nil {
		t.Fatalf("unmarshal submit response: %v", err)
	}
	if submitted.ID == "" || submitted.Total != 2 {
		t.Fatalf("submit response = %+v", submitted)
	}

	// Poll until the background workers finish.
	var status models.BatchStatusResponse
	deadline := time.Now().Add(5 * time.Second)
	for {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/batch/"+submitted.ID, nil)
		poll := httptest.NewRecorder()
		router.ServeHTTP(poll, req)
		if poll.Code != http.StatusOK {
			t.Fatalf("poll status = %d", poll.Code)
		}
		if err := json.Unmarshal(poll.Body.Bytes(), &status); err != nil {
			t.Fatalf("unmarshal poll response: %v", err)
		}
		if status.Status != "processing" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("batch still processing: %+v", status)
		}
		time.Sleep(10 * time.Millisecond)
	}

	if status.Status != "completed" || status.Completed != 2 {
		t.Fatalf("final status = %+v, want completed 2/2", status)
	}
	for i, r := range status.Results {
		if r == nil || !r.Success {
			t.Errorf("result %d = %+v, want success", i, r)
		}
	}
}

func TestBatchNotFound(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/batch/batch-nope", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestAuditEndpointValidationError(t *testing.T) {
	router := testRouter(t)

	w := postJSON(t, router, "/api/v1/audit", models.AuditRequest{
		HTML: "too short",
		PageDetails: models.PageDetails{
			URL:   "https://example.com/x",
			Title: "X",
		},
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body: %s", w.Code, w.Body.String())
	}

	var resp models.AuditResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Success || resp.Error == nil || resp.Error.Code != models.ErrCodeValidation {
		t.Errorf("error = %+v, want VALIDATION_ERROR", resp.Error)
	}
}

func TestAuditEndpointMalformedJSON(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/audit", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp models.HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("Status = %q", resp.Status)
	}
}
