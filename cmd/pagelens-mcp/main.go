package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// auditRequest mirrors the PageLens API request model.
type auditRequest struct {
	HTML            string      `json:"html"`
	PageDetails     pageDetails `json:"page_details"`
	FocusKeyword    string      `json:"focus_keyword,omitempty"`
	RelatedKeywords []string    `json:"related_keywords,omitempty"`
}

type pageDetails struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// auditURLRequest mirrors the PageLens URL-audit request model.
type auditURLRequest struct {
	URL             string   `json:"url"`
	FocusKeyword    string   `json:"focus_keyword,omitempty"`
	RelatedKeywords []string `json:"related_keywords,omitempty"`
}

// auditResponse mirrors the PageLens API response model.
type auditResponse struct {
	Success bool `json:"success"`
	Report  *struct {
		URL           string `json:"url"`
		OverallScores struct {
			SEOScore         int    `json:"seo_score"`
			ReadabilityScore int    `json:"readability_score"`
			OverallScore     int    `json:"overall_score"`
			SEOGrade         string `json:"seo_grade"`
			ReadabilityGrade string `json:"readability_grade"`
			OverallGrade     string `json:"overall_grade"`
		} `json:"overall_scores"`
		DetailedIssues []struct {
			Name           string `json:"name"`
			Rating         string `json:"rating"`
			Score          int    `json:"score"`
			Recommendation string `json:"recommendation"`
		} `json:"detailed_issues"`
		Summary struct {
			TotalIssues int `json:"total_issues"`
			GoodIssues  int `json:"good_issues"`
			OKIssues    int `json:"ok_issues"`
			BadIssues   int `json:"bad_issues"`
		} `json:"summary"`
	} `json:"report"`
	PageUnderstanding *struct {
		WordCount          int `json:"word_count"`
		H1Count            int `json:"h1_count"`
		H2Count            int `json:"h2_count"`
		ImageCount         int `json:"image_count"`
		ReadingTimeMinutes int `json:"reading_time_minutes"`
	} `json:"page_understanding"`
	ContentMarkdown string `json:"content_markdown"`
	Error           *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func main() {
	apiURL := os.Getenv("PAGELENS_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}
	apiKey := os.Getenv("PAGELENS_API_KEY")

	s := server.NewMCPServer(
		"pagelens",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	// audit_html tool
	auditHTMLTool := mcp.NewTool("audit_html",
		mcp.WithDescription("Audit an HTML document for SEO and readability. Returns scores, grades and per-check recommendations."),
		mcp.WithString("html",
			mcp.Required(),
			mcp.Description("The raw HTML document to audit"),
		),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The canonical URL of the page"),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("The page title"),
		),
		mcp.WithString("focus_keyword",
			mcp.Description("The primary keyword the page is optimized for"),
		),
		mcp.WithArray("related_keywords",
			mcp.Description("Secondary keywords, in priority order"),
		),
	)
	s.AddTool(auditHTMLTool, handleAuditHTML(apiURL, apiKey))

	// audit_url tool
	auditURLTool := mcp.NewTool("audit_url",
		mcp.WithDescription("Fetch a WordPress post by URL and audit it for SEO and readability. Returns scores, grades and per-check recommendations."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL of the post to fetch and audit"),
		),
		mcp.WithString("focus_keyword",
			mcp.Description("The primary keyword the page is optimized for"),
		),
		mcp.WithArray("related_keywords",
			mcp.Description("Secondary keywords, in priority order"),
		),
	)
	s.AddTool(auditURLTool, handleAuditURL(apiURL, apiKey))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

// apiPost sends a POST request to the PageLens API and returns the response body.
func apiPost(ctx context.Context, client *http.Client, apiURL, apiKey, path string, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

func handleAuditHTML(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 60 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		html, err := request.RequireString("html")
		if err != nil {
			return mcp.NewToolResultError("html is required"), nil
		}
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}
		title, err := request.RequireString("title")
		if err != nil {
			return mcp.NewToolResultError("title is required"), nil
		}

		payload := auditRequest{
			HTML:            html,
			PageDetails:     pageDetails{URL: url, Title: title},
			FocusKeyword:    request.GetString("focus_keyword", ""),
			RelatedKeywords: request.GetStringSlice("related_keywords", nil),
		}

		respBody, err := apiPost(ctx, client, apiURL, apiKey, "/api/v1/audit", payload)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("audit request failed: %v", err)), nil
		}
		return renderAuditResult(respBody)
	}
}

func handleAuditURL(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 120 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		payload := auditURLRequest{
			URL:             url,
			FocusKeyword:    request.GetString("focus_keyword", ""),
			RelatedKeywords: request.GetStringSlice("related_keywords", nil),
		}

		respBody, err := apiPost(ctx, client, apiURL, apiKey, "/api/v1/audit/url", payload)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("audit request failed: %v", err)), nil
		}
		return renderAuditResult(respBody)
	}
}

// renderAuditResult formats an API audit response as readable text.
func renderAuditResult(respBody []byte) (*mcp.CallToolResult, error) {
	var auditResp auditResponse
	if err := json.Unmarshal(respBody, &auditResp); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
	}

	if !auditResp.Success {
		errMsg := "audit failed"
		if auditResp.Error != nil {
			errMsg = fmt.Sprintf("[%s] %s", auditResp.Error.Code, auditResp.Error.Message)
		}
		return mcp.NewToolResultError(errMsg), nil
	}

	r := auditResp.Report
	if r == nil {
		return mcp.NewToolResultError("audit succeeded but no report was returned"), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Audit of %s\n\n", r.URL))
	sb.WriteString(fmt.Sprintf("SEO: %d (%s)\nReadability: %d (%s)\nOverall: %d (%s)\n\n",
		r.OverallScores.SEOScore, r.OverallScores.SEOGrade,
		r.OverallScores.ReadabilityScore, r.OverallScores.ReadabilityGrade,
		r.OverallScores.OverallScore, r.OverallScores.OverallGrade,
	))

	if pu := auditResp.PageUnderstanding; pu != nil {
		sb.WriteString(fmt.Sprintf("Page: %d words, %d H1, %d H2, %d images, ~%d min read\n\n",
			pu.WordCount, pu.H1Count, pu.H2Count, pu.ImageCount, pu.ReadingTimeMinutes))
	}

	sb.WriteString(fmt.Sprintf("Checks: %d total (%d good, %d ok, %d bad)\n\n",
		r.Summary.TotalIssues, r.Summary.GoodIssues, r.Summary.OKIssues, r.Summary.BadIssues))

	for _, issue := range r.DetailedIssues {
		if issue.Rating == "good" {
			continue
		}
		sb.WriteString(fmt.Sprintf("[%s %d] %s: %s\n",
			strings.ToUpper(issue.Rating), issue.Score, issue.Name, issue.Recommendation))
	}

	return mcp.NewToolResultText(sb.String()), nil
}
