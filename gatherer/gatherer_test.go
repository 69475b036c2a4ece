package gatherer

import (
	"errors"
	"strings"
	"testing"

	"github.com/yangnim21029/pagelens/models"
)

var validHTML = "<html><head><title>t</title></head><body>" +
	strings.Repeat("content ", 20) + "</body></html>"

func validInput() Input {
	return Input{
		HTML: validHTML,
		PageDetails: models.PageDetails{
			URL:   "https://example.com/post",
			Title: "A Post",
		},
		FocusKeyword:    "  Coffee Beans  ",
		RelatedKeywords: []string{" Roasting ", "", "GUIDE"},
	}
}

func TestGather_Normalizes(t *testing.T) {
	ci, err := Gather(validInput())
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	if ci.FocusKeyword != "coffee beans" {
		t.Errorf("focus keyword = %q, want %q", ci.FocusKeyword, "coffee beans")
	}
	if len(ci.RelatedKeywords) != 2 {
		t.Fatalf("related keywords = %v, want 2 entries", ci.RelatedKeywords)
	}
	if ci.RelatedKeywords[0] != "roasting" || ci.RelatedKeywords[1] != "guide" {
		t.Errorf("related keywords = %v", ci.RelatedKeywords)
	}
}

func TestGather_ValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
	}{
		{"empty html", func(in *Input) { in.HTML = "" }},
		{"whitespace html", func(in *Input) { in.HTML = "   \n\t  " }},
		{"short html", func(in *Input) { in.HTML = "<p>tiny</p>" }},
		{"missing url", func(in *Input) { in.PageDetails.URL = "" }},
		{"missing title", func(in *Input) { in.PageDetails.Title = "  " }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			_, err := Gather(in)
			if err == nil {
				t.Fatal("expected validation error")
			}
			var auditErr *models.AuditError
			if !errors.As(err, &auditErr) {
				t.Fatalf("error is not an AuditError: %v", err)
			}
			if auditErr.Code != models.ErrCodeValidation {
				t.Errorf("error code = %s, want %s", auditErr.Code, models.ErrCodeValidation)
			}
		})
	}
}

func TestGather_EmptyKeywordAllowed(t *testing.T) {
	in := validInput()
	in.FocusKeyword = ""
	in.RelatedKeywords = nil

	ci, err := Gather(in)
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	if ci.HasFocusKeyword() {
		t.Error("empty focus keyword reported as present")
	}
	if len(ci.AllKeywords()) != 0 {
		t.Errorf("AllKeywords = %v, want empty", ci.AllKeywords())
	}
}
