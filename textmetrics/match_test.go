package textmetrics

import "testing"

func TestContainsAllCharacters(t *testing.T) {
	tests := []struct {
		name     string
		haystack string
		needle   string
		want     bool
	}{
		// Non-contiguous match is the point of this matcher: l, o, w are all
		// present even though "low" is not a substring.
		{"non-contiguous", "hello world", "low", true},
		{"substring", "best coffee beans", "coffee", true},
		{"missing char", "hello world", "lox", false},
		{"case folded", "Hello World", "HELD", true},
		{"cjk overlap", "咖啡豆烘焙完全指南", "咖啡指南", true},
		{"cjk missing", "咖啡豆烘焙指南", "紅茶", false},
		{"empty needle", "anything", "", false},
		{"whitespace needle", "anything", "   ", false},
		{"empty haystack", "", "a", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContainsAllCharacters(tt.haystack, tt.needle); got != tt.want {
				t.Errorf("ContainsAllCharacters(%q, %q) = %v, want %v",
					tt.haystack, tt.needle, got, tt.want)
			}
		})
	}
}

func TestFirstMatchingKeyword(t *testing.T) {
	text := "咖啡豆烘焙完全指南 coffee roasting"

	// Both "指南" and "咖啡" match; list order decides.
	kw, ok := FirstMatchingKeyword(text, []string{"紅茶", "指南", "咖啡"})
	if !ok || kw != "指南" {
		t.Errorf("FirstMatchingKeyword = %q, %v; want 指南, true", kw, ok)
	}

	if _, ok := FirstMatchingKeyword(text, []string{"紅茶", "牛奶"}); ok {
		t.Error("no keyword should match")
	}

	if _, ok := FirstMatchingKeyword(text, nil); ok {
		t.Error("empty keyword list should not match")
	}
}
