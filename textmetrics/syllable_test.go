package textmetrics

import "testing"

func TestSyllables(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"cat", 1},  // length ≤ 3
		{"the", 1},
		{"a", 1},
		{"hello", 2},
		{"coffee", 2},
		{"jumped", 1}, // trailing -ed stripped
		{"makes", 1},  // trailing -es stripped
		{"beautiful", 4},
		{"optimization", 5},
		{"rhythm", 1}, // no vowels left, floor of one
		{"yellow", 2}, // leading y stripped
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := Syllables(tt.word); got != tt.want {
				t.Errorf("Syllables(%q) = %d, want %d", tt.word, got, tt.want)
			}
		})
	}
}

func TestSyllables_CaseInsensitive(t *testing.T) {
	if Syllables("HELLO") != Syllables("hello") {
		t.Error("syllable count should ignore case")
	}
}

func TestTotalSyllables(t *testing.T) {
	// "hello world" = 2 + 1; each ideograph counts one.
	got := TotalSyllables("hello world 咖啡")
	if got != 5 {
		t.Errorf("TotalSyllables = %d, want 5", got)
	}
}
