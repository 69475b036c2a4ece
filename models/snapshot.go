package models

// StructuralSnapshot is a derived, read-only view of one document produced by
// the extractor and consumed by every assessment rule. It is created per
// extraction call and discarded after assessment.
type StructuralSnapshot struct {
	Title           string    `json:"title"`
	MetaDescription string    `json:"meta_description,omitempty"`
	Headings        []Heading `json:"headings"`
	Images          []Image   `json:"images"`
	Links           []Link    `json:"links"`
	Videos          []Video   `json:"videos"`
	Paragraphs      []string  `json:"paragraphs"`
	TextContent     string    `json:"text_content"`
	WordCount       int       `json:"word_count"`
	TextStats       TextStats `json:"text_stats"`
}

// Heading is one h1–h6 element in document order.
type Heading struct {
	Level int    `json:"level"` // 1–6
	Text  string `json:"text"`
	Order int    `json:"order"` // 0-based position among all headings
}

// Image is one img element from the analyzed scope.
type Image struct {
	Src    string `json:"src"`
	Alt    string `json:"alt,omitempty"`
	Title  string `json:"title,omitempty"`
	Width  string `json:"width,omitempty"`
	Height string `json:"height,omitempty"`
}

// Link is one hyperlink with its origin classification.
type Link struct {
	Href       string `json:"href"`
	Text       string `json:"text,omitempty"`
	IsExternal bool   `json:"is_external"`
	IsNoFollow bool   `json:"is_nofollow"`
}

// Video is one embedded video (video element or known embed iframe).
type Video struct {
	Src string `json:"src"`
}

// TextStats carries the aggregate text measurements for the analyzed scope.
// SentenceCount and WordCount use the same language-aware algorithm as every
// downstream rule; keyword density and readability denominators depend on
// that consistency.
type TextStats struct {
	CharCount          int `json:"char_count"`
	ParagraphCount     int `json:"paragraph_count"`
	SentenceCount      int `json:"sentence_count"`
	ReadingTimeMinutes int `json:"reading_time_minutes"`
}

// FirstHeadingOfLevel returns the first heading with the given level, or nil.
func (s *StructuralSnapshot) FirstHeadingOfLevel(level int) *Heading {
	for i := range s.Headings {
		if s.Headings[i].Level == level {
			return &s.Headings[i]
		}
	}
	return nil
}

// HeadingsOfLevel returns all headings with the given level, in order.
func (s *StructuralSnapshot) HeadingsOfLevel(level int) []Heading {
	var out []Heading
	for _, h := range s.Headings {
		if h.Level == level {
			out = append(out, h)
		}
	}
	return out
}

// CountHeadingsOfLevel returns the number of headings with the given level.
func (s *StructuralSnapshot) CountHeadingsOfLevel(level int) int {
	n := 0
	for _, h := range s.Headings {
		if h.Level == level {
			n++
		}
	}
	return n
}
