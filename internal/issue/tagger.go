package issue

import (
	"strings"

	"github.com/beaten-by-the-market/krx-radar/internal/models"
)

// Tagger evaluates a fixed clause list against documents.
type Tagger struct {
	clauses []Clause
}

// NewTagger builds a tagger for the given clauses. An empty or nil clause
// list makes the tagger vacuous: every document is tagged as matched with
// no matched clause names.
func NewTagger(clauses []Clause) *Tagger {
	return &Tagger{clauses: clauses}
}

// Tag reports whether the document satisfies at least one clause and lists
// the original text of every clause it satisfies, in clause order. With no
// clauses configured it returns (true, nil).
func (t *Tagger) Tag(doc models.Document) (bool, []string) {
	if len(t.clauses) == 0 {
		return true, nil
	}

	haystack := Haystack(doc)

	var matched []string
	for _, c := range t.clauses {
		if c.matches(haystack) {
			matched = append(matched, c.String())
		}
	}
	return len(matched) > 0, matched
}

// Haystack concatenates the document's non-empty text fields into the
// single lower-cased string clauses are matched against.
func Haystack(doc models.Document) string {
	var parts []string
	for _, f := range doc.TextFields() {
		if f != "" {
			parts = append(parts, f)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}
