package models

// Polarity is the sentiment label and confidence the search API attaches to
// a document. Name is one of 긍정, 중립, 부정, or empty when unlabeled.
type Polarity struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// MentionKind enumerates which identifying attribute a mention carries.
type MentionKind int

const (
	MentionUnknown MentionKind = iota
	MentionSymbol
	MentionName
	MentionBusinessRID
	MentionCompanyRID
)

// Mention is one structured entity reference produced by the API's NLP pass.
// Entries are polymorphic: each carries exactly one identifying attribute in
// practice, but nothing upstream guarantees it.
type Mention struct {
	Symbol      string `json:"symbol,omitempty"`
	Name        string `json:"name,omitempty"`
	BusinessRID string `json:"business_rid,omitempty"`
	CompanyRID  string `json:"company_rid,omitempty"`
}

// Kind reports the attribute this mention resolves by. Priority is fixed:
// symbol, then name, then business rid, then company rid. Only the first
// present attribute counts, even when a later one would also be set.
func (m Mention) Kind() MentionKind {
	switch {
	case m.Symbol != "":
		return MentionSymbol
	case m.Name != "":
		return MentionName
	case m.BusinessRID != "":
		return MentionBusinessRID
	case m.CompanyRID != "":
		return MentionCompanyRID
	default:
		return MentionUnknown
	}
}

// Document is one retrieved search result. Which text fields are populated
// varies by category; absent fields unmarshal to empty strings.
type Document struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Description string    `json:"description"`
	Body        string    `json:"body"`
	Summary     string    `json:"summary"`
	Text        string    `json:"text"`
	Publisher   string    `json:"publisher"`
	Author      string    `json:"author"`
	Section     string    `json:"section"`
	ContentURL  string    `json:"content_url"`
	CreatedAt   string    `json:"created_at"`
	Polarity    Polarity  `json:"polarity"`
	Securities  []Mention `json:"securities"`
	Entities    []Mention `json:"entities"`
	NamedEnts   []Mention `json:"named_entities"`
}

// MentionLists returns the three alternative mention fields in scan order.
// Nil lists are fine; callers just range over them.
func (d Document) MentionLists() [][]Mention {
	return [][]Mention{d.Securities, d.Entities, d.NamedEnts}
}

// TextFields returns the text-bearing fields in haystack order.
func (d Document) TextFields() []string {
	return []string{d.Title, d.Content, d.Description, d.Body, d.Summary, d.Text}
}
