package deepsearch

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// DocumentQuery describes one news search. Dates are YYYYMMDD; the optional
// time bounds are full timestamps and apply as a created_at range on top of
// the date window.
type DocumentQuery struct {
	Keyword    string   `validate:"-"`
	Sections   []string `validate:"dive,alpha"`
	Publishers []string `validate:"-"`
	DateFrom   string   `validate:"omitempty,len=8,number"`
	DateTo     string   `validate:"omitempty,len=8,number"`
	TimeFrom   string   `validate:"-"`
	TimeTo     string   `validate:"-"`
	Count      int      `validate:"min=1,max=100"`
	Page       int      `validate:"min=1"`
}

// Build renders the DocumentSearch expression. The news category is fixed;
// an empty section list searches all sections.
func (q DocumentQuery) Build() (string, error) {
	if err := validate.Struct(q); err != nil {
		return "", fmt.Errorf("invalid document query: %w", err)
	}

	parts := []string{`["news"]`, sectionList(q.Sections)}

	var conds []string
	if kw := strings.TrimSpace(q.Keyword); kw != "" {
		conds = append(conds, kw)
	}
	if len(q.Publishers) > 0 {
		conds = append(conds, publisherCondition(q.Publishers))
	}
	if q.TimeFrom != "" && q.TimeTo != "" {
		conds = append(conds, fmt.Sprintf(`created_at:[\"%s\" to \"%s\"]`, q.TimeFrom, q.TimeTo))
	}
	if len(conds) > 0 {
		parts = append(parts, `"`+strings.Join(conds, " and ")+`"`)
	}

	if q.DateFrom != "" && q.DateTo != "" {
		parts = append(parts, "date_from="+q.DateFrom, "date_to="+q.DateTo)
	}
	parts = append(parts, fmt.Sprintf("count=%d", q.Count), fmt.Sprintf("page=%d", q.Page))

	return "DocumentSearch(" + strings.Join(parts, ", ") + ")", nil
}

func sectionList(sections []string) string {
	if len(sections) == 0 {
		return `[""]`
	}
	quoted := make([]string, len(sections))
	for i, s := range sections {
		quoted[i] = `"` + s + `"`
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// publisherCondition renders the publisher.raw filter clause, for example
// publisher.raw :('매일경제' or '한국경제').
func publisherCondition(publishers []string) string {
	quoted := make([]string, len(publishers))
	for i, p := range publishers {
		quoted[i] = "'" + p + "'"
	}
	return "publisher.raw :(" + strings.Join(quoted, " or ") + ")"
}
