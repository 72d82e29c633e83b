// Package issue tags documents with topic keyword clauses.
//
// A filter is an ordered list of clauses joined by OR. Each clause is either
// a bare term or a parenthesized conjunction like "(수주 and 체결)" whose
// terms must all appear. Matching is plain case-insensitive substring
// containment with no word-boundary awareness: a term inside a longer,
// unrelated word still counts. That imprecision is part of the contract.
package issue

import "strings"

const connective = " and "

// Clause is one parsed filter term. The zero value matches nothing; build
// clauses with ParseClause or ParseQuery.
type Clause struct {
	raw   string
	terms []string
}

// ParseClause parses a single clause. The original text (trimmed) is kept
// for reporting; terms are lower-cased for matching.
func ParseClause(raw string) Clause {
	c := Clause{raw: strings.TrimSpace(raw)}

	body := c.raw
	if strings.HasPrefix(body, "(") && strings.HasSuffix(body, ")") {
		inner := body[1 : len(body)-1]
		if strings.Contains(inner, connective) {
			for _, part := range strings.Split(inner, connective) {
				c.terms = append(c.terms, strings.ToLower(strings.TrimSpace(part)))
			}
			return c
		}
		c.terms = []string{strings.ToLower(inner)}
		return c
	}

	c.terms = []string{strings.ToLower(body)}
	return c
}

// ParseQuery splits a disjunctive filter expression such as
// "인수 or 합병 or (계약 and 체결)" into its clauses, in order.
func ParseQuery(expr string) []Clause {
	if strings.TrimSpace(expr) == "" {
		return nil
	}

	parts := strings.Split(expr, " or ")
	clauses := make([]Clause, 0, len(parts))
	for _, part := range parts {
		clauses = append(clauses, ParseClause(part))
	}
	return clauses
}

// String returns the clause exactly as it was supplied.
func (c Clause) String() string {
	return c.raw
}

// matches reports whether every term appears in the lower-cased haystack.
func (c Clause) matches(haystack string) bool {
	if len(c.terms) == 0 {
		return false
	}
	for _, t := range c.terms {
		if !strings.Contains(haystack, t) {
			return false
		}
	}
	return true
}
