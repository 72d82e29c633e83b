package match

import "github.com/beaten-by-the-market/krx-radar/internal/models"

// Result is the outcome of matching one document against an Index.
type Result struct {
	// Matched is true when any mention entry hit a known identifier, even
	// one whose roster row has no display name.
	Matched bool
	// Names holds the resolved display names, de-duplicated, in the order
	// they were first resolved. Empty resolutions are dropped.
	Names []string
}

// Match scans every mention list on the document. Missing or nil lists are
// skipped, as are entries with no recognized attribute; neither is an error.
func (ix *Index) Match(doc models.Document) Result {
	var r Result
	var seen map[string]struct{}

	for _, list := range doc.MentionLists() {
		for _, m := range list {
			name, hit := ix.resolve(m)
			if !hit {
				continue
			}
			r.Matched = true
			if name == "" {
				continue
			}
			if seen == nil {
				seen = make(map[string]struct{})
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			r.Names = append(r.Names, name)
		}
	}

	return r
}

// resolve tries the single identifying attribute the entry carries. A symbol
// entry falls back from the exchange symbol set to the NICE symbol set; no
// other cross-attribute fallback exists, so an entry whose symbol is unknown
// does not match even if its name would have.
func (ix *Index) resolve(m models.Mention) (string, bool) {
	switch m.Kind() {
	case models.MentionSymbol:
		if _, ok := ix.symbols[m.Symbol]; ok {
			return ix.nameBySymbol[m.Symbol], true
		}
		if _, ok := ix.niceSymbols[m.Symbol]; ok {
			return ix.nameByNICE[m.Symbol], true
		}
	case models.MentionName:
		if _, ok := ix.names[m.Name]; ok {
			return m.Name, true
		}
	case models.MentionBusinessRID:
		id := NormalizeRID(m.BusinessRID)
		if _, ok := ix.businessIDs[id]; ok {
			return ix.nameByBusinessID[id], true
		}
	case models.MentionCompanyRID:
		id := NormalizeRID(m.CompanyRID)
		if _, ok := ix.companyIDs[id]; ok {
			return ix.nameByCompanyID[id], true
		}
	}
	return "", false
}
