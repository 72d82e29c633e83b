// Package match resolves entity mentions in retrieved documents against a
// roster of listed companies.
package match

import (
	"strings"

	"github.com/beaten-by-the-market/krx-radar/internal/models"
)

// Index provides constant-time membership tests and identifier-to-name
// resolution over one roster subset. Build a fresh Index per filter run;
// it is read-only afterwards.
type Index struct {
	symbols     map[string]struct{}
	niceSymbols map[string]struct{}
	names       map[string]struct{}
	businessIDs map[string]struct{}
	companyIDs  map[string]struct{}

	nameBySymbol     map[string]string
	nameByNICE       map[string]string
	nameByBusinessID map[string]string
	nameByCompanyID  map[string]string
}

// NewIndex builds the lookup structures in one pass over the entities.
// Empty identifier values contribute nothing. When two entities carry the
// same identifier the later one wins; a well-formed roster never has
// duplicates, so the collision is not reported.
func NewIndex(entities []models.Entity) *Index {
	ix := &Index{
		symbols:     make(map[string]struct{}, len(entities)),
		niceSymbols: make(map[string]struct{}, len(entities)),
		names:       make(map[string]struct{}, len(entities)),
		businessIDs: make(map[string]struct{}, len(entities)),
		companyIDs:  make(map[string]struct{}, len(entities)),

		nameBySymbol:     make(map[string]string, len(entities)),
		nameByNICE:       make(map[string]string, len(entities)),
		nameByBusinessID: make(map[string]string, len(entities)),
		nameByCompanyID:  make(map[string]string, len(entities)),
	}

	for _, e := range entities {
		if e.Symbol != "" {
			ix.symbols[e.Symbol] = struct{}{}
			ix.nameBySymbol[e.Symbol] = e.Name
		}
		if e.SymbolNICE != "" {
			ix.niceSymbols[e.SymbolNICE] = struct{}{}
			ix.nameByNICE[e.SymbolNICE] = e.Name
		}
		if e.Name != "" {
			ix.names[e.Name] = struct{}{}
		}
		if e.BusinessRID != "" {
			ix.businessIDs[e.BusinessRID] = struct{}{}
			ix.nameByBusinessID[e.BusinessRID] = e.Name
		}
		if e.CompanyRID != "" {
			ix.companyIDs[e.CompanyRID] = struct{}{}
			ix.nameByCompanyID[e.CompanyRID] = e.Name
		}
	}

	return ix
}

// Len reports how many distinct symbols the index covers.
func (ix *Index) Len() int {
	return len(ix.symbols)
}

// NormalizeRID strips the hyphen separators registration numbers are
// usually written with; the roster stores bare digits.
func NormalizeRID(raw string) string {
	return strings.ReplaceAll(raw, "-", "")
}
