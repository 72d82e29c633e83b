package roster

import (
	"strings"

	"github.com/beaten-by-the-market/krx-radar/internal/models"
)

// Selection narrows the roster to the companies a search should match
// against. Empty fields mean no restriction; filters that are set must all
// pass.
type Selection struct {
	Markets []models.Market
	Names   []string
	Codes   []string
}

// IsZero reports whether the selection restricts nothing.
func (sel Selection) IsZero() bool {
	return len(sel.Markets) == 0 && len(sel.Names) == 0 && len(sel.Codes) == 0
}

// Apply filters entities down to the selection. Codes are compared against
// the digits of the entity symbol after the exchange prefix, so "5930",
// "005930" and "KRX:005930" all select the same company.
func (sel Selection) Apply(entities []models.Entity) []models.Entity {
	if sel.IsZero() {
		return entities
	}

	markets := make(map[models.Market]struct{}, len(sel.Markets))
	for _, m := range sel.Markets {
		markets[m] = struct{}{}
	}
	names := make(map[string]struct{}, len(sel.Names))
	for _, n := range sel.Names {
		if n = strings.TrimSpace(n); n != "" {
			names[n] = struct{}{}
		}
	}
	codes := make(map[string]struct{}, len(sel.Codes))
	for _, c := range sel.Codes {
		if c = NormalizeCode(c); c != "" {
			codes[c] = struct{}{}
		}
	}

	var out []models.Entity
	for _, e := range entities {
		if len(markets) > 0 {
			if _, ok := markets[e.Market]; !ok {
				continue
			}
		}
		if len(names) > 0 {
			if _, ok := names[e.Name]; !ok {
				continue
			}
		}
		if len(codes) > 0 {
			if _, ok := codes[NormalizeCode(BareCode(e.Symbol))]; !ok {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}

// NormalizeCode canonicalizes a user-entered stock code: trims whitespace,
// drops a decimal tail left over from spreadsheet exports, and zero-fills
// to six digits.
func NormalizeCode(raw string) string {
	code := strings.TrimSpace(raw)
	if i := strings.IndexByte(code, '.'); i >= 0 {
		code = code[:i]
	}
	if code == "" {
		return ""
	}
	for len(code) < 6 {
		code = "0" + code
	}
	return code
}

// BareCode strips the exchange prefix from a symbol: "KRX:005930" becomes
// "005930".
func BareCode(symbol string) string {
	if i := strings.IndexByte(symbol, ':'); i >= 0 {
		return symbol[i+1:]
	}
	return symbol
}
