// Package aggregate rolls matched documents up into per-entity counts.
package aggregate

import "sort"

// Polarity labels as they arrive from the upstream sentiment model.
const (
	PolarityPositive = "긍정"
	PolarityNeutral  = "중립"
	PolarityNegative = "부정"
)

// Item is one document's contribution: the entity names it matched and its
// sentiment label. Empty or unrecognized labels fall into the Unlabeled
// bucket.
type Item struct {
	Names    []string
	Polarity string
}

// Row is the aggregate for one entity.
type Row struct {
	Name      string `json:"entity_name"`
	Total     int    `json:"total"`
	Positive  int    `json:"positive"`
	Neutral   int    `json:"neutral"`
	Negative  int    `json:"negative"`
	Unlabeled int    `json:"unlabeled"`
}

// PerEntity fans each item out to every entity it names and counts per
// entity by polarity. Rows are sorted by Total descending; ties keep the
// order entities were first seen in, so repeated runs over the same input
// produce identical output.
func PerEntity(items []Item) []Row {
	idx := make(map[string]int)
	var rows []Row

	for _, it := range items {
		for _, name := range it.Names {
			if name == "" {
				continue
			}
			i, ok := idx[name]
			if !ok {
				i = len(rows)
				idx[name] = i
				rows = append(rows, Row{Name: name})
			}
			rows[i].Total++
			switch it.Polarity {
			case PolarityPositive:
				rows[i].Positive++
			case PolarityNeutral:
				rows[i].Neutral++
			case PolarityNegative:
				rows[i].Negative++
			default:
				rows[i].Unlabeled++
			}
		}
	}

	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].Total > rows[b].Total
	})
	return rows
}
