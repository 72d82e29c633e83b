package deepsearch

import (
	"encoding/json"
	"strconv"
)

// frame is a columnar result set: column name to cell values. Numeric cells
// decode as json.Number so integer-looking codes survive as strings.
type frame map[string][]json.Number

// rawFrame matches the wire shape before per-cell normalization.
type rawFrame map[string][]any

// frameFrom scans the pods for a columnar data frame.
func frameFrom(pods []pod) (frame, error) {
	for _, p := range pods {
		if len(p.Content.Data) == 0 {
			continue
		}
		var raw rawFrame
		if err := json.Unmarshal(p.Content.Data, &raw); err != nil {
			continue
		}
		if len(raw) == 0 {
			continue
		}
		f := make(frame, len(raw))
		usable := false
		for col, cells := range raw {
			vals := make([]json.Number, len(cells))
			for i, cell := range cells {
				vals[i] = cellNumber(cell)
			}
			f[col] = vals
			if len(cells) > 0 {
				usable = true
			}
		}
		if usable {
			return f, nil
		}
	}
	return nil, errNoFramePod
}

func cellNumber(cell any) json.Number {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return json.Number(v)
	case float64:
		return json.Number(strconv.FormatFloat(v, 'f', -1, 64))
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// rows reports the frame's row count, taken from its longest column.
func (f frame) rows() int {
	n := 0
	for _, col := range f {
		if len(col) > n {
			n = len(col)
		}
	}
	return n
}

// str returns the cell at row i of col as a string, empty when absent.
func (f frame) str(col string, i int) string {
	cells, ok := f[col]
	if !ok || i >= len(cells) {
		return ""
	}
	return cells[i].String()
}

// num returns the cell at row i of col as a float, zero when absent or
// unparseable.
func (f frame) num(col string, i int) float64 {
	cells, ok := f[col]
	if !ok || i >= len(cells) {
		return 0
	}
	v, err := cells[i].Float64()
	if err != nil {
		return 0
	}
	return v
}
