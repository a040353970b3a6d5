package normalize

import (
	"encoding/json"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// PlaceholderColspan is the column span of the "no data" row. It does not follow the
// detected column count.
const PlaceholderColspan = 10

// PlaceholderText is shown when there are no rows.
const PlaceholderText = "No data available"

// columnLabels maps known keys to display labels.
var columnLabels = map[string]string{
	KeySiteName:      "Site Name",
	KeySiteCode:      "Site Code",
	KeyLatitude:      "Latitude",
	KeyLongitude:     "Longitude",
	KeyVariableCount: "Variables",
	KeyTemperature:   "Temperature",
	KeyPH:            "pH",
	KeyOxygen:        "Dissolved Oxygen",
	KeySalinity:      "Salinity",
	KeyElevation:     "Elevation",
	KeyLastUpdate:    "Last Update",
	"site_no":        "Site Number",
	"station_nm":     "Station Name",
	"Datetime":       "Date/Time",
}

// Column is one displayed column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Placeholder is the single row rendered for an empty table.
type Placeholder struct {
	Text    string `json:"text"`
	Colspan int    `json:"colspan"`
}

// Table is the rendered table view.
type Table struct {
	Columns     []Column     `json:"columns"`
	Rows        [][]string   `json:"rows"`
	Placeholder *Placeholder `json:"placeholder,omitempty"`
}

// Label returns the display label for a key.
func Label(key string) string {
	if l, ok := columnLabels[key]; ok {
		return l
	}
	return capitalize(key)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// BuildTable derives columns from the first row and renders every cell.
func BuildTable(rows []*Row) Table {
	if len(rows) == 0 {
		return Table{
			Columns:     []Column{},
			Rows:        [][]string{},
			Placeholder: &Placeholder{Text: PlaceholderText, Colspan: PlaceholderColspan},
		}
	}

	keys := rows[0].Keys()
	cols := make([]Column, 0, len(keys))
	for _, k := range keys {
		cols = append(cols, Column{Key: k, Label: Label(k)})
	}

	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, 0, len(keys))
		for _, k := range keys {
			v, _ := row.Get(k)
			cells = append(cells, Cell(v))
		}
		out = append(out, cells)
	}
	return Table{Columns: cols, Rows: out}
}

// Cell renders a value for a table cell. Missing and falsy values (null, false, 0, "")
// render as the empty string.
func Cell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if !t {
			return ""
		}
		return "true"
	case json.Number:
		if f, err := t.Float64(); err == nil && f == 0 {
			return ""
		}
		return t.String()
	case int:
		if t == 0 {
			return ""
		}
		return strconv.Itoa(t)
	case float64:
		if t == 0 {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
