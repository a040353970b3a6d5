package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Tonypepproni/Tidal-Estuary/internal/common"
	"github.com/Tonypepproni/Tidal-Estuary/internal/timeline"
)

const (
	fieldDatetime = "Datetime"
	fieldSite     = "Site"
)

// DecodeReadings converts the /data array into readings, keeping delivery order.
// Fields other than Datetime and Site are measurements; values that are not numbers become nil.
func DecodeReadings(body []byte) ([]timeline.Reading, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errNotArray
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	var records []map[string]any
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode readings: %w", err)
	}

	readings := make([]timeline.Reading, 0, len(records))
	for _, rec := range records {
		readings = append(readings, toReading(rec))
	}
	return readings, nil
}

func toReading(rec map[string]any) timeline.Reading {
	r := timeline.Reading{Values: make(map[string]*float64, len(rec))}

	for key, raw := range rec {
		switch key {
		case fieldDatetime:
			r.RawDatetime = scalarString(raw)
			if ts, err := common.ParseTimestamp(r.RawDatetime); err == nil {
				r.Datetime = ts
			}
		case fieldSite:
			r.Site = scalarString(raw)
		default:
			r.Values[key] = number(raw)
		}
	}
	return r
}

func scalarString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

func number(v any) *float64 {
	var s string
	switch t := v.(type) {
	case json.Number:
		s = t.String()
	case string:
		s = strings.TrimSpace(t)
	default:
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
