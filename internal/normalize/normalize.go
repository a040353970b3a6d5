// Package normalize turns the JSON shapes served for the table view into ordered rows.
package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Normalize converts a payload into rows. It fails with *FormatError when the payload
// matches no known shape; no rows are returned in that case.
func Normalize(payload []byte) ([]*Row, error) {
	shape := Classify(payload)

	var (
		rows []*Row
		err  error
	)
	switch shape {
	case ShapeArray:
		rows, err = decodeRows(bytes.TrimSpace(payload))
	case ShapeValueArray:
		rows, err = valueRows(payload)
	case ShapeTimeSeries:
		rows, err = timeSeriesRows(payload)
	case ShapeFeatureCollection:
		rows, err = featureRows(payload)
	default:
		return nil, &FormatError{Payload: payload}
	}
	if err != nil {
		return nil, &FormatError{Payload: payload, Err: fmt.Errorf("decode %s: %w", shape, err)}
	}
	return rows, nil
}

func valueRows(payload []byte) ([]*Row, error) {
	var obj struct {
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(payload, &obj); err != nil {
		return nil, err
	}
	return decodeRows(obj.Value)
}

func featureRows(payload []byte) ([]*Row, error) {
	var fc struct {
		Features []map[string]json.RawMessage `json:"features"`
	}
	if err := json.Unmarshal(payload, &fc); err != nil {
		return nil, err
	}

	rows := make([]*Row, 0, len(fc.Features))
	for _, feature := range fc.Features {
		props, ok := feature["properties"]
		if !ok {
			rows = append(rows, NewRow())
			continue
		}
		row, err := decodeObject(props)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
