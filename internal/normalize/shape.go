package normalize

import (
	"bytes"
	"encoding/json"
)

// Shape is the detected variant of a payload.
type Shape int

const (
	ShapeUnrecognized Shape = iota
	ShapeArray
	ShapeValueArray
	ShapeTimeSeries
	ShapeFeatureCollection
)

func (s Shape) String() string {
	switch s {
	case ShapeArray:
		return "array"
	case ShapeValueArray:
		return "value-array"
	case ShapeTimeSeries:
		return "usgs-time-series"
	case ShapeFeatureCollection:
		return "feature-collection"
	default:
		return "unrecognized"
	}
}

// Classify detects the payload variant. Checks run in order and the first match wins:
// array, object with a "value" array, object with a "value.timeSeries" array,
// object with a "features" array.
func Classify(payload []byte) Shape {
	trimmed := bytes.TrimSpace(payload)
	if !json.Valid(trimmed) {
		return ShapeUnrecognized
	}
	if isArray(trimmed) {
		return ShapeArray
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return ShapeUnrecognized
	}

	if value, ok := obj["value"]; ok {
		if isArray(value) {
			return ShapeValueArray
		}
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(value, &inner); err == nil && isArray(inner["timeSeries"]) {
			return ShapeTimeSeries
		}
	}

	if isArray(obj["features"]) {
		return ShapeFeatureCollection
	}
	return ShapeUnrecognized
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
