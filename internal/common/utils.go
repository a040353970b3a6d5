package common

import (
	"strings"
	"time"

	"github.com/relvacode/iso8601"
)

// fallbackLayouts cover timestamps without the ISO 'T' separator.
var fallbackLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ContainsFold reports whether sub is within s, ignoring case.
func ContainsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// ParseTimestamp parses ISO-8601 timestamps as delivered by USGS and the /data backend.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	ts, err := iso8601.ParseString(s)
	if err == nil {
		return ts, nil
	}
	for _, layout := range fallbackLayouts {
		if t, ferr := time.Parse(layout, s); ferr == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
