package normalize

import (
	"strings"

	"golang.org/x/net/html"
)

// stripMarkup removes tags from a USGS variable name and decodes entities,
// e.g. "Temperature, water, &#176;C" -> "Temperature, water, °C".
func stripMarkup(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}
