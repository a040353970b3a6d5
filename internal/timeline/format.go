package timeline

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

const (
	timeLabelLayout  = "1/2/2006, 3:04:05 PM"
	chartLabelLayout = "Jan 2, 03:04 PM"
)

// NotAvailable is shown for missing card values.
const NotAvailable = "N/A"

// FormatFixed renders v with a fixed number of decimals.
// Non-finite values render as NotAvailable.
func FormatFixed(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NotAvailable
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

// SiteOptionLabel renders "Station (40.712°N, 74.006°W)".
func SiteOptionLabel(site Site) string {
	return fmt.Sprintf("%s (%s°N, %s°W)",
		site.StationNm,
		FormatFixed(site.Latitude, 3),
		FormatFixed(math.Abs(site.Longitude), 3),
	)
}

func formatTimeLabel(r Reading, loc *time.Location) string {
	if r.Datetime.IsZero() {
		return r.RawDatetime
	}
	return r.Datetime.In(loc).Format(timeLabelLayout)
}

func formatChartLabel(r Reading, loc *time.Location) string {
	if r.Datetime.IsZero() {
		return r.RawDatetime
	}
	return r.Datetime.In(loc).Format(chartLabelLayout)
}
