package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Tonypepproni/Tidal-Estuary/internal/common"
)

const notAvailable = "N/A"

// Row keys emitted for USGS time-series payloads, in column order.
const (
	KeySiteName      = "siteName"
	KeySiteCode      = "siteCode"
	KeyLatitude      = "latitude"
	KeyLongitude     = "longitude"
	KeyVariableCount = "variableCount"
	KeyTemperature   = "temperature"
	KeyPH            = "ph"
	KeyOxygen        = "oxygen"
	KeySalinity      = "salinity"
	KeyElevation     = "elevation"
	KeyLastUpdate    = "lastUpdate"
)

// recognized maps row keys to the substring searched for in variable names.
var recognized = []struct {
	key  string
	term string
}{
	{KeyTemperature, "temperature"},
	{KeyPH, "ph"},
	{KeyOxygen, "oxygen"},
	{KeySalinity, "salinity"},
	{KeyElevation, "elevation"},
}

// VariableInfo summarizes one series of a site.
type VariableInfo struct {
	Name       string
	Value      string
	Unit       string
	Timestamp  string
	Qualifiers string
}

// SiteSummary aggregates every series reported for one site code.
type SiteSummary struct {
	Name      string
	Code      string
	Latitude  float64
	Longitude float64
	Variables []VariableInfo
}

// lenientFloat accepts numbers and numeric strings; anything else is NaN.
type lenientFloat float64

func (f *lenientFloat) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		s = string(b)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		v = math.NaN()
	}
	*f = lenientFloat(v)
	return nil
}

// lenientText accepts strings and renders other scalars as their JSON text.
type lenientText string

func (t *lenientText) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = lenientText(s)
		return nil
	}
	if string(b) == "null" {
		*t = ""
		return nil
	}
	*t = lenientText(b)
	return nil
}

type usgsResponse struct {
	Value struct {
		TimeSeries []usgsSeries `json:"timeSeries"`
	} `json:"value"`
}

type usgsSeries struct {
	Name       string `json:"name"`
	SourceInfo struct {
		SiteName string `json:"siteName"`
		SiteCode []struct {
			Value lenientText `json:"value"`
		} `json:"siteCode"`
		GeoLocation struct {
			GeogLocation struct {
				Latitude  *lenientFloat `json:"latitude"`
				Longitude *lenientFloat `json:"longitude"`
			} `json:"geogLocation"`
		} `json:"geoLocation"`
	} `json:"sourceInfo"`
	Variable struct {
		VariableName string `json:"variableName"`
		Unit         struct {
			UnitCode string `json:"unitCode"`
		} `json:"unit"`
	} `json:"variable"`
	Values []struct {
		Value []struct {
			Value      lenientText   `json:"value"`
			Qualifiers []lenientText `json:"qualifiers"`
			DateTime   string        `json:"dateTime"`
		} `json:"value"`
	} `json:"values"`
}

func (s usgsSeries) siteCode() string {
	if len(s.SourceInfo.SiteCode) == 0 {
		return ""
	}
	return string(s.SourceInfo.SiteCode[0].Value)
}

func (s usgsSeries) variable() VariableInfo {
	info := VariableInfo{
		Name: stripMarkup(s.Variable.VariableName),
		Unit: s.Variable.Unit.UnitCode,
	}
	if len(s.Values) == 0 || len(s.Values[0].Value) == 0 {
		return info
	}
	latest := s.Values[0].Value[len(s.Values[0].Value)-1]
	info.Value = string(latest.Value)
	info.Timestamp = latest.DateTime

	quals := make([]string, 0, len(latest.Qualifiers))
	for _, q := range latest.Qualifiers {
		quals = append(quals, string(q))
	}
	info.Qualifiers = strings.Join(quals, ",")
	return info
}

func coordinate(f *lenientFloat) float64 {
	if f == nil {
		return math.NaN()
	}
	return float64(*f)
}

// summarizeTimeSeries groups series by site code, keeping first-appearance order.
func summarizeTimeSeries(series []usgsSeries) []SiteSummary {
	order := make([]string, 0)
	bySite := make(map[string]*SiteSummary)

	for _, s := range series {
		code := s.siteCode()
		summary, ok := bySite[code]
		if !ok {
			summary = &SiteSummary{
				Name:      s.SourceInfo.SiteName,
				Code:      code,
				Latitude:  coordinate(s.SourceInfo.GeoLocation.GeogLocation.Latitude),
				Longitude: coordinate(s.SourceInfo.GeoLocation.GeogLocation.Longitude),
			}
			bySite[code] = summary
			order = append(order, code)
		}
		summary.Variables = append(summary.Variables, s.variable())
	}

	out := make([]SiteSummary, 0, len(order))
	for _, code := range order {
		out = append(out, *bySite[code])
	}
	return out
}

// Find returns the first variable whose name contains term, ignoring case.
func (s SiteSummary) Find(term string) (VariableInfo, bool) {
	for _, v := range s.Variables {
		if common.ContainsFold(v.Name, term) {
			return v, true
		}
	}
	return VariableInfo{}, false
}

// Row projects the summary onto the table columns.
func (s SiteSummary) Row() *Row {
	row := NewRow()
	row.Set(KeySiteName, s.Name)
	row.Set(KeySiteCode, s.Code)
	row.Set(KeyLatitude, fixedOrNA(s.Latitude, 4))
	row.Set(KeyLongitude, fixedOrNA(s.Longitude, 4))
	row.Set(KeyVariableCount, len(s.Variables))

	for _, r := range recognized {
		row.Set(r.key, measurementText(s, r.term))
	}

	lastUpdate := notAvailable
	if temp, ok := s.Find("temperature"); ok && temp.Timestamp != "" {
		lastUpdate = datePortion(temp.Timestamp)
	}
	row.Set(KeyLastUpdate, lastUpdate)
	return row
}

func measurementText(s SiteSummary, term string) string {
	v, ok := s.Find(term)
	if !ok || v.Value == "" {
		return notAvailable
	}
	return strings.TrimSpace(v.Value + " " + v.Unit)
}

func fixedOrNA(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return notAvailable
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

// datePortion returns the calendar date of an ISO timestamp in its own offset.
func datePortion(ts string) string {
	if t, err := common.ParseTimestamp(ts); err == nil {
		return t.Format("2006-01-02")
	}
	if i := strings.IndexAny(ts, "T "); i > 0 {
		return ts[:i]
	}
	return ts
}

func timeSeriesRows(payload []byte) ([]*Row, error) {
	var resp usgsResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, err
	}

	summaries := summarizeTimeSeries(resp.Value.TimeSeries)
	rows := make([]*Row, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, s.Row())
	}
	return rows, nil
}
