package timeline

import (
	"time"
)

// Readiness describes whether the dataset has been loaded.
type Readiness string

const (
	ReadinessUnloaded Readiness = "unloaded"
	ReadinessLoaded   Readiness = "loaded"
	ReadinessError    Readiness = "error"
)

// AllSites is the filter value that selects every reading.
const AllSites = "all"

// Reading is one timestamped multi-channel observation.
// Values maps a measurement name (e.g. "Water Temperature (°C)") to a nullable number.
type Reading struct {
	Datetime    time.Time           `json:"datetime"`
	RawDatetime string              `json:"-"` // as delivered; used when Datetime could not be parsed
	Site        string              `json:"site,omitempty"`
	Values      map[string]*float64 `json:"values"`
}

// Value returns the reading's value for a measurement, or nil when absent.
func (r Reading) Value(key string) *float64 {
	if r.Values == nil {
		return nil
	}
	return r.Values[key]
}

// Site is the metadata record of a monitoring station.
type Site struct {
	SiteNo    string  `json:"site_no"`
	StationNm string  `json:"station_nm"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SiteOption is one entry of the site selector.
type SiteOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
