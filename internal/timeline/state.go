package timeline

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned when a scrub index falls outside the filtered view.
var ErrIndexOutOfRange = errors.New("scrub index out of range")

// State is the explicit view state of one timeline viewer.
type State struct {
	Readiness Readiness
	ErrMsg    string
	Playing   bool

	dataset  []Reading
	filtered []Reading
	filter   string
	index    int

	sites     map[string]Site
	siteOrder []string
}

// NewState returns an unloaded state filtering on all sites.
func NewState() *State {
	return &State{
		Readiness: ReadinessUnloaded,
		filter:    AllSites,
		index:     -1,
		sites:     make(map[string]Site),
	}
}

// SetSites replaces the site lookup table.
func (s *State) SetSites(sites []Site) {
	s.sites = make(map[string]Site, len(sites))
	s.siteOrder = s.siteOrder[:0]
	for _, site := range sites {
		if _, dup := s.sites[site.SiteNo]; !dup {
			s.siteOrder = append(s.siteOrder, site.SiteNo)
		}
		s.sites[site.SiteNo] = site
	}
}

// Site returns metadata for a site number.
func (s *State) Site(siteNo string) (Site, bool) {
	site, ok := s.sites[siteNo]
	return site, ok
}

// Sites returns site metadata in the order delivered by the backend.
func (s *State) Sites() []Site {
	out := make([]Site, 0, len(s.siteOrder))
	for _, no := range s.siteOrder {
		out = append(out, s.sites[no])
	}
	return out
}

// SetDataset stores a freshly loaded dataset and marks the state loaded.
// The filtered view is not recomputed; call ApplyFilter afterwards.
func (s *State) SetDataset(readings []Reading) {
	s.dataset = readings
	s.Readiness = ReadinessLoaded
	s.ErrMsg = ""
}

// Fail moves the state to the error readiness with a user-visible message.
func (s *State) Fail(msg string) {
	s.Readiness = ReadinessError
	s.ErrMsg = msg
}

// Dataset returns the loaded readings in delivery order.
func (s *State) Dataset() []Reading { return s.dataset }

// Filtered returns the current filtered view.
func (s *State) Filtered() []Reading { return s.filtered }

// Filter returns the active site filter.
func (s *State) Filter() string {
	if s.filter == "" {
		return AllSites
	}
	return s.filter
}

// Index returns the scrub index, or -1 when the filtered view is empty.
func (s *State) Index() int { return s.index }

// Len returns the length of the filtered view.
func (s *State) Len() int { return len(s.filtered) }

// ApplyFilter recomputes the filtered view and resets the index to the latest reading.
func (s *State) ApplyFilter(site string) {
	if site == "" {
		site = AllSites
	}
	s.filter = site

	if site == AllSites {
		s.filtered = s.dataset
	} else {
		filtered := make([]Reading, 0, len(s.dataset))
		for _, r := range s.dataset {
			if r.Site == site {
				filtered = append(filtered, r)
			}
		}
		s.filtered = filtered
	}

	s.index = len(s.filtered) - 1
}

// SetIndex moves the scrub position.
func (s *State) SetIndex(i int) error {
	if i < 0 || i >= len(s.filtered) {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrIndexOutOfRange, i, len(s.filtered)-1)
	}
	s.index = i
	return nil
}

// StepBack moves one reading back. It reports false at the first reading.
func (s *State) StepBack() bool {
	if s.index <= 0 {
		return false
	}
	s.index--
	return true
}

// StepForward moves one reading forward. It reports false at the last reading.
func (s *State) StepForward() bool {
	if s.index >= len(s.filtered)-1 {
		return false
	}
	s.index++
	return true
}

// ShowLatest moves to the last reading of the filtered view.
func (s *State) ShowLatest() {
	s.index = len(s.filtered) - 1
}

// Advance is one play tick: forward by one, wrapping to 0 past the end.
func (s *State) Advance() {
	if len(s.filtered) == 0 {
		return
	}
	if s.index >= len(s.filtered)-1 {
		s.index = 0
		return
	}
	s.index++
}

// Current returns the reading at the scrub index.
func (s *State) Current() (Reading, bool) {
	if s.index < 0 || s.index >= len(s.filtered) {
		return Reading{}, false
	}
	return s.filtered[s.index], true
}

// Window returns the trailing slice of at most size readings ending at the scrub index.
func (s *State) Window(size int) []Reading {
	if s.index < 0 || len(s.filtered) == 0 {
		return nil
	}
	end := s.index + 1
	start := end - size
	if start < 0 {
		start = 0
	}
	return s.filtered[start:end]
}
