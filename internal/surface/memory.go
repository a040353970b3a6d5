package surface

import (
	"errors"
	"sync"

	"github.com/Tonypepproni/Tidal-Estuary/internal/timeline"
)

var (
	// ErrNotFound is returned when a chart has not been constructed.
	ErrNotFound = errors.New("chart not constructed")
)

// Chart is the retained state of one constructed chart.
type Chart struct {
	Series timeline.ChartSeries `json:"series"`
	// Animate records how the last update was applied.
	Animate bool `json:"animate"`
	// Updates counts series replacements since construction.
	Updates int `json:"updates"`
}

// Snapshot is a copy of every region of the surface.
type Snapshot struct {
	Options     []timeline.SiteOption      `json:"options"`
	Texts       map[timeline.Region]string `json:"texts"`
	SliderMin   int                        `json:"sliderMin"`
	SliderMax   int                        `json:"sliderMax"`
	SliderValue int                        `json:"sliderValue"`
	Cards       []timeline.Card            `json:"cards"`
	ChartOrder  []string                   `json:"chartOrder"`
	Charts      map[string]Chart           `json:"charts"`
	Error       string                     `json:"error,omitempty"`
}

// Memory is a concurrency-safe retained view surface. The HTTP layer renders its snapshots.
type Memory struct {
	mu sync.RWMutex

	options     []timeline.SiteOption
	texts       map[timeline.Region]string
	sliderMin   int
	sliderMax   int
	sliderValue int
	cards       []timeline.Card
	chartOrder  []string
	charts      map[string]*Chart
	errMsg      string
}

// NewMemory creates an empty surface.
func NewMemory() *Memory {
	return &Memory{
		texts:  make(map[timeline.Region]string),
		charts: make(map[string]*Chart),
	}
}

// PopulateOptions replaces the site selector entries.
func (m *Memory) PopulateOptions(opts []timeline.SiteOption) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.options = append([]timeline.SiteOption(nil), opts...)
}

// SetText sets the text of one region.
func (m *Memory) SetText(region timeline.Region, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.texts[region] = text
}

// SetSliderRange sets the slider bounds.
func (m *Memory) SetSliderRange(min, max int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sliderMin, m.sliderMax = min, max
}

// SetSliderValue moves the slider.
func (m *Memory) SetSliderValue(v int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sliderValue = v
}

// RenderCards replaces the card area, clearing any error block.
func (m *Memory) RenderCards(cards []timeline.Card) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cards = append([]timeline.Card(nil), cards...)
	m.errMsg = ""
}

// UpsertChart constructs the chart on first use and replaces its series afterwards.
func (m *Memory) UpsertChart(series timeline.ChartSeries, animate bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.charts[series.ID]
	if !ok {
		m.charts[series.ID] = &Chart{Series: series, Animate: animate}
		m.chartOrder = append(m.chartOrder, series.ID)
		return
	}
	c.Series = series
	c.Animate = animate
	c.Updates++
}

// ShowError replaces the card area with an error block.
func (m *Memory) ShowError(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cards = nil
	m.errMsg = msg
}

// Chart returns a constructed chart.
func (m *Memory) Chart(id string) (Chart, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.charts[id]
	if !ok {
		return Chart{}, ErrNotFound
	}
	return *c, nil
}

// Snapshot copies the current surface state.
func (m *Memory) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := Snapshot{
		Options:     append([]timeline.SiteOption(nil), m.options...),
		Texts:       make(map[timeline.Region]string, len(m.texts)),
		SliderMin:   m.sliderMin,
		SliderMax:   m.sliderMax,
		SliderValue: m.sliderValue,
		Cards:       append([]timeline.Card(nil), m.cards...),
		ChartOrder:  append([]string(nil), m.chartOrder...),
		Charts:      make(map[string]Chart, len(m.charts)),
		Error:       m.errMsg,
	}
	for k, v := range m.texts {
		snap.Texts[k] = v
	}
	for id, c := range m.charts {
		snap.Charts[id] = *c
	}
	return snap
}
