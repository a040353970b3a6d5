package timeline

import (
	"time"
)

// DefaultWindowSize is the number of readings plotted per chart.
const DefaultWindowSize = 200

// Card is the rendered state of one summary card.
type Card struct {
	Label   string `json:"label"`
	Value   string `json:"value"`
	Unit    string `json:"unit"`
	Color   string `json:"color"`
	Present bool   `json:"present"`
}

// ChartSeries is the window of one channel to plot.
// Values entries are nil where the reading has no value for the channel.
type ChartSeries struct {
	ID     string     `json:"id"`
	Title  string     `json:"title"`
	Unit   string     `json:"unit"`
	Color  string     `json:"color"`
	Labels []string   `json:"labels"`
	Values []*float64 `json:"values"`
}

// ViewModel is everything the view surface displays for a state.
type ViewModel struct {
	Readiness   Readiness     `json:"readiness"`
	Error       string        `json:"error,omitempty"`
	Playing     bool          `json:"playing"`
	Filter      string        `json:"filter"`
	Options     []SiteOption  `json:"options"`
	RecordCount int           `json:"recordCount"`
	SliderMax   int           `json:"sliderMax"`
	Index       int           `json:"index"`
	CurrentTime time.Time     `json:"currentTime"`
	TimeLabel   string        `json:"timeLabel"`
	LastUpdate  string        `json:"lastUpdate"`
	Cards       []Card        `json:"cards,omitempty"`
	Charts      []ChartSeries `json:"charts,omitempty"`
}

// ViewOptions tune DeriveViewModel.
type ViewOptions struct {
	WindowSize int
	Location   *time.Location
}

func (o ViewOptions) normalized() ViewOptions {
	if o.WindowSize <= 0 {
		o.WindowSize = DefaultWindowSize
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	return o
}

// SiteOptions builds the selector entries: "all" followed by every known site.
func SiteOptions(sites []Site) []SiteOption {
	opts := make([]SiteOption, 0, len(sites)+1)
	opts = append(opts, SiteOption{Value: AllSites, Label: "All Sites"})
	for _, site := range sites {
		opts = append(opts, SiteOption{Value: site.SiteNo, Label: SiteOptionLabel(site)})
	}
	return opts
}

// DeriveViewModel computes labels, cards and chart series from the state.
// It does not modify the state.
func DeriveViewModel(s *State, opts ViewOptions) ViewModel {
	opts = opts.normalized()

	vm := ViewModel{
		Readiness:   s.Readiness,
		Filter:      s.Filter(),
		Options:     SiteOptions(s.Sites()),
		RecordCount: s.Len(),
		SliderMax:   max(0, s.Len()-1),
		Index:       s.Index(),
		Playing:     s.Playing,
	}

	if s.Readiness == ReadinessError {
		vm.Error = s.ErrMsg
		return vm
	}
	if s.Readiness != ReadinessLoaded {
		return vm
	}

	current, ok := s.Current()
	if !ok {
		vm.Index = 0
		vm.TimeLabel = "No data"
		vm.Charts = deriveCharts(nil, opts.Location)
		return vm
	}

	vm.CurrentTime = current.Datetime
	vm.TimeLabel = formatTimeLabel(current, opts.Location)
	if current.Site != "" {
		vm.TimeLabel += " (Site: " + current.Site + ")"
	}

	filtered := s.Filtered()
	vm.LastUpdate = formatTimeLabel(filtered[len(filtered)-1], opts.Location)
	vm.Cards = deriveCards(current)
	vm.Charts = deriveCharts(s.Window(opts.WindowSize), opts.Location)

	return vm
}

func deriveCards(r Reading) []Card {
	cards := make([]Card, 0, len(Cards))
	for _, spec := range Cards {
		card := Card{Label: spec.Label, Color: spec.Color, Value: NotAvailable}
		if v := r.Value(spec.Key); v != nil {
			card.Value = FormatFixed(*v, 2)
			card.Unit = spec.Unit
			card.Present = true
		}
		cards = append(cards, card)
	}
	return cards
}

func deriveCharts(window []Reading, loc *time.Location) []ChartSeries {
	labels := make([]string, len(window))
	for i, r := range window {
		labels[i] = formatChartLabel(r, loc)
	}

	series := make([]ChartSeries, 0, len(Charts))
	for _, spec := range Charts {
		values := make([]*float64, len(window))
		for i, r := range window {
			values[i] = r.Value(spec.Key)
		}
		series = append(series, ChartSeries{
			ID:     spec.ID,
			Title:  spec.Title,
			Unit:   spec.Unit,
			Color:  spec.Color,
			Labels: labels,
			Values: values,
		})
	}
	return series
}
