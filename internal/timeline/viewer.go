package timeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultPlayInterval is the period between play-mode advances.
const DefaultPlayInterval = 100 * time.Millisecond

// serverMessenger is implemented by errors whose payload explicitly signalled failure.
type serverMessenger interface {
	ServerMessage() string
}

// Viewer keeps the view surface consistent with one State.
// Every operation runs under a single lock, so play ticks and requests never interleave.
type Viewer struct {
	mu sync.Mutex

	id      uuid.UUID
	state   *State
	surface Surface
	source  Source
	sched   Scheduler
	log     *slog.Logger

	viewOpts     ViewOptions
	playInterval time.Duration

	chartsBuilt bool
	play        Task
	playGen     uint64
}

// Option configures a Viewer.
type Option func(*Viewer)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(v *Viewer) { v.log = l }
}

// WithWindowSize sets the number of readings plotted per chart.
func WithWindowSize(n int) Option {
	return func(v *Viewer) { v.viewOpts.WindowSize = n }
}

// WithLocation sets the time zone used for labels.
func WithLocation(loc *time.Location) Option {
	return func(v *Viewer) { v.viewOpts.Location = loc }
}

// WithPlayInterval sets the play-mode period.
func WithPlayInterval(d time.Duration) Option {
	return func(v *Viewer) { v.playInterval = d }
}

// NewViewer creates an unloaded viewer.
func NewViewer(source Source, surface Surface, sched Scheduler, opts ...Option) *Viewer {
	v := &Viewer{
		id:           uuid.New(),
		state:        NewState(),
		surface:      surface,
		source:       source,
		sched:        sched,
		log:          slog.Default(),
		playInterval: DefaultPlayInterval,
	}
	for _, opt := range opts {
		opt(v)
	}
	v.viewOpts = v.viewOpts.normalized()
	v.log = v.log.With("viewer", v.id.String())

	v.surface.PopulateOptions(SiteOptions(nil))
	v.surface.SetText(RegionPlayButton, "▶ Play")
	return v
}

// ID identifies this viewer instance in logs.
func (v *Viewer) ID() uuid.UUID { return v.id }

// Init starts both startup fetches independently and returns immediately.
func (v *Viewer) Init(ctx context.Context) {
	// Both loads log their own failures.
	go func() { _ = v.LoadSites(ctx) }()
	go func() { _ = v.LoadDataset(ctx) }()
}

// LoadSites fetches site metadata and fills the selector.
// Failure is soft: it is logged, returned, and the selector keeps only "all".
func (v *Viewer) LoadSites(ctx context.Context) error {
	sites, err := v.source.Sites(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()

	if err != nil {
		soft := &SoftError{Op: "load site information", Err: err}
		v.log.Error("failed to load site information", "error", err)
		v.surface.PopulateOptions(SiteOptions(nil))
		return soft
	}

	v.state.SetSites(sites)
	v.surface.PopulateOptions(SiteOptions(v.state.Sites()))
	v.log.Info("site information loaded", "sites", len(sites))
	return nil
}

// LoadDataset fetches the readings. On success the current filter is applied.
func (v *Viewer) LoadDataset(ctx context.Context) error {
	readings, err := v.source.Readings(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()

	if err != nil {
		var sm serverMessenger
		msg := fmt.Sprintf("Failed to load data: %v", err)
		if errors.As(err, &sm) {
			msg = sm.ServerMessage()
		}
		v.state.Fail(msg)
		v.surface.ShowError(msg)
		v.log.Error("failed to load dataset", "error", err)
		return err
	}

	v.state.SetDataset(readings)
	v.log.Info("dataset loaded", "readings", len(readings))
	v.applyFilter(v.state.Filter())
	return nil
}

// ApplyFilter selects a site (or AllSites) and resets the scrub index to the latest reading.
func (v *Viewer) ApplyFilter(site string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.applyFilter(site)
}

func (v *Viewer) applyFilter(site string) {
	v.state.ApplyFilter(site)
	if v.state.Readiness != ReadinessLoaded {
		return
	}

	vm := v.derive()
	v.surface.SetText(RegionRecordCount, fmt.Sprintf("%d", vm.RecordCount))
	v.surface.SetSliderRange(0, vm.SliderMax)
	v.apply(vm)

	if !v.chartsBuilt {
		for _, series := range vm.Charts {
			v.surface.UpsertChart(series, false)
		}
		v.chartsBuilt = true
	}
}

// SetScrubIndex moves to reading i of the filtered view.
func (v *Viewer) SetScrubIndex(i int) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.state.SetIndex(i); err != nil {
		return err
	}
	v.apply(v.derive())
	return nil
}

// StepBack moves one reading back; no-op at the first reading.
func (v *Viewer) StepBack() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.state.StepBack() {
		v.apply(v.derive())
	}
}

// StepForward moves one reading forward; no-op at the last reading.
func (v *Viewer) StepForward() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.state.StepForward() {
		v.apply(v.derive())
	}
}

// ShowLatest jumps to the last reading.
func (v *Viewer) ShowLatest() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.state.ShowLatest()
	v.apply(v.derive())
}

// TogglePlay starts or cancels the repeating advance and reports whether it is now playing.
func (v *Viewer) TogglePlay() (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.play != nil {
		v.stopPlay()
		return false, nil
	}

	v.playGen++
	gen := v.playGen
	task, err := v.sched.Every(v.playInterval, func() { v.tick(gen) })
	if err != nil {
		return false, fmt.Errorf("start play mode: %w", err)
	}

	v.play = task
	v.state.Playing = true
	v.surface.SetText(RegionPlayButton, "⏸ Pause")
	v.log.Debug("play mode started", "interval", v.playInterval)
	return true, nil
}

// Stop cancels play mode if it is running. Calling it repeatedly is a no-op.
func (v *Viewer) Stop() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stopPlay()
}

func (v *Viewer) stopPlay() {
	if v.play == nil {
		return
	}
	v.play.Stop()
	v.play = nil
	v.state.Playing = false
	v.surface.SetText(RegionPlayButton, "▶ Play")
	v.log.Debug("play mode stopped")
}

func (v *Viewer) tick(gen uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	// A tick from a cancelled task may still be in flight.
	if v.play == nil || gen != v.playGen {
		return
	}
	v.state.Advance()
	v.apply(v.derive())
}

// ViewModel returns the current derived view.
func (v *Viewer) ViewModel() ViewModel {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.derive()
}

func (v *Viewer) derive() ViewModel {
	return DeriveViewModel(v.state, v.viewOpts)
}

// apply writes the scrub-dependent parts of the view model to the surface.
func (v *Viewer) apply(vm ViewModel) {
	if vm.Readiness != ReadinessLoaded {
		return
	}
	v.surface.SetText(RegionCurrentTime, vm.TimeLabel)
	v.surface.SetText(RegionLastUpdate, vm.LastUpdate)
	v.surface.SetSliderValue(vm.Index)
	if vm.Cards != nil {
		v.surface.RenderCards(vm.Cards)
	}
	if v.chartsBuilt {
		for _, series := range vm.Charts {
			v.surface.UpsertChart(series, false)
		}
	}
}
