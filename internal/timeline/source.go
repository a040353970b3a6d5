package timeline

import (
	"context"
	"time"
)

// Source abstracts the backend serving site metadata and readings.
type Source interface {
	Sites(ctx context.Context) ([]Site, error)
	Readings(ctx context.Context) ([]Reading, error)
}

// Task is a handle to a scheduled repeating callback. Stop must be idempotent.
type Task interface {
	Stop()
}

// Scheduler starts repeating callbacks.
type Scheduler interface {
	Every(period time.Duration, fn func()) (Task, error)
}

// Region identifies a text region of the view surface.
type Region string

const (
	RegionRecordCount Region = "record-count"
	RegionCurrentTime Region = "current-time"
	RegionLastUpdate  Region = "last-update"
	RegionPlayButton  Region = "play-btn"
)

// Surface is the rendering boundary the viewer writes to.
type Surface interface {
	PopulateOptions(opts []SiteOption)
	SetText(region Region, text string)
	SetSliderRange(min, max int)
	SetSliderValue(v int)
	RenderCards(cards []Card)
	// UpsertChart constructs the chart on first use and replaces its series afterwards.
	UpsertChart(series ChartSeries, animate bool)
	ShowError(msg string)
}

// SoftError wraps a failure that is logged but never blocks the primary view.
type SoftError struct {
	Op  string
	Err error
}

func (e *SoftError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *SoftError) Unwrap() error { return e.Err }
