package surface

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tonypepproni/Tidal-Estuary/internal/timeline"
)

func ptr(v float64) *float64 { return &v }

func TestMemoryRegions(t *testing.T) {
	m := NewMemory()

	m.PopulateOptions(timeline.SiteOptions(nil))
	m.SetText(timeline.RegionRecordCount, "42")
	m.SetSliderRange(0, 41)
	m.SetSliderValue(7)

	snap := m.Snapshot()
	assert.Equal(t, []timeline.SiteOption{{Value: timeline.AllSites, Label: "All Sites"}}, snap.Options)
	assert.Equal(t, "42", snap.Texts[timeline.RegionRecordCount])
	assert.Equal(t, 0, snap.SliderMin)
	assert.Equal(t, 41, snap.SliderMax)
	assert.Equal(t, 7, snap.SliderValue)
}

func TestMemoryErrorReplacesCards(t *testing.T) {
	m := NewMemory()
	m.RenderCards([]timeline.Card{{Label: "Water Temp", Value: "12.00", Unit: "°C", Present: true}})

	m.ShowError("upstream timeout")
	snap := m.Snapshot()
	assert.Empty(t, snap.Cards)
	assert.Equal(t, "upstream timeout", snap.Error)

	m.RenderCards([]timeline.Card{{Label: "Water Temp", Value: "N/A"}})
	snap = m.Snapshot()
	assert.Len(t, snap.Cards, 1)
	assert.Empty(t, snap.Error)
}

func TestMemoryUpsertChart(t *testing.T) {
	m := NewMemory()

	_, err := m.Chart("temp-chart")
	assert.ErrorIs(t, err, ErrNotFound)

	m.UpsertChart(timeline.ChartSeries{ID: "temp-chart", Values: []*float64{ptr(1)}}, true)
	m.UpsertChart(timeline.ChartSeries{ID: "do-chart"}, true)
	m.UpsertChart(timeline.ChartSeries{ID: "temp-chart", Values: []*float64{ptr(1), ptr(2)}}, false)

	c, err := m.Chart("temp-chart")
	require.NoError(t, err)
	assert.Equal(t, 1, c.Updates)
	assert.False(t, c.Animate)
	assert.Len(t, c.Series.Values, 2)
	assert.Equal(t, []string{"temp-chart", "do-chart"}, m.Snapshot().ChartOrder)
}

func TestSnapshotIsACopy(t *testing.T) {
	m := NewMemory()
	m.SetText(timeline.RegionPlayButton, "▶ Play")

	snap := m.Snapshot()
	snap.Texts[timeline.RegionPlayButton] = "changed"
	assert.Equal(t, "▶ Play", m.Snapshot().Texts[timeline.RegionPlayButton])
}

func TestRenderSVG(t *testing.T) {
	series := timeline.ChartSeries{
		ID:     "temp-chart",
		Title:  "Water Temperature",
		Unit:   "°C",
		Color:  "#ff5722",
		Labels: []string{"May 1, 12:00 PM", "May 1, 01:00 PM", "May 1, 02:00 PM"},
		Values: []*float64{ptr(11.5), nil, ptr(12.25)},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderSVG(series, &buf))
	assert.Contains(t, buf.String(), "<svg")
}

func TestRenderSVGFlatSeries(t *testing.T) {
	series := timeline.ChartSeries{
		Title:  "Water Level",
		Color:  "#2196f3",
		Labels: []string{"a", "b"},
		Values: []*float64{ptr(3), ptr(3)},
	}

	var buf bytes.Buffer
	assert.NoError(t, RenderSVG(series, &buf))
}

func TestRenderSVGTooFewPoints(t *testing.T) {
	var buf bytes.Buffer
	err := RenderSVG(timeline.ChartSeries{Values: []*float64{ptr(1), nil}}, &buf)
	assert.ErrorIs(t, err, ErrTooFewPoints)
}

func TestTicks(t *testing.T) {
	labels := make([]string, 200)
	for i := range labels {
		labels[i] = string(rune('a' + i%26))
	}

	ts := ticks(labels, 0, 199)
	assert.LessOrEqual(t, len(ts), maxTickLabels+1)
	for _, tick := range ts {
		assert.GreaterOrEqual(t, tick.Value, 0.0)
		assert.LessOrEqual(t, tick.Value, 199.0)
	}

	assert.Nil(t, ticks(nil, 0, 1))
}
