package tracker_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wavetag/wavetag/tracker"
)

// pointer sends an event on a 1000 pixel wide waveform, so with the initial
// viewport of a 10 second track one pixel is 10ms.
func pointer(m *tracker.Model, kind tracker.PointerKind, button tracker.PointerButton, x float64, shift bool) {
	m.Router().Pointer(tracker.PointerEvent{Kind: kind, Button: button, X: x, Width: 1000, Shift: shift})
}

func TestRouterSelectDrag(t *testing.T) {
	env := newLoadedEnv(t)
	m := env.model
	pointer(m, tracker.Press, tracker.PrimaryButton, 400, false)
	assert.True(t, m.Selection().Dragging())
	assert.Equal(t, 4.0, m.Selection().Cursor())
	pointer(m, tracker.Drag, tracker.PrimaryButton, 300, false)
	assert.Equal(t, tracker.TimeRange{Min: 3, Max: 4}, m.Selection().Range())
	pointer(m, tracker.Drag, tracker.PrimaryButton, 200, false)
	pointer(m, tracker.Release, tracker.PrimaryButton, 200, false)
	assert.False(t, m.Selection().Dragging())
	assert.Equal(t, tracker.TimeRange{Min: 2, Max: 4}, m.Selection().Range())
	assert.True(t, m.Selection().Active())
}

func TestRouterClickOnRegionRecallsIt(t *testing.T) {
	env := newLoadedEnv(t)
	m := env.model
	require.NoError(t, m.Annotations().Add(2, 4, "bark"))
	m.Play().Start().Do()
	pointer(m, tracker.Press, tracker.PrimaryButton, 300, false)
	assert.False(t, m.Selection().Dragging())
	assert.False(t, m.Play().Playing())
	assert.Equal(t, tracker.TimeRange{Min: 2, Max: 4}, m.Selection().Range())
	assert.Equal(t, 2.0, m.Selection().Cursor())
	assert.Equal(t, "Selected Region: 2.00s - 4.00s", m.Status())
	pointer(m, tracker.Release, tracker.PrimaryButton, 300, false)
	assert.Equal(t, tracker.TimeRange{Min: 2, Max: 4}, m.Selection().Range())
}

func TestRouterPan(t *testing.T) {
	env := newLoadedEnv(t)
	m := env.model
	m.Router().Mode().SetValue(int(tracker.PanMode))
	assert.Equal(t, "Mode changed to: PAN", m.Status())
	pointer(m, tracker.Press, tracker.PrimaryButton, 500, false)
	assert.True(t, m.Router().Panning())
	pointer(m, tracker.Drag, tracker.PrimaryButton, 600, false)
	pointer(m, tracker.Drag, tracker.PrimaryButton, 700, false)
	pointer(m, tracker.Release, tracker.PrimaryButton, 700, false)
	assert.False(t, m.Router().Panning())
	r := m.Viewport().Range()
	assert.InDelta(t, -2.0, r.Min, 1e-9)
	assert.InDelta(t, 8.0, r.Max, 1e-9)
	assert.Equal(t, tracker.TimeRange{}, m.Selection().Range())
}

func TestRouterMiddleButtonPansInEveryMode(t *testing.T) {
	for _, mode := range []tracker.Mode{tracker.SelectMode, tracker.PanMode, tracker.ZoomMode} {
		t.Run(mode.String(), func(t *testing.T) {
			env := newLoadedEnv(t)
			m := env.model
			m.Router().Mode().SetValue(int(mode))
			pointer(m, tracker.Press, tracker.TertiaryButton, 500, false)
			pointer(m, tracker.Drag, tracker.TertiaryButton, 400, false)
			pointer(m, tracker.Release, tracker.TertiaryButton, 400, false)
			r := m.Viewport().Range()
			assert.InDelta(t, 1.0, r.Min, 1e-9)
			assert.InDelta(t, 11.0, r.Max, 1e-9)
			assert.Equal(t, 0.0, m.Selection().Cursor())
		})
	}
}

func TestRouterZoom(t *testing.T) {
	env := newLoadedEnv(t)
	m := env.model
	m.Router().Mode().SetValue(int(tracker.ZoomMode))
	pointer(m, tracker.Press, tracker.PrimaryButton, 600, false)
	pointer(m, tracker.Drag, tracker.PrimaryButton, 200, false)
	preview, ok := m.Router().ZoomPreview()
	require.True(t, ok)
	assert.Equal(t, tracker.TimeRange{Min: 2, Max: 6}, preview)
	assert.Equal(t, tracker.TimeRange{Min: 0, Max: 10}, m.Viewport().Range())
	pointer(m, tracker.Release, tracker.PrimaryButton, 200, false)
	_, ok = m.Router().ZoomPreview()
	assert.False(t, ok)
	assert.Equal(t, tracker.TimeRange{Min: 2, Max: 6}, m.Viewport().Range())
}

func TestRouterShiftZoomOut(t *testing.T) {
	env := newLoadedEnv(t)
	m := env.model
	m.Router().Mode().SetValue(int(tracker.ZoomMode))
	pointer(m, tracker.Press, tracker.PrimaryButton, 400, false)
	pointer(m, tracker.Drag, tracker.PrimaryButton, 600, false)
	pointer(m, tracker.Release, tracker.PrimaryButton, 600, true)
	r := m.Viewport().Range()
	assert.InDelta(t, -20.0, r.Min, 1e-9)
	assert.InDelta(t, 30.0, r.Max, 1e-9)
}

func TestRouterZoomClickIsIgnored(t *testing.T) {
	env := newLoadedEnv(t)
	m := env.model
	m.Router().Mode().SetValue(int(tracker.ZoomMode))
	pointer(m, tracker.Press, tracker.PrimaryButton, 400, false)
	pointer(m, tracker.Release, tracker.PrimaryButton, 400, false)
	assert.Equal(t, tracker.TimeRange{Min: 0, Max: 10}, m.Viewport().Range())
}

func TestRouterModeChangeAbortsGesture(t *testing.T) {
	env := newLoadedEnv(t)
	m := env.model
	m.Router().Mode().SetValue(int(tracker.ZoomMode))
	pointer(m, tracker.Press, tracker.PrimaryButton, 200, false)
	pointer(m, tracker.Drag, tracker.PrimaryButton, 600, false)
	m.Router().Mode().SetValue(int(tracker.SelectMode))
	_, ok := m.Router().ZoomPreview()
	assert.False(t, ok)
	pointer(m, tracker.Release, tracker.PrimaryButton, 600, false)
	assert.Equal(t, tracker.TimeRange{Min: 0, Max: 10}, m.Viewport().Range())

	pointer(m, tracker.Press, tracker.PrimaryButton, 200, false)
	pointer(m, tracker.Drag, tracker.PrimaryButton, 500, false)
	m.Router().Mode().SetValue(int(tracker.PanMode))
	assert.False(t, m.Selection().Dragging())
	pointer(m, tracker.Drag, tracker.PrimaryButton, 900, false)
	assert.Equal(t, tracker.TimeRange{Min: 2, Max: 5}, m.Selection().Range())
}

func TestRouterIgnoresSecondPress(t *testing.T) {
	env := newLoadedEnv(t)
	m := env.model
	pointer(m, tracker.Press, tracker.PrimaryButton, 200, false)
	pointer(m, tracker.Press, tracker.TertiaryButton, 500, false)
	pointer(m, tracker.Drag, tracker.TertiaryButton, 300, false)
	assert.False(t, m.Router().Panning())
	assert.Equal(t, tracker.TimeRange{Min: 2, Max: 3}, m.Selection().Range())
	assert.Equal(t, tracker.TimeRange{Min: 0, Max: 10}, m.Viewport().Range())
}

func TestModeNames(t *testing.T) {
	env := newTestEnv(t)
	mode := env.model.Router().Mode()
	assert.Equal(t, "SELECT", mode.String())
	assert.Equal(t, "ZOOM", mode.StringOf(int(tracker.ZoomMode)))
	assert.Equal(t, "UNKNOWN", tracker.Mode(7).String())
}

func TestParseMode(t *testing.T) {
	for _, c := range []struct {
		name string
		want tracker.Mode
	}{{"select", tracker.SelectMode}, {"PAN", tracker.PanMode}, {"Zoom", tracker.ZoomMode}} {
		m, err := tracker.ParseMode(c.name)
		require.NoError(t, err)
		assert.Equal(t, c.want, m)
		assert.Equal(t, strings.ToUpper(c.name), m.String())
	}
	_, err := tracker.ParseMode("lasso")
	assert.Error(t, err)
}

func TestRepeatedSymmetricZoomKeepsViewportFinite(t *testing.T) {
	env := newLoadedEnv(t)
	m := env.model
	m.Router().Mode().SetValue(int(tracker.ZoomMode))
	// every one pixel shift-zoom widens the viewport a thousandfold
	for range 200 {
		pointer(m, tracker.Press, tracker.PrimaryButton, 0, false)
		pointer(m, tracker.Drag, tracker.PrimaryButton, 1, false)
		pointer(m, tracker.Release, tracker.PrimaryButton, 1, true)
	}
	r := m.Viewport().Range()
	assert.False(t, math.IsNaN(r.Min) || math.IsInf(r.Min, 0), "min %v", r.Min)
	assert.False(t, math.IsNaN(r.Max) || math.IsInf(r.Max, 0), "max %v", r.Max)

	m.Router().Mode().SetValue(int(tracker.SelectMode))
	pointer(m, tracker.Press, tracker.PrimaryButton, 500, false)
	pointer(m, tracker.Release, tracker.PrimaryButton, 500, false)
	c := m.Selection().Cursor()
	assert.False(t, math.IsNaN(c))
	assert.GreaterOrEqual(t, c, 0.0)
	assert.LessOrEqual(t, c, 10.0)
}
