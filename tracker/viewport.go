package tracker

import (
	"github.com/wavetag/wavetag"
)

// Viewport is the visible time range of the waveform. It is deliberately not
// clamped to the track: the user may pan past either end.
type Viewport Model

func (m *Model) Viewport() *Viewport { return (*Viewport)(m) }

func (m *Viewport) Range() TimeRange { return m.viewport }

// Changes returns a counter that is incremented every time the range
// changes, for widgets that poll instead of subscribing.
func (m *Viewport) Changes() int { return m.viewportChanges }

// OnChange registers f to be called with the new range after every change.
func (m *Viewport) OnChange(f func(TimeRange)) {
	m.viewportListeners = append(m.viewportListeners, f)
}

// Set replaces the visible range. Ranges narrower than the minimum zoom width
// or with non-finite bounds are ignored.
func (m *Viewport) Set(r TimeRange) bool {
	r = makeTimeRange(r.Min, r.Max)
	if !r.finite() || r.Width() < wavetag.MinZoomWidth {
		return false
	}
	m.setRange(r)
	return true
}

// ZoomFull shows the whole track.
func (m *Viewport) ZoomFull() Action { return MakeAction((*zoomFull)(m)) }

type zoomFull Model

func (m *zoomFull) Enabled() bool { return m.track != nil && (*Model)(m).interactive() }
func (m *zoomFull) Do()           { (*Model)(m).Viewport().Set(TimeRange{0, (*Model)(m).Duration()}) }

// Pan translates the range by deltaPixels of a widthPixels wide waveform;
// dragging right reveals earlier audio.
func (m *Viewport) Pan(deltaPixels, widthPixels float64) {
	if widthPixels <= 0 || deltaPixels == 0 {
		return
	}
	d := -deltaPixels * m.viewport.Width() / widthPixels
	if r := (TimeRange{m.viewport.Min + d, m.viewport.Max + d}); r.finite() {
		m.setRange(r)
	}
}

// ZoomTo zooms to the rectangle [a, b]. A symmetric zoom zooms out instead:
// the current width is scaled by the ratio of the current width to the
// rectangle width, centered on the rectangle.
func (m *Viewport) ZoomTo(a, b float64, symmetric bool) bool {
	r := makeTimeRange(a, b)
	if !r.finite() || r.Width() < wavetag.MinZoomWidth {
		return false
	}
	if symmetric {
		cur := m.viewport.Width()
		w := cur * cur / r.Width()
		c := (r.Min + r.Max) / 2
		r = TimeRange{c - w/2, c + w/2}
		if !r.finite() || r.Width() < wavetag.MinZoomWidth {
			return false
		}
	}
	m.setRange(r)
	return true
}

// ZoomToAnnotation shows the i-th annotation with half its width of margin on
// both sides, limited to the track.
func (m *Viewport) ZoomToAnnotation(i int) bool {
	if i < 0 || i >= len(m.annotations) {
		return false
	}
	a := m.annotations[i].Annotation
	margin := a.Width() / 2
	r := TimeRange{
		Min: max(0, a.Start-margin),
		Max: min((*Model)(m).Duration(), a.End+margin),
	}
	return m.Set(r)
}

// TimeAt converts a pixel offset in a widthPixels wide waveform to seconds.
func (m *Viewport) TimeAt(x, widthPixels float64) float64 {
	if widthPixels <= 0 {
		return m.viewport.Min
	}
	return m.viewport.Min + x/widthPixels*m.viewport.Width()
}

// PixelAt converts seconds to a pixel offset in a widthPixels wide waveform.
func (m *Viewport) PixelAt(t, widthPixels float64) float64 {
	w := m.viewport.Width()
	if w <= 0 {
		return 0
	}
	return (t - m.viewport.Min) / w * widthPixels
}

func (m *Viewport) setRange(r TimeRange) {
	if r == m.viewport {
		return
	}
	m.viewport = r
	m.viewportChanges++
	for _, f := range m.viewportListeners {
		f(r)
	}
}
