package tracker

import (
	"fmt"

	"github.com/wavetag/wavetag"
	"go.uber.org/zap"
)

// Selection is the user-selected time range and the playback cursor.
type Selection Model

func (m *Model) Selection() *Selection { return (*Selection)(m) }

func (m *Selection) Range() TimeRange { return m.selection }

// Active reports whether the selection is wide enough to be a playback range
// or an annotation.
func (m *Selection) Active() bool { return m.selection.Width() > wavetag.MinSelection }

// Dragging reports whether a selection drag is in progress.
func (m *Selection) Dragging() bool { return m.gesture.kind == selectGesture }

func (m *Selection) Cursor() float64 { return m.cursor }

// BeginSelect starts a drag at t, collapsing the selection to [t, t].
func (m *Selection) BeginSelect(t float64) {
	m.gesture = gesture{kind: selectGesture, anchor: t}
	m.selection = TimeRange{t, t}
}

// UpdateSelect extends the selection being dragged to t.
func (m *Selection) UpdateSelect(t float64) {
	if m.gesture.kind != selectGesture {
		return
	}
	m.selection = makeTimeRange(m.gesture.anchor, t)
}

// EndSelect finishes the drag; the selection keeps its last value.
func (m *Selection) EndSelect() {
	if m.gesture.kind == selectGesture {
		m.gesture = gesture{}
	}
}

// Set replaces the selection without touching the cursor.
func (m *Selection) Set(r TimeRange) {
	m.selection = makeTimeRange(r.Min, r.Max)
}

// Click handles a primary click at t. If a saved region contains t, the
// region is recalled and true is returned; no drag should begin. Otherwise
// the selection collapses to [t, t] and the cursor seeks to t, restarting
// playback from there if it was running.
func (m *Selection) Click(t float64) (recalled bool) {
	if i, ok := (*Model)(m).Annotations().HitTest(t); ok {
		m.Recall(i)
		return true
	}
	m.selection = TimeRange{t, t}
	m.Seek(t)
	return false
}

// Seek moves the cursor to t, limited to the track. Running playback is
// restarted from the new position.
func (m *Selection) Seek(t float64) {
	if m.track == nil {
		return
	}
	wasPlaying := m.playing
	(*Model)(m).stopSound()
	(*Model)(m).setCursor(t)
	if wasPlaying {
		(*Model)(m).startPlayback()
	}
}

// Recall stops playback and selects the i-th saved region, with the cursor at
// its start.
func (m *Selection) Recall(i int) bool {
	if i < 0 || i >= len(m.annotations) {
		return false
	}
	a := m.annotations[i].Annotation
	(*Model)(m).stopSound()
	m.selection = TimeRange{a.Start, a.End}
	(*Model)(m).setCursor(a.Start)
	m.selectedRow = i
	(*Model)(m).setStatus(fmt.Sprintf("Selected Region: %.2fs - %.2fs", a.Start, a.End))
	m.log.Debug("region selected", zap.Int("index", i), zap.String("label", a.Label))
	return true
}
