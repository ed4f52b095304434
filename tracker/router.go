package tracker

import (
	"fmt"
	"strings"

	"github.com/wavetag/wavetag"
	"go.uber.org/zap"
)

type (
	// Mode decides what a primary-button drag on the waveform does.
	Mode int

	// PointerEvent is a pointer event on the waveform, in pixels from its
	// left edge.
	PointerEvent struct {
		Kind   PointerKind
		Button PointerButton
		X      float64
		// Width is the width of the waveform in pixels.
		Width float64
		Shift bool
	}

	PointerKind   int
	PointerButton int

	// Router dispatches pointer events to the viewport and the selection
	// according to the interaction mode. Only one gesture is active at a time.
	Router Model

	gesture struct {
		kind    gestureKind
		button  PointerButton
		anchor  float64
		lastX   float64
		preview TimeRange
	}

	gestureKind int
)

const (
	SelectMode Mode = iota
	PanMode
	ZoomMode
)

const (
	Press PointerKind = iota
	Drag
	Release
	Cancel
)

const (
	PrimaryButton PointerButton = iota
	TertiaryButton
)

const (
	noGesture gestureKind = iota
	selectGesture
	panGesture
	zoomGesture
)

var modeNames = [...]string{"SELECT", "PAN", "ZOOM"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "UNKNOWN"
	}
	return modeNames[m]
}

// ParseMode returns the mode with the given name, ignoring case.
func ParseMode(name string) (Mode, error) {
	for i, n := range modeNames {
		if strings.EqualFold(n, name) {
			return Mode(i), nil
		}
	}
	return SelectMode, fmt.Errorf("unknown mode %q", name)
}

func (m *Model) Router() *Router { return (*Router)(m) }

// Mode returns an Int selecting the interaction mode. Changing the mode aborts
// a gesture in progress.
func (m *Router) Mode() Int { return MakeInt((*modeValue)(m)) }

type modeValue Model

func (v *modeValue) Value() int                { return int(v.mode) }
func (v *modeValue) Range() RangeInclusive     { return RangeInclusive{int(SelectMode), int(ZoomMode)} }
func (v *modeValue) StringOf(value int) string { return Mode(value).String() }
func (v *modeValue) SetValue(value int) bool {
	(*Router)(v).abort()
	v.mode = Mode(value)
	(*Model)(v).setStatus("Mode changed to: " + v.mode.String())
	return true
}

// ZoomPreview returns the zoom rectangle being dragged.
func (m *Router) ZoomPreview() (TimeRange, bool) {
	if m.gesture.kind != zoomGesture {
		return TimeRange{}, false
	}
	return m.gesture.preview, true
}

// Panning reports whether a pan drag is in progress.
func (m *Router) Panning() bool { return m.gesture.kind == panGesture }

// Pointer handles a pointer event on the waveform. Events are ignored while a
// file is loading.
func (m *Router) Pointer(e PointerEvent) {
	if !(*Model)(m).interactive() {
		m.abort()
		return
	}
	switch e.Kind {
	case Press:
		m.press(e)
	case Drag:
		m.drag(e)
	case Release:
		m.release(e)
	case Cancel:
		m.abort()
	}
}

func (m *Router) press(e PointerEvent) {
	if m.gesture.kind != noGesture {
		return
	}
	if e.Button == TertiaryButton {
		m.gesture = gesture{kind: panGesture, button: e.Button, lastX: e.X}
		return
	}
	t := (*Model)(m).Viewport().TimeAt(e.X, e.Width)
	switch m.mode {
	case SelectMode:
		sel := (*Model)(m).Selection()
		if sel.Click(t) {
			return
		}
		sel.BeginSelect(t)
	case PanMode:
		m.gesture = gesture{kind: panGesture, button: e.Button, lastX: e.X}
	case ZoomMode:
		m.gesture = gesture{kind: zoomGesture, button: e.Button, anchor: t, preview: TimeRange{t, t}}
	}
}

func (m *Router) drag(e PointerEvent) {
	switch m.gesture.kind {
	case selectGesture:
		(*Model)(m).Selection().UpdateSelect((*Model)(m).Viewport().TimeAt(e.X, e.Width))
	case panGesture:
		(*Model)(m).Viewport().Pan(e.X-m.gesture.lastX, e.Width)
		m.gesture.lastX = e.X
	case zoomGesture:
		t := (*Model)(m).Viewport().TimeAt(e.X, e.Width)
		m.gesture.preview = makeTimeRange(m.gesture.anchor, t)
	}
}

func (m *Router) release(e PointerEvent) {
	if m.gesture.kind == noGesture || e.Button != m.gesture.button {
		return
	}
	switch m.gesture.kind {
	case selectGesture:
		sel := (*Model)(m).Selection()
		sel.UpdateSelect((*Model)(m).Viewport().TimeAt(e.X, e.Width))
		sel.EndSelect()
	case panGesture:
		m.gesture = gesture{}
	case zoomGesture:
		t := (*Model)(m).Viewport().TimeAt(e.X, e.Width)
		anchor := m.gesture.anchor
		m.gesture = gesture{}
		if !(*Model)(m).Viewport().ZoomTo(anchor, t, e.Shift) {
			m.log.Debug("zoom rectangle too narrow", zap.Float64("width", makeTimeRange(anchor, t).Width()), zap.Float64("min", wavetag.MinZoomWidth))
		}
	}
}

// abort ends the gesture in progress. A selection keeps its last value and a
// zoom preview is discarded.
func (m *Router) abort() {
	m.gesture = gesture{}
}
