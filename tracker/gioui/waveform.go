package gioui

import (
	"image"
	"math"

	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"github.com/wavetag/wavetag"
	"github.com/wavetag/wavetag/tracker"
)

type WaveformEditor struct {
	pressed   bool
	pointerID pointer.ID
	button    tracker.PointerButton
	hoverX    float32
	hovering  bool
	lo, hi    []float32
}

var waveformDpPerTick = unit.Dp(90)

func NewWaveformEditor() *WaveformEditor {
	return &WaveformEditor{}
}

func (w *WaveformEditor) Layout(gtx C, t *Tracker) D {
	s := gtx.Constraints.Max
	if s.X <= 1 || s.Y <= 1 {
		return D{}
	}
	w.update(gtx, t, s)
	defer clip.Rect(image.Rectangle{Max: s}).Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, w)
	paint.Fill(gtx.Ops, surfaceColor)

	vp := t.Viewport()
	r := vp.Range()
	width := float64(s.X)
	px := func(sec float64) int {
		return int(math.Round(vp.PixelAt(sec, width)))
	}

	// time ticks
	step := tickSpacing(r.Width(), max(s.X/gtx.Dp(waveformDpPerTick), 1))
	for sec := math.Ceil(r.Min/step) * step; sec <= r.Max; sec += step {
		if sec < 0 {
			continue
		}
		x := px(sec)
		paint.ColorOp{Color: tickColor}.Add(gtx.Ops)
		fillRect(gtx, clip.Rect{Min: image.Pt(x, 0), Max: image.Pt(x+1, s.Y)})
		offs := op.Offset(image.Pt(x+gtx.Dp(2), s.Y-gtx.Dp(18))).Push(gtx.Ops)
		label := Label(t.Theme, wavetag.FormatTick(sec, step))
		label.FontSize = unit.Sp(12)
		label.Color = mediumEmphasisTextColor
		label.Layout(gtx)
		offs.Pop()
	}

	// saved regions, later ones on top
	hovered := -1
	if w.hovering {
		if i, ok := t.Annotations().HitTest(vp.TimeAt(float64(w.hoverX), width)); ok {
			hovered = i
		}
	}
	for i, a := range t.Annotations().Iterate {
		_, h, _ := t.Annotations().At(i)
		x1, x2 := px(a.Start), px(a.End)
		if x2 < 0 || x1 > s.X {
			continue
		}
		paint.FillShape(gtx.Ops, regionColor(h, i == hovered), clip.Rect{Min: image.Pt(x1, 0), Max: image.Pt(max(x2, x1+1), s.Y)}.Op())
		offs := op.Offset(image.Pt(max(x1, 0)+gtx.Dp(4), gtx.Dp(4))).Push(gtx.Ops)
		Label(t.Theme, a.Label).Layout(gtx)
		offs.Pop()
	}

	// selection
	if sel := t.Selection().Range(); sel.Width() > 0 {
		x1, x2 := px(sel.Min), px(sel.Max)
		paint.FillShape(gtx.Ops, selectionColor, clip.Rect{Min: image.Pt(x1, 0), Max: image.Pt(max(x2, x1+1), s.Y)}.Op())
	}

	// envelope
	mid := s.Y / 2
	half := float32(s.Y) * 0.45
	paint.ColorOp{Color: waveformAxisColor}.Add(gtx.Ops)
	fillRect(gtx, clip.Rect{Min: image.Pt(0, mid), Max: image.Pt(s.X, mid+1)})
	if cap(w.lo) < s.X {
		w.lo, w.hi = make([]float32, s.X), make([]float32, s.X)
	}
	w.lo, w.hi = w.lo[:s.X], w.hi[:s.X]
	t.Model.Waveform().Peaks(r, w.lo, w.hi)
	paint.ColorOp{Color: waveformColor}.Add(gtx.Ops)
	for x := range s.X {
		lo, hi := w.lo[x], w.hi[x]
		if lo != lo || hi != hi { // NaN outside the track
			continue
		}
		y1 := mid - int(hi*half)
		y2 := mid - int(lo*half)
		fillRect(gtx, clip.Rect{Min: image.Pt(x, y1), Max: image.Pt(x+1, y2+1)})
	}

	// zoom rectangle
	if zr, ok := t.Router().ZoomPreview(); ok {
		x1, x2 := px(zr.Min), px(zr.Max)
		paint.FillShape(gtx.Ops, zoomPreviewColor, clip.Rect{Min: image.Pt(x1, 0), Max: image.Pt(x2, s.Y)}.Op())
		paint.ColorOp{Color: zoomPreviewEdgeColor}.Add(gtx.Ops)
		fillRect(gtx, clip.Rect{Min: image.Pt(x1, 0), Max: image.Pt(x1+1, s.Y)})
		fillRect(gtx, clip.Rect{Min: image.Pt(x2, 0), Max: image.Pt(x2+1, s.Y)})
	}

	// cursor
	if t.Track() != nil {
		x := px(t.Selection().Cursor())
		paint.ColorOp{Color: cursorColor}.Add(gtx.Ops)
		fillRect(gtx, clip.Rect{Min: image.Pt(x, 0), Max: image.Pt(x+2, s.Y)})
	}

	switch {
	case t.Router().Panning():
		pointer.CursorGrabbing.Add(gtx.Ops)
	case hovered >= 0:
		pointer.CursorPointer.Add(gtx.Ops)
	}
	return D{Size: s}
}

func (w *WaveformEditor) update(gtx C, t *Tracker, s image.Point) {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: w,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel | pointer.Move | pointer.Enter | pointer.Leave,
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		pe := tracker.PointerEvent{
			X:     float64(e.Position.X),
			Width: float64(s.X),
			Shift: e.Modifiers.Contain(key.ModShift),
		}
		switch e.Kind {
		case pointer.Move, pointer.Enter:
			w.hoverX, w.hovering = e.Position.X, true
			continue
		case pointer.Leave:
			w.hovering = false
			continue
		case pointer.Press:
			if w.pressed {
				continue
			}
			switch {
			case e.Buttons.Contain(pointer.ButtonPrimary):
				pe.Button = tracker.PrimaryButton
			case e.Buttons.Contain(pointer.ButtonTertiary):
				pe.Button = tracker.TertiaryButton
			default:
				continue
			}
			w.pressed, w.pointerID, w.button = true, e.PointerID, pe.Button
			pe.Kind = tracker.Press
		case pointer.Drag:
			if !w.pressed || e.PointerID != w.pointerID {
				continue
			}
			w.hoverX = e.Position.X
			pe.Kind, pe.Button = tracker.Drag, w.button
		case pointer.Release:
			if !w.pressed || e.PointerID != w.pointerID {
				continue
			}
			w.pressed = false
			pe.Kind, pe.Button = tracker.Release, w.button
		case pointer.Cancel:
			w.pressed = false
			pe.Kind = tracker.Cancel
		default:
			continue
		}
		t.Router().Pointer(pe)
	}
}

// tickSpacing returns a round step in seconds that shows at most n ticks
// over span seconds.
func tickSpacing(span float64, n int) float64 {
	if span <= 0 || n <= 0 {
		return 1
	}
	raw := span / float64(n)
	for _, step := range tickSteps {
		if step >= raw {
			return step
		}
	}
	return math.Ceil(raw/3600) * 3600
}

var tickSteps = []float64{
	0.001, 0.002, 0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.5,
	1, 2, 5, 10, 15, 30, 60, 120, 300, 600, 900, 1800, 3600,
}

func fillRect(gtx C, rect clip.Rect) {
	stack := rect.Push(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
	stack.Pop()
}
