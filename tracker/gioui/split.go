package gioui

import (
	"image"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
)

// SplitState divides the space between two widgets with a draggable bar.
type SplitState struct {
	// Ratio keeps the current layout.
	// 0 is center, -1 completely to the left, 1 completely to the right.
	Ratio float32
	// Bar is the width for resizing the layout
	Bar unit.Dp
	// Axis is the split direction: layout.Horizontal splits the view in left
	// and right, layout.Vertical splits the view in top and bottom
	Axis layout.Axis

	drag      bool
	dragID    pointer.ID
	dragCoord float32
}

var defaultBarWidth = unit.Dp(6)

func (s *SplitState) Layout(gtx C, first, second layout.Widget) D {
	bar := gtx.Dp(s.Bar)
	if bar <= 1 {
		bar = gtx.Dp(defaultBarWidth)
	}
	coord := s.Axis.Convert(gtx.Constraints.Max).X
	if coord <= bar {
		return D{Size: gtx.Constraints.Max}
	}

	for {
		ev, ok := gtx.Event(pointer.Filter{Target: s, Kinds: pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		pos := s.Axis.FConvert(e.Position).X
		switch e.Kind {
		case pointer.Press:
			if s.drag {
				break
			}
			s.drag, s.dragID, s.dragCoord = true, e.PointerID, pos
		case pointer.Drag:
			if !s.drag || s.dragID != e.PointerID {
				break
			}
			s.Ratio += (pos - s.dragCoord) * 2 / float32(coord)
			s.dragCoord = pos
		case pointer.Release, pointer.Cancel:
			s.drag = false
		}
	}

	low := -1 + float32(bar)/float32(coord)*2
	s.Ratio = min(max(s.Ratio, low), 1)
	firstSize := int((s.Ratio+1)/2*float32(coord)) - bar
	firstSize = max(firstSize, 0)
	secondOffset := firstSize + bar
	secondSize := max(coord-secondOffset, 0)
	cross := s.Axis.Convert(gtx.Constraints.Max).Y

	barRect := image.Rectangle{Min: s.Axis.Convert(image.Pt(firstSize, 0)), Max: s.Axis.Convert(image.Pt(secondOffset, cross))}
	paint.FillShape(gtx.Ops, backgroundColor, clip.Rect(barRect).Op())
	area := clip.Rect(barRect).Push(gtx.Ops)
	event.Op(gtx.Ops, s)
	if s.Axis == layout.Horizontal {
		pointer.CursorColResize.Add(gtx.Ops)
	} else {
		pointer.CursorRowResize.Add(gtx.Ops)
	}
	area.Pop()

	{
		gtx := gtx
		gtx.Constraints = layout.Exact(s.Axis.Convert(image.Pt(firstSize, cross)))
		area := clip.Rect(image.Rectangle{Max: gtx.Constraints.Min}).Push(gtx.Ops)
		first(gtx)
		area.Pop()
	}

	{
		gtx := gtx
		transform := op.Offset(s.Axis.Convert(image.Pt(secondOffset, 0))).Push(gtx.Ops)
		gtx.Constraints = layout.Exact(s.Axis.Convert(image.Pt(secondSize, cross)))
		area := clip.Rect(image.Rectangle{Max: gtx.Constraints.Min}).Push(gtx.Ops)
		second(gtx)
		area.Pop()
		transform.Pop()
	}

	return D{Size: gtx.Constraints.Max}
}
