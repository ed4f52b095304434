package gioui

import (
	"image/color"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
)

type (
	C = layout.Context
	D = layout.Dimensions

	recorded struct {
		call op.CallOp
		dims D
	}
)

// layoutRecord lays out w without drawing it, so that a background matching
// its size can be painted first.
func layoutRecord(gtx C, w layout.Widget) recorded {
	macro := op.Record(gtx.Ops)
	dims := w(gtx)
	return recorded{call: macro.Stop(), dims: dims}
}

// withBackground fills the area of w with c.
func withBackground(gtx C, c color.NRGBA, w layout.Widget) D {
	return layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx C) D {
			paint.FillShape(gtx.Ops, c, clip.Rect{Max: gtx.Constraints.Min}.Op())
			return D{Size: gtx.Constraints.Min}
		}),
		layout.Stacked(w),
	)
}
