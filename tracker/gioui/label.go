package gioui

import (
	"image"
	"image/color"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
)

// LabelStyle draws a single line of text with an optional one pixel drop
// shadow underneath.
type LabelStyle struct {
	Text      string
	Color     color.NRGBA
	Shadow    color.NRGBA
	Alignment layout.Direction
	Font      font.Font
	FontSize  unit.Sp
	Shaper    *text.Shaper
}

func (l LabelStyle) Layout(gtx C) D {
	return l.Alignment.Layout(gtx, func(gtx C) D {
		gtx.Constraints.Min = image.Point{}
		if l.Shadow.A > 0 {
			off := op.Offset(image.Pt(1, 1)).Push(gtx.Ops)
			l.draw(gtx, l.Shadow)
			off.Pop()
		}
		return l.draw(gtx, l.Color)
	})
}

func (l LabelStyle) draw(gtx C, c color.NRGBA) D {
	rec := op.Record(gtx.Ops)
	paint.ColorOp{Color: c}.Add(gtx.Ops)
	material := rec.Stop()
	return widget.Label{MaxLines: 1}.Layout(gtx, l.Shaper, l.Font, l.FontSize, l.Text, material)
}

// Label returns the theme's label style with the given text.
func Label(th *Theme, str string) LabelStyle {
	ret := th.Label
	ret.Text = str
	return ret
}
