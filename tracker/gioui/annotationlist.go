package gioui

import (
	"image"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/wavetag/wavetag/tracker"
	"golang.org/x/exp/shiny/materialdesign/icons"
)

// AnnotationList shows the saved regions. A click selects a row, a double
// click zooms to the region and plays it.
type AnnotationList struct {
	list      widget.List
	rows      []widget.Clickable
	deleteBtn *ActionClickable
}

var annotationRowInset = layout.Inset{Top: unit.Dp(4), Bottom: unit.Dp(4), Left: unit.Dp(8), Right: unit.Dp(8)}

func NewAnnotationList(model *tracker.Model) *AnnotationList {
	ret := &AnnotationList{
		deleteBtn: NewActionClickable(model.Annotations().DeleteSelected()),
	}
	ret.list.Axis = layout.Vertical
	return ret
}

func (l *AnnotationList) update(gtx C, t *Tracker) {
	n := t.Annotations().Len()
	if len(l.rows) < n {
		l.rows = append(l.rows, make([]widget.Clickable, n-len(l.rows))...)
	}
	for i := range n {
		for {
			click, ok := l.rows[i].Update(gtx)
			if !ok {
				break
			}
			if click.NumClicks >= 2 {
				t.Annotations().PlayAt(i)
			} else {
				t.Annotations().List().SetSelected(i)
			}
		}
	}
}

func (l *AnnotationList) Layout(gtx C, t *Tracker) D {
	l.update(gtx, t)
	annotations := t.Annotations()
	selected := annotations.List().Selected()
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			return annotationRowInset.Layout(gtx, Label(t.Theme, "Annotations").Layout)
		}),
		layout.Flexed(1, func(gtx C) D {
			return material.List(&t.Theme.Material, &l.list).Layout(gtx, annotations.Len(), func(gtx C, i int) D {
				if i >= len(l.rows) {
					return D{}
				}
				row := &l.rows[i]
				return row.Layout(gtx, func(gtx C) D {
					gtx.Constraints.Min.X = gtx.Constraints.Max.X
					macro := layoutRecord(gtx, func(gtx C) D {
						label := Label(t.Theme, annotations.Describe(i))
						label.FontSize = unit.Sp(14)
						return annotationRowInset.Layout(gtx, label.Layout)
					})
					switch {
					case i == selected:
						paint.FillShape(gtx.Ops, listSelectedColor, clip.Rect{Max: image.Pt(gtx.Constraints.Max.X, macro.dims.Size.Y)}.Op())
					case row.Hovered():
						paint.FillShape(gtx.Ops, listHoverColor, clip.Rect{Max: image.Pt(gtx.Constraints.Max.X, macro.dims.Size.Y)}.Op())
					}
					macro.call.Add(gtx.Ops)
					return D{Size: image.Pt(gtx.Constraints.Max.X, macro.dims.Size.Y)}
				})
			})
		}),
		layout.Rigid(func(gtx C) D {
			return layout.E.Layout(gtx, ActionIconButton(gtx, t.Theme, l.deleteBtn, icons.ActionDelete, makeHint("Delete selected region", " (%s)", "DeleteSelected")))
		}),
	)
}
