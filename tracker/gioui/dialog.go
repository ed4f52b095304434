package gioui

import (
	"fmt"
	"image"

	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/wavetag/wavetag"
	"github.com/wavetag/wavetag/tracker"
)

type (
	// DialogState holds the widgets of the modal dialogs. Only one dialog is
	// shown at a time, so they share the buttons.
	DialogState struct {
		BtnOk     widget.Clickable
		BtnCancel widget.Clickable
		Editor    widget.Editor
		open      tracker.Dialog
	}

	DialogStyle struct {
		State  *DialogState
		Title  string
		Text   string
		Hint   string
		Theme  *Theme
		Ok     func()
		Cancel func()
		// WithEditor shows a single line text field; Ok receives its text via
		// the State.
		WithEditor bool
	}
)

var (
	dialogInset     = layout.Inset{Top: unit.Dp(12), Bottom: unit.Dp(12), Left: unit.Dp(20), Right: unit.Dp(20)}
	dialogTextInset = layout.Inset{Top: unit.Dp(12), Bottom: unit.Dp(12)}
)

func NewDialogState() *DialogState {
	ret := &DialogState{}
	ret.Editor.SingleLine = true
	ret.Editor.Submit = true
	return ret
}

// ErrorDialog shows a decode or file error until acknowledged.
func ErrorDialog(th *Theme, state *DialogState, model *tracker.Model) DialogStyle {
	return DialogStyle{
		State:  state,
		Title:  "Error",
		Text:   model.DialogError(),
		Theme:  th,
		Ok:     model.Cancel().Do,
		Cancel: model.Cancel().Do,
	}
}

// LabelDialog prompts for the label of the pending selection.
func LabelDialog(th *Theme, state *DialogState, model *tracker.Model) DialogStyle {
	r := model.Annotations().Pending()
	return DialogStyle{
		State:      state,
		Title:      "Label",
		Text:       fmt.Sprintf("Enter a label for %s - %s:", wavetag.FormatDuration(r.Min), wavetag.FormatDuration(r.Max)),
		Hint:       "label",
		Theme:      th,
		WithEditor: true,
		Ok:         func() { model.Annotations().CommitLabel(state.Editor.Text()) },
		Cancel:     model.Cancel().Do,
	}
}

// opened resets the dialog widgets when a different dialog is shown.
func (s *DialogState) opened(gtx C, d tracker.Dialog) {
	if s.open == d {
		return
	}
	s.open = d
	s.Editor.SetText("")
	if d == tracker.LabelDialog {
		gtx.Execute(key.FocusCmd{Tag: &s.Editor})
	} else {
		gtx.Execute(key.FocusCmd{Tag: &s.BtnOk})
	}
}

func (s *DialogState) closed() { s.open = tracker.NoDialog }

func (d *DialogStyle) update(gtx C) {
	for d.State.BtnOk.Clicked(gtx) {
		d.Ok()
	}
	for d.State.BtnCancel.Clicked(gtx) {
		d.Cancel()
	}
	if d.WithEditor {
		for {
			e, ok := d.State.Editor.Update(gtx)
			if !ok {
				break
			}
			if _, ok := e.(widget.SubmitEvent); ok {
				d.Ok()
			}
		}
	}
	for {
		e, ok := gtx.Event(
			key.Filter{Focus: &d.State.Editor, Name: key.NameEscape},
			key.Filter{Focus: &d.State.BtnOk, Name: key.NameEscape},
			key.Filter{Focus: &d.State.BtnCancel, Name: key.NameEscape},
		)
		if !ok {
			break
		}
		if e, ok := e.(key.Event); ok && e.State == key.Press {
			d.Cancel()
		}
	}
}

func (d *DialogStyle) Layout(gtx C) D {
	d.update(gtx)
	// swallow pointer input so nothing below the dialog reacts
	area := clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops)
	event.Op(gtx.Ops, d.State)
	for {
		if _, ok := gtx.Event(pointer.Filter{Target: d.State, Kinds: pointer.Press | pointer.Release}); !ok {
			break
		}
	}
	area.Pop()
	paint.Fill(gtx.Ops, dialogBgColor)
	return layout.Center.Layout(gtx, func(gtx C) D {
		gtx.Constraints.Max.X = min(gtx.Constraints.Max.X, gtx.Dp(420))
		return layout.Stack{}.Layout(gtx,
			layout.Expanded(func(gtx C) D {
				rr := gtx.Dp(6)
				paint.FillShape(gtx.Ops, popupSurfaceColor, clip.UniformRRect(image.Rectangle{Max: gtx.Constraints.Min}, rr).Op(gtx.Ops))
				return D{Size: gtx.Constraints.Min}
			}),
			layout.Stacked(func(gtx C) D {
				return dialogInset.Layout(gtx, d.layoutContents)
			}),
		)
	})
}

func (d *DialogStyle) layoutContents(gtx C) D {
	th := &d.Theme.Material
	children := []layout.FlexChild{
		layout.Rigid(Label(d.Theme, d.Title).Layout),
		layout.Rigid(func(gtx C) D {
			return dialogTextInset.Layout(gtx, material.Body2(th, d.Text).Layout)
		}),
	}
	if d.WithEditor {
		children = append(children, layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min.X = gtx.Dp(240)
			ed := material.Editor(th, &d.State.Editor, d.Hint)
			ed.HintColor = mediumEmphasisTextColor
			return dialogTextInset.Layout(gtx, ed.Layout)
		}))
	}
	children = append(children, layout.Rigid(func(gtx C) D {
		return layout.E.Layout(gtx, func(gtx C) D {
			ok := HighEmphasisButton(th, &d.State.BtnOk, "Ok")
			if !d.WithEditor {
				return ok.Layout(gtx)
			}
			return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
				layout.Rigid(ok.Layout),
				layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
				layout.Rigid(LowEmphasisButton(th, &d.State.BtnCancel, "Cancel").Layout),
			)
		})
	}))
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
}
