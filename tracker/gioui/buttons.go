package gioui

import (
	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
	"github.com/wavetag/wavetag/tracker"
)

type (
	// ActionClickable binds a clickable to a model action. Clicks are only
	// forwarded while the action is enabled.
	ActionClickable struct {
		Action    tracker.Action
		Clickable widget.Clickable
		TipArea   component.TipArea
	}

	// BoolClickable toggles a model Bool.
	BoolClickable struct {
		Bool      tracker.Bool
		Clickable widget.Clickable
		TipArea   component.TipArea
	}

	// modeSetter is an action that switches the interaction mode.
	modeSetter struct {
		mode  tracker.Int
		value tracker.Mode
	}

	// intAdder steps an Int, disabled at the end of its range.
	intAdder struct {
		value tracker.Int
		delta int
	}
)

func NewActionClickable(a tracker.Action) *ActionClickable {
	return &ActionClickable{Action: a}
}

func NewBoolClickable(b tracker.Bool) *BoolClickable {
	return &BoolClickable{Bool: b}
}

func (c *ActionClickable) update(gtx C) {
	for c.Clickable.Clicked(gtx) {
		c.Action.Do()
	}
}

func modeAction(mode tracker.Int, value tracker.Mode) tracker.Action {
	return tracker.MakeAction(modeSetter{mode: mode, value: value})
}

func (s modeSetter) Do()           { s.mode.SetValue(int(s.value)) }
func (s modeSetter) Enabled() bool { return s.mode.Enabled() }

func addAction(value tracker.Int, delta int) tracker.Action {
	return tracker.MakeAction(intAdder{value: value, delta: delta})
}

func (a intAdder) Do() { a.value.Add(a.delta) }
func (a intAdder) Enabled() bool {
	r := a.value.Range()
	return a.value.Enabled() && r.Clamp(a.value.Value()+a.delta) != a.value.Value()
}

// ActionButton returns a text button for the action, grayed out when the
// action is not enabled.
func ActionButton(gtx C, th *Theme, w *ActionClickable, text string) material.ButtonStyle {
	w.update(gtx)
	ret := LowEmphasisButton(&th.Material, &w.Clickable, text)
	if !w.Action.Enabled() {
		ret.Color = disabledTextColor
	}
	return ret
}

// ActionIconButton returns an icon button with a tooltip for the action.
func ActionIconButton(gtx C, th *Theme, w *ActionClickable, icon []byte, tip string) layout.Widget {
	w.update(gtx)
	btn := IconButton(&th.Material, &w.Clickable, icon, w.Action.Enabled())
	btn.Description = tip
	return func(gtx C) D {
		return withTip(gtx, th, &w.TipArea, tip, btn.Layout)
	}
}

// ToggleIconButton shows onIcon while the Bool is true and offIcon otherwise.
func ToggleIconButton(gtx C, th *Theme, w *BoolClickable, offIcon, onIcon []byte, offTip, onTip string) layout.Widget {
	for w.Clickable.Clicked(gtx) {
		w.Bool.Toggle()
	}
	icon, tip := offIcon, offTip
	if w.Bool.Value() {
		icon, tip = onIcon, onTip
	}
	btn := IconButton(&th.Material, &w.Clickable, icon, w.Bool.Enabled())
	btn.Description = tip
	return func(gtx C) D {
		return withTip(gtx, th, &w.TipArea, tip, btn.Layout)
	}
}

// ToggleButton is a text button that is highlighted when active.
func ToggleButton(gtx C, th *Theme, w *ActionClickable, text string, active bool) material.ButtonStyle {
	if active {
		w.update(gtx)
		return HighEmphasisButton(&th.Material, &w.Clickable, text)
	}
	return ActionButton(gtx, th, w, text)
}

func IconButton(th *material.Theme, w *widget.Clickable, icon []byte, enabled bool) material.IconButtonStyle {
	ret := material.IconButton(th, w, iconWidget(icon), "")
	ret.Background = transparent
	ret.Inset = layout.UniformInset(unit.Dp(6))
	if enabled {
		ret.Color = primaryColor
	} else {
		ret.Color = disabledTextColor
	}
	return ret
}

func LowEmphasisButton(th *material.Theme, w *widget.Clickable, text string) material.ButtonStyle {
	ret := material.Button(th, w, text)
	ret.Color = th.Palette.Fg
	ret.Background = transparent
	ret.Inset = layout.UniformInset(unit.Dp(6))
	return ret
}

func HighEmphasisButton(th *material.Theme, w *widget.Clickable, text string) material.ButtonStyle {
	ret := material.Button(th, w, text)
	ret.Color = th.Palette.ContrastFg
	ret.Background = th.Palette.ContrastBg
	ret.Inset = layout.UniformInset(unit.Dp(6))
	return ret
}
