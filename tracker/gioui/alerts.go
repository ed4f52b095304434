package gioui

import (
	"image"
	"image/color"
	"time"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"github.com/wavetag/wavetag/tracker"
)

type (
	AlertsState struct {
		prevUpdate time.Time
	}

	AlertsWidget struct {
		Theme *Theme
		Model *tracker.Alerts
		State *AlertsState
	}
)

var (
	alertMargin     = layout.UniformInset(unit.Dp(6))
	alertInset      = layout.UniformInset(unit.Dp(6))
	statusBarHeight = unit.Dp(32)
)

func NewAlertsState() *AlertsState {
	return &AlertsState{prevUpdate: time.Now()}
}

func Alerts(m *tracker.Alerts, th *Theme, st *AlertsState) AlertsWidget {
	return AlertsWidget{
		Theme: th,
		Model: m,
		State: st,
	}
}

func (a *AlertsWidget) background(p tracker.AlertPriority) color.NRGBA {
	switch p {
	case tracker.Warning:
		return a.Theme.Alert.Warning
	case tracker.Error:
		return a.Theme.Alert.Error
	}
	return a.Theme.Alert.Info
}

// Layout draws the alerts as full width bars above the status bar, the oldest
// closest to the bottom. A bar slides in from below as it fades in and the
// bars above it move up to make room.
func (a *AlertsWidget) Layout(gtx C) D {
	now := time.Now()
	if a.Model.Update(now.Sub(a.State.prevUpdate)) {
		gtx.Execute(op.InvalidateCmd{At: now.Add(50 * time.Millisecond)})
	}
	a.State.prevUpdate = now

	stacked := float64(gtx.Dp(statusBarHeight))
	for _, alert := range a.Model.Iterate {
		bar := a.bar(gtx, alert)
		height := float64(bar.dims.Size.Y + gtx.Dp(alertMargin.Top+alertMargin.Bottom))
		y := gtx.Constraints.Max.Y - int(stacked*alert.FadeLevel+height*alert.FadeLevel)
		off := op.Offset(image.Pt(gtx.Dp(alertMargin.Left), y)).Push(gtx.Ops)
		bar.call.Add(gtx.Ops)
		off.Pop()
		stacked += height * alert.FadeLevel
	}
	return D{}
}

func (a *AlertsWidget) bar(gtx C, alert tracker.Alert) recorded {
	label := Label(a.Theme, alert.Message)
	label.Color = a.Theme.Alert.Text
	gtx.Constraints.Min.X = gtx.Constraints.Max.X - gtx.Dp(alertMargin.Left+alertMargin.Right)
	gtx.Constraints.Max.X = gtx.Constraints.Min.X
	gtx.Constraints.Min.Y = 0
	bg := a.background(alert.Priority)
	return layoutRecord(gtx, func(gtx C) D {
		return layout.Stack{Alignment: layout.W}.Layout(gtx,
			layout.Expanded(func(gtx C) D {
				rr := gtx.Dp(unit.Dp(4))
				paint.FillShape(gtx.Ops, bg, clip.UniformRRect(image.Rectangle{Max: gtx.Constraints.Min}, rr).Op(gtx.Ops))
				return D{Size: gtx.Constraints.Min}
			}),
			layout.Stacked(func(gtx C) D {
				return alertInset.Layout(gtx, label.Layout)
			}),
		)
	})
}
