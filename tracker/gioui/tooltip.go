package gioui

import (
	"gioui.org/layout"
	"gioui.org/x/component"
)

// withTip lays out w and shows tip in the theme's tooltip colors while the
// pointer rests on it.
func withTip(gtx C, th *Theme, area *component.TipArea, tip string, w layout.Widget) D {
	t := component.PlatformTooltip(&th.Material, tip)
	t.Bg = th.Tooltip.Bg
	t.Text.Color = th.Tooltip.Color
	return area.Layout(gtx, t, w)
}
