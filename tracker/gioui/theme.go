package gioui

import (
	"image/color"

	"gioui.org/font"
	"gioui.org/font/gofont"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
)

type Theme struct {
	Material material.Theme
	Label    LabelStyle
	Tooltip  struct{ Bg, Color color.NRGBA }
	Alert    struct {
		Info, Warning, Error color.NRGBA
		Text                 color.NRGBA
	}
}

var fontCollection []font.FontFace = gofont.Collection()

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
var black = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
var transparent = color.NRGBA{A: 0}

var primaryColor = color.NRGBA{R: 206, G: 147, B: 216, A: 255}
var secondaryColor = color.NRGBA{R: 128, G: 222, B: 234, A: 255}

var highEmphasisTextColor = color.NRGBA{R: 222, G: 222, B: 222, A: 222}
var mediumEmphasisTextColor = color.NRGBA{R: 153, G: 153, B: 153, A: 153}
var disabledTextColor = color.NRGBA{R: 255, G: 255, B: 255, A: 97}

var backgroundColor = color.NRGBA{R: 18, G: 18, B: 18, A: 255}
var surfaceColor = color.NRGBA{R: 37, G: 37, B: 38, A: 255}
var popupSurfaceColor = color.NRGBA{R: 50, G: 50, B: 51, A: 255}
var dialogBgColor = color.NRGBA{R: 0, G: 0, B: 0, A: 224}

var labelDefaultFont = fontCollection[6].Font
var labelDefaultFontSize = unit.Sp(16)

var waveformColor = color.NRGBA{R: 128, G: 222, B: 234, A: 255}
var waveformAxisColor = color.NRGBA{R: 255, G: 255, B: 255, A: 24}
var tickColor = color.NRGBA{R: 255, G: 255, B: 255, A: 40}
var cursorColor = color.NRGBA{R: 255, G: 80, B: 80, A: 255}
var selectionColor = color.NRGBA{R: 100, G: 140, B: 255, A: 64}
var zoomPreviewColor = color.NRGBA{R: 252, G: 186, B: 3, A: 48}
var zoomPreviewEdgeColor = color.NRGBA{R: 252, G: 186, B: 3, A: 255}

// regionColors are cycled through as annotations are added.
var regionColors = []color.NRGBA{
	{R: 76, G: 175, B: 80, A: 56},
	{R: 255, G: 152, B: 0, A: 56},
	{R: 156, G: 39, B: 176, A: 56},
	{R: 0, G: 188, B: 212, A: 56},
	{R: 233, G: 30, B: 99, A: 56},
}
var regionHoverAlpha uint8 = 96

var listSelectedColor = color.NRGBA{R: 55, G: 55, B: 61, A: 255}
var listHoverColor = color.NRGBA{R: 42, G: 45, B: 61, A: 255}

var errorColor = color.NRGBA{R: 207, G: 102, B: 121, A: 255}
var warningColor = color.NRGBA{R: 251, G: 192, B: 45, A: 255}

func NewTheme() *Theme {
	th := &Theme{}
	th.Material = *material.NewTheme()
	th.Material.Shaper = text.NewShaper(text.WithCollection(fontCollection))
	th.Material.Palette.Bg = backgroundColor
	th.Material.Palette.Fg = highEmphasisTextColor
	th.Material.Palette.ContrastBg = primaryColor
	th.Material.Palette.ContrastFg = black
	th.Material.TextSize = unit.Sp(14)
	th.Label = LabelStyle{
		Color:    highEmphasisTextColor,
		Shadow:   black,
		Font:     labelDefaultFont,
		FontSize: labelDefaultFontSize,
		Shaper:   th.Material.Shaper,
	}
	th.Tooltip.Bg = popupSurfaceColor
	th.Tooltip.Color = white
	th.Alert.Info = popupSurfaceColor
	th.Alert.Warning = warningColor
	th.Alert.Error = errorColor
	th.Alert.Text = white
	return th
}
