package gioui

import (
	"gioui.org/layout"
	"gioui.org/unit"
	"github.com/wavetag/wavetag"
	"github.com/wavetag/wavetag/tracker"
	"golang.org/x/exp/shiny/materialdesign/icons"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Toolbar holds the file, playback and mode controls above the waveform.
type Toolbar struct {
	OpenBtn     *ActionClickable
	SaveBtn     *ActionClickable
	LoadBtn     *ActionClickable
	ExportBtn   *ActionClickable
	PlayBtn     *ActionClickable
	PauseBtn    *ActionClickable
	StopBtn     *ActionClickable
	AnnotateBtn *ActionClickable
	ZoomFullBtn *ActionClickable
	SlowerBtn   *ActionClickable
	FasterBtn   *ActionClickable
	ModeBtns    [3]*ActionClickable
	FollowBtn   *BoolClickable

	openHint, saveHint, loadHint, exportHint string
	playHint, stopHint, annotateHint         string
	zoomFullHint, followHint, unfollowHint   string
	modeLabels                               [3]string
}

var (
	toolbarInset   = layout.UniformInset(unit.Dp(4))
	statusBarInset = layout.Inset{Top: unit.Dp(4), Bottom: unit.Dp(4), Left: unit.Dp(8), Right: unit.Dp(8)}
)

func NewToolbar(model *tracker.Model) *Toolbar {
	ret := &Toolbar{
		OpenBtn:     NewActionClickable(model.OpenAudio()),
		SaveBtn:     NewActionClickable(model.SaveAnnotations()),
		LoadBtn:     NewActionClickable(model.LoadAnnotations()),
		ExportBtn:   NewActionClickable(model.ExportSelection()),
		PlayBtn:     NewActionClickable(model.Play().Start()),
		PauseBtn:    NewActionClickable(model.Play().Pause()),
		StopBtn:     NewActionClickable(model.Play().Stop()),
		AnnotateBtn: NewActionClickable(model.Annotations().Annotate()),
		ZoomFullBtn: NewActionClickable(model.Viewport().ZoomFull()),
		SlowerBtn:   NewActionClickable(addAction(model.Play().Speed(), -1)),
		FasterBtn:   NewActionClickable(addAction(model.Play().Speed(), 1)),
		FollowBtn:   NewBoolClickable(model.Play().Follow()),
	}
	caser := cases.Title(language.English)
	for i := range ret.ModeBtns {
		ret.ModeBtns[i] = NewActionClickable(modeAction(model.Router().Mode(), tracker.Mode(i)))
		ret.modeLabels[i] = caser.String(tracker.Mode(i).String())
	}
	ret.openHint = makeHint("Open audio", " (%s)", "OpenAudio")
	ret.saveHint = makeHint("Save annotations", " (%s)", "SaveAnnotations")
	ret.loadHint = makeHint("Load annotations", " (%s)", "LoadAnnotations")
	ret.exportHint = makeHint("Export selection as .wav", " (%s)", "ExportSelection")
	ret.playHint = makeHint("Play", " (%s)", "PlayingToggle")
	ret.stopHint = makeHint("Stop and rewind", " (%s)", "StopPlaying")
	ret.annotateHint = makeHint("Label selection", " (%s)", "Annotate")
	ret.zoomFullHint = makeHint("Show whole track", " (%s)", "ZoomFull")
	ret.followHint = makeHint("Follow playback", " (%s)", "FollowToggle")
	ret.unfollowHint = makeHint("Stop following playback", " (%s)", "FollowToggle")
	return ret
}

func (tb *Toolbar) Layout(gtx C, t *Tracker) D {
	th := t.Theme
	mode := tracker.Mode(t.Router().Mode().Value())
	speed := Label(th, t.Play().Speed().String())
	return withBackground(gtx, surfaceColor, func(gtx C) D {
		return toolbarInset.Layout(gtx, func(gtx C) D {
			return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
				layout.Rigid(ActionIconButton(gtx, th, tb.OpenBtn, icons.FileFolderOpen, tb.openHint)),
				layout.Rigid(ActionIconButton(gtx, th, tb.SaveBtn, icons.ContentSave, tb.saveHint)),
				layout.Rigid(ActionIconButton(gtx, th, tb.LoadBtn, icons.FileFileUpload, tb.loadHint)),
				layout.Rigid(ActionIconButton(gtx, th, tb.ExportBtn, icons.ImageAudiotrack, tb.exportHint)),
				layout.Rigid(toolbarGap),
				layout.Rigid(ActionIconButton(gtx, th, tb.PlayBtn, icons.AVPlayArrow, tb.playHint)),
				layout.Rigid(ActionIconButton(gtx, th, tb.PauseBtn, icons.AVPause, "Pause")),
				layout.Rigid(ActionIconButton(gtx, th, tb.StopBtn, icons.AVStop, tb.stopHint)),
				layout.Rigid(ActionIconButton(gtx, th, tb.AnnotateBtn, icons.ActionLabel, tb.annotateHint)),
				layout.Rigid(toolbarGap),
				layout.Rigid(ActionIconButton(gtx, th, tb.SlowerBtn, icons.ContentRemove, "Slower")),
				layout.Rigid(speed.Layout),
				layout.Rigid(ActionIconButton(gtx, th, tb.FasterBtn, icons.ContentAdd, "Faster")),
				layout.Rigid(toolbarGap),
				layout.Rigid(ToggleButton(gtx, th, tb.ModeBtns[tracker.SelectMode], tb.modeLabels[tracker.SelectMode], mode == tracker.SelectMode).Layout),
				layout.Rigid(ToggleButton(gtx, th, tb.ModeBtns[tracker.PanMode], tb.modeLabels[tracker.PanMode], mode == tracker.PanMode).Layout),
				layout.Rigid(ToggleButton(gtx, th, tb.ModeBtns[tracker.ZoomMode], tb.modeLabels[tracker.ZoomMode], mode == tracker.ZoomMode).Layout),
				layout.Rigid(ActionIconButton(gtx, th, tb.ZoomFullBtn, icons.ActionZoomOut, tb.zoomFullHint)),
				layout.Rigid(ToggleIconButton(gtx, th, tb.FollowBtn, icons.ActionVisibilityOff, icons.ActionVisibility, tb.followHint, tb.unfollowHint)),
			)
		})
	})
}

func toolbarGap(gtx C) D {
	return layout.Spacer{Width: unit.Dp(16)}.Layout(gtx)
}

// layoutStatusBar shows the last status message and the playback position.
func layoutStatusBar(gtx C, t *Tracker) D {
	status := Label(t.Theme, t.Status())
	status.FontSize = unit.Sp(14)
	position := Label(t.Theme, positionText(t))
	position.FontSize = unit.Sp(14)
	position.Color = mediumEmphasisTextColor
	return withBackground(gtx, surfaceColor, func(gtx C) D {
		return statusBarInset.Layout(gtx, func(gtx C) D {
			gtx.Constraints.Min.X = gtx.Constraints.Max.X
			return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceBetween}.Layout(gtx,
				layout.Rigid(status.Layout),
				layout.Rigid(position.Layout),
			)
		})
	})
}

func positionText(t *Tracker) string {
	if t.Track() == nil {
		return ""
	}
	return wavetag.FormatDuration(t.Selection().Cursor()) + " / " + wavetag.FormatDuration(t.Duration())
}
