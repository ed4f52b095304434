package gioui

import (
	"fmt"
	"image"
	"io"
	"path/filepath"
	"time"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/x/explorer"
	"github.com/wavetag/wavetag/decode"
	"github.com/wavetag/wavetag/tracker"
	"go.uber.org/zap"
)

type Tracker struct {
	Theme           *Theme
	Toolbar         *Toolbar
	Waveform        *WaveformEditor
	AnnotationList  *AnnotationList
	Regions         *RegionPalette
	HorizontalSplit *SplitState
	PopupAlert      *AlertsState

	DialogState *DialogState
	Explorer    *explorer.Explorer
	Exploring   bool

	preferences Preferences
	log         *zap.Logger

	*tracker.Model
}

// NewTracker creates the GUI for model. The model must have been created with
// regions as its HandleFactory so that regions get their colors.
func NewTracker(model *tracker.Model, regions *RegionPalette, preferences Preferences, log *zap.Logger) *Tracker {
	t := &Tracker{
		Theme:           NewTheme(),
		Toolbar:         NewToolbar(model),
		Waveform:        NewWaveformEditor(),
		AnnotationList:  NewAnnotationList(model),
		Regions:         regions,
		HorizontalSplit: &SplitState{Ratio: 0.5},
		PopupAlert:      NewAlertsState(),
		DialogState:     NewDialogState(),
		preferences:     preferences,
		log:             log,
		Model:           model,
	}
	for _, err := range []error{preferences.YmlError, keyBindingError} {
		if err != nil {
			model.Alerts().AddAlert(tracker.Alert{
				Priority: tracker.Warning,
				Message:  err.Error(),
				Duration: 10 * time.Second,
			})
		}
	}
	return t
}

// Main runs the window until it is closed or the broker asks it to close.
// It owns the model: every model call, including the results of background
// jobs, happens on this goroutine.
func (t *Tracker) Main() {
	ticker := time.NewTicker(tracker.TickInterval)
	defer ticker.Stop()
	var ops op.Ops
	w := t.newWindow()
	t.Explorer = explorer.NewExplorer(w)
	titleTrack := ""
	acks := make(chan struct{})
	events := make(chan event.Event)
	go func() {
		for {
			ev := w.Event()
			events <- ev
			<-acks
			if _, ok := ev.(app.DestroyEvent); ok {
				return
			}
		}
	}()
F:
	for {
		select {
		case e := <-t.Broker().ToModel:
			t.ProcessMsg(e)
			w.Invalidate()
		case <-t.Broker().CloseGUI:
			w.Perform(system.ActionClose)
		case <-ticker.C:
			if t.Play().Playing() && t.Play().Tick(time.Now()) {
				w.Invalidate()
			}
		case e := <-events:
			switch e := e.(type) {
			case app.DestroyEvent:
				if e.Err != nil {
					t.log.Error("window closed with error", zap.Error(e.Err))
				}
				acks <- struct{}{}
				break F
			case app.FrameEvent:
				if name := t.trackName(); name != titleTrack {
					titleTrack = name
					w.Option(app.Title(titleFromTrack(name)))
				}
				gtx := app.NewContext(&ops, e)
				t.Layout(gtx)
				e.Frame(gtx.Ops)
			}
			acks <- struct{}{}
		}
	}
	t.Close()
	close(t.Broker().FinishedGUI)
}

func (t *Tracker) newWindow() *app.Window {
	w := new(app.Window)
	w.Option(app.Title(titleFromTrack("")))
	w.Option(app.Size(t.preferences.WindowSize()))
	if t.preferences.Window.Maximized {
		w.Option(app.Maximized.Option())
	}
	return w
}

func (t *Tracker) trackName() string {
	if tr := t.Track(); tr != nil {
		return filepath.Base(tr.Path)
	}
	return ""
}

func titleFromTrack(name string) string {
	if name == "" {
		return "Wavetag"
	}
	return fmt.Sprintf("Wavetag - %s", name)
}

func (t *Tracker) Layout(gtx C) {
	defer clip.Rect(image.Rectangle{Max: gtx.Constraints.Max}).Push(gtx.Ops).Pop()
	paint.Fill(gtx.Ops, t.Theme.Material.Bg)
	event.Op(gtx.Ops, t)

	layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			return t.Toolbar.Layout(gtx, t)
		}),
		layout.Flexed(1, func(gtx C) D {
			return t.HorizontalSplit.Layout(gtx,
				func(gtx C) D { return t.Waveform.Layout(gtx, t) },
				func(gtx C) D { return t.AnnotationList.Layout(gtx, t) },
			)
		}),
		layout.Rigid(func(gtx C) D {
			return layoutStatusBar(gtx, t)
		}),
	)
	alerts := Alerts(t.Alerts(), t.Theme, t.PopupAlert)
	alerts.Layout(gtx)
	t.showDialog(gtx)
	for {
		ev, ok := gtx.Event(
			key.Filter{Name: "", Optional: key.ModAlt | key.ModCommand | key.ModShift | key.ModShortcut | key.ModSuper},
		)
		if !ok {
			break
		}
		if e, ok := ev.(key.Event); ok {
			t.KeyEvent(e)
		}
	}
}

func (t *Tracker) showDialog(gtx C) {
	if t.Exploring {
		return
	}
	switch t.Dialog() {
	case tracker.ErrorDialog:
		t.DialogState.opened(gtx, tracker.ErrorDialog)
		dialog := ErrorDialog(t.Theme, t.DialogState, t.Model)
		dialog.Layout(gtx)
	case tracker.LabelDialog:
		t.DialogState.opened(gtx, tracker.LabelDialog)
		dialog := LabelDialog(t.Theme, t.DialogState, t.Model)
		dialog.Layout(gtx)
	case tracker.OpenAudioExplorer:
		t.explorerChooseFile(func(rc io.ReadCloser) { t.OpenAudioFile(rc) }, decode.Extensions...)
	case tracker.SaveAnnotationsExplorer:
		t.explorerCreateFile(func(wc io.WriteCloser) { t.WriteAnnotations(wc) }, filepath.Base(t.DefaultAnnotationPath()))
	case tracker.LoadAnnotationsExplorer:
		t.explorerChooseFile(func(rc io.ReadCloser) { t.ReadAnnotations(rc) }, ".json")
	case tracker.ExportSelectionExplorer:
		t.explorerCreateFile(func(wc io.WriteCloser) { t.WriteSelectionWav(wc) }, t.DefaultExportPath())
	default:
		t.DialogState.closed()
	}
}

func (t *Tracker) explorerChooseFile(success func(io.ReadCloser), extensions ...string) {
	t.Exploring = true
	go func() {
		file, err := t.Explorer.ChooseFile(extensions...)
		t.Broker().ToModel <- tracker.MsgToModel{Data: func() {
			t.Exploring = false
			if err == nil {
				success(file)
			} else {
				t.explorerFailed(err)
			}
		}}
	}()
}

func (t *Tracker) explorerCreateFile(success func(io.WriteCloser), filename string) {
	t.Exploring = true
	go func() {
		file, err := t.Explorer.CreateFile(filename)
		t.Broker().ToModel <- tracker.MsgToModel{Data: func() {
			t.Exploring = false
			if err == nil {
				success(file)
			} else {
				t.explorerFailed(err)
			}
		}}
	}()
}

func (t *Tracker) explorerFailed(err error) {
	t.Cancel().Do()
	if err != explorer.ErrUserDecline {
		t.log.Warn("file dialog failed", zap.Error(err))
		t.Alerts().Add(err.Error(), tracker.Error)
	}
}
