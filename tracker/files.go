package tracker

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/wavetag/wavetag"
	"go.uber.org/zap"
)

const loadingAlert = "loading"

// LoadAudio starts decoding path in the background. Playback stops at once;
// the current track and its annotations stay until the decoded track arrives
// through the broker, and survive a failed decode.
func (m *Model) LoadAudio(path string) error {
	if m.loading {
		return ErrLoadInProgress
	}
	if m.decoder == nil {
		return fmt.Errorf("could not load %s: no decoder", filepath.Base(path))
	}
	m.stopSound()
	m.gesture = gesture{}
	m.pendingAnnotations = ""
	m.loading = true
	m.loadGen++
	gen := m.loadGen
	ctx, cancel := context.WithCancel(context.Background())
	m.loadCancel = cancel
	name := filepath.Base(path)
	m.setStatus(fmt.Sprintf("Loading %s...", name))
	m.Alerts().AddAlert(Alert{Name: loadingAlert, Message: fmt.Sprintf("Loading %s...", name), Priority: Info, Duration: time.Hour})
	m.log.Info("loading audio", zap.String("path", path))
	decoder := m.decoder
	go func() {
		track, err := decoder.Decode(ctx, path)
		if ctx.Err() != nil {
			return
		}
		select {
		case m.broker.ToModel <- MsgToModel{Data: func() { m.finishLoad(gen, path, track, err) }}:
		case <-ctx.Done():
		}
	}()
	return nil
}

func (m *Model) finishLoad(gen int, path string, track *wavetag.Track, err error) {
	if gen != m.loadGen || !m.loading {
		return
	}
	m.loading = false
	if m.loadCancel != nil {
		m.loadCancel()
		m.loadCancel = nil
	}
	m.Alerts().ClearNamed(loadingAlert)
	annotations := m.pendingAnnotations
	m.pendingAnnotations = ""
	if err != nil {
		m.log.Error("could not load audio", zap.String("path", path), zap.Error(err))
		m.showError(err.Error())
		return
	}
	m.Annotations().Clear()
	m.track = track
	m.cursor = 0
	m.selection = TimeRange{}
	m.Viewport().setRange(TimeRange{0, track.Duration})
	m.setStatus(fmt.Sprintf("Loaded: %s (%s)", filepath.Base(path), wavetag.FormatDuration(track.Duration)))
	m.log.Info("audio loaded", zap.String("path", path), zap.Float64("duration", track.Duration))
	if annotations != "" {
		f, err := os.Open(annotations)
		if err != nil {
			m.Alerts().Add(fmt.Sprintf("Error reading annotations: %v", err), Error)
			return
		}
		m.ReadAnnotations(f)
	}
}

// LoadSession loads the audio file and, once it has been decoded, the
// annotation file. An empty annotationsPath loads only the audio.
func (m *Model) LoadSession(audioPath, annotationsPath string) error {
	if err := m.LoadAudio(audioPath); err != nil {
		return err
	}
	m.pendingAnnotations = annotationsPath
	return nil
}

// OpenAudioFile loads the audio file chosen in the file dialog. Only files
// with a path on disk can be decoded, so r must be an *os.File.
func (m *Model) OpenAudioFile(r io.ReadCloser) bool {
	m.dialog = NoDialog
	file, ok := r.(*os.File)
	if !ok {
		r.Close()
		m.Alerts().Add("Cannot decode audio without a file path", Error)
		return false
	}
	path := file.Name()
	file.Close()
	if err := m.LoadAudio(path); err != nil {
		m.Alerts().Add(err.Error(), Error)
		return false
	}
	return true
}

// OpenAudio opens the file dialog for choosing an audio file.
func (m *Model) OpenAudio() Action { return MakeAction((*openAudio)(m)) }

type openAudio Model

func (m *openAudio) Enabled() bool { return (*Model)(m).interactive() }
func (m *openAudio) Do()           { m.dialog = OpenAudioExplorer }

// SaveAnnotations opens the save dialog. Without a track it does nothing.
func (m *Model) SaveAnnotations() Action { return MakeAction((*saveAnnotations)(m)) }

type saveAnnotations Model

func (m *saveAnnotations) Enabled() bool { return m.track != nil && (*Model)(m).interactive() }
func (m *saveAnnotations) Do() {
	if m.track == nil {
		return
	}
	m.dialog = SaveAnnotationsExplorer
}

// LoadAnnotations opens the dialog for choosing an annotation file.
func (m *Model) LoadAnnotations() Action { return MakeAction((*loadAnnotations)(m)) }

type loadAnnotations Model

func (m *loadAnnotations) Enabled() bool { return (*Model)(m).interactive() }
func (m *loadAnnotations) Do() {
	if m.track == nil {
		(*Model)(m).setStatus("Load audio first!")
		return
	}
	m.dialog = LoadAnnotationsExplorer
}

// ExportSelection opens the dialog for writing the selected audio to a wav
// file.
func (m *Model) ExportSelection() Action { return MakeAction((*exportSelection)(m)) }

type exportSelection Model

func (m *exportSelection) Enabled() bool {
	return m.track != nil && (*Model)(m).interactive() && (*Model)(m).Selection().Active()
}
func (m *exportSelection) Do() { m.dialog = ExportSelectionExplorer }

// DefaultAnnotationPath returns the file name proposed by the save dialog.
func (m *Model) DefaultAnnotationPath() string {
	if m.track == nil {
		return ""
	}
	return wavetag.AnnotationPath(m.track.Path)
}

// DefaultExportPath returns the file name proposed by the export dialog.
func (m *Model) DefaultExportPath() string {
	if m.track == nil {
		return ""
	}
	base := filepath.Base(m.track.Path)
	base = base[:len(base)-len(filepath.Ext(base))]
	return fmt.Sprintf("%s_%.2f-%.2f.wav", base, m.selection.Min, m.selection.Max)
}

// WriteAnnotations writes the annotation file to w and closes it.
func (m *Model) WriteAnnotations(w io.WriteCloser) bool {
	m.dialog = NoDialog
	if m.track == nil {
		w.Close()
		return false
	}
	f := m.Annotations().Serialize()
	if err := f.Write(w); err != nil {
		w.Close()
		m.Alerts().Add(fmt.Sprintf("Error writing annotations: %v", err), Error)
		return false
	}
	if err := w.Close(); err != nil {
		m.Alerts().Add(fmt.Sprintf("Error writing annotations: %v", err), Error)
		return false
	}
	name := "file"
	if file, ok := w.(*os.File); ok {
		name = file.Name()
	}
	m.setStatus("Saved to " + name)
	m.log.Info("annotations saved", zap.String("path", name), zap.Int("count", len(f.Annotations)))
	return true
}

// ReadAnnotations replaces the annotations with the contents of r and closes
// it. A malformed file leaves the current annotations untouched.
func (m *Model) ReadAnnotations(r io.ReadCloser) bool {
	m.dialog = NoDialog
	defer r.Close()
	if m.track == nil {
		m.setStatus("Load audio first!")
		return false
	}
	f, err := wavetag.ReadAnnotationFile(r)
	if err != nil {
		m.Alerts().Add(fmt.Sprintf("Error reading annotations: %v", err), Error)
		m.log.Warn("could not read annotations", zap.Error(err))
		return false
	}
	m.Annotations().LoadBulk(f.Annotations)
	m.setStatus(fmt.Sprintf("Loaded %d annotations", len(f.Annotations)))
	m.log.Info("annotations loaded", zap.Int("count", len(f.Annotations)))
	return true
}

// WriteSelectionWav writes the selected audio as a 16-bit wav file to w and
// closes it.
func (m *Model) WriteSelectionWav(w io.WriteCloser) bool {
	m.dialog = NoDialog
	defer w.Close()
	if m.track == nil {
		return false
	}
	samples := m.track.Slice(m.selection.Min, m.selection.Max)
	if len(samples) == 0 {
		m.setStatus("Selection too short!")
		return false
	}
	if err := wavetag.WriteWav(w, samples, m.track.SampleRate); err != nil {
		m.Alerts().Add(fmt.Sprintf("Error exporting selection: %v", err), Error)
		return false
	}
	m.Alerts().Add("Selection exported", Info)
	return true
}
