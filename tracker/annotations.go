package tracker

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/wavetag/wavetag"
	"go.uber.org/zap"
)

type (
	// Annotations is the ordered list of labeled regions. Each entry is paired
	// with the Handle of its visual representation; the pair is created,
	// reordered and removed together so the two can never drift apart.
	Annotations Model

	// Handle is the GUI's per-region state. Release is called exactly once,
	// when the region is removed from the list.
	Handle interface {
		Release()
	}

	// HandleFactory creates a Handle for a newly stored annotation.
	HandleFactory interface {
		NewHandle(a wavetag.Annotation) Handle
	}

	annotationEntry struct {
		wavetag.Annotation
		handle Handle
	}

	nopHandles struct{}
	nopHandle  struct{}
)

func (nopHandles) NewHandle(wavetag.Annotation) Handle { return nopHandle{} }
func (nopHandle) Release()                             {}

func (m *Model) Annotations() *Annotations { return (*Annotations)(m) }

func (m *Annotations) Len() int { return len(m.annotations) }

// At returns the i-th annotation and its handle.
func (m *Annotations) At(i int) (wavetag.Annotation, Handle, bool) {
	if i < 0 || i >= len(m.annotations) {
		return wavetag.Annotation{}, nil, false
	}
	e := m.annotations[i]
	return e.Annotation, e.handle, true
}

// Iterate yields the annotations in insertion order.
func (m *Annotations) Iterate(yield func(index int, a wavetag.Annotation) bool) {
	for i, e := range m.annotations {
		if !yield(i, e.Annotation) {
			return
		}
	}
}

// HitTest returns the index of the region containing t. On overlap the most
// recently added region wins, as it is drawn on top.
func (m *Annotations) HitTest(t float64) (int, bool) {
	for i := len(m.annotations) - 1; i >= 0; i-- {
		if m.annotations[i].Contains(t) {
			return i, true
		}
	}
	return -1, false
}

// Add stores a region. start and end are limited to the track before the
// width is checked. On success the selection collapses to the region end.
func (m *Annotations) Add(start, end float64, label string) error {
	if m.track == nil {
		return ErrNoTrack
	}
	if label == "" {
		return wavetag.ErrMissingLabel
	}
	r := makeTimeRange((*Model)(m).clamp(start), (*Model)(m).clamp(end))
	if r.Width() < wavetag.MinSelection {
		(*Model)(m).setStatus("Selection too short!")
		return ErrSelectionTooShort
	}
	a := wavetag.Annotation{Start: r.Min, End: r.Max, Label: label}
	m.annotations = append(m.annotations, annotationEntry{Annotation: a, handle: m.handles.NewHandle(a)})
	m.selection = TimeRange{r.Max, r.Max}
	(*Model)(m).setCursor(r.Max)
	(*Model)(m).setStatus(fmt.Sprintf("Added: %s", label))
	m.log.Debug("annotation added", zap.Float64("start", a.Start), zap.Float64("end", a.End), zap.String("label", label))
	return nil
}

// DeleteAt removes the i-th annotation and releases its handle.
func (m *Annotations) DeleteAt(i int) error {
	if i < 0 || i >= len(m.annotations) {
		(*Model)(m).setStatus(fmt.Sprintf("No annotation at index %d", i))
		return ErrIndexOutOfRange
	}
	e := m.annotations[i]
	e.handle.Release()
	m.annotations = slices.Delete(m.annotations, i, i+1)
	switch {
	case len(m.annotations) == 0:
		m.selectedRow = -1
	case m.selectedRow > i || m.selectedRow >= len(m.annotations):
		m.selectedRow--
	}
	(*Model)(m).setStatus(fmt.Sprintf("Deleted: %s", e.Label))
	m.log.Debug("annotation deleted", zap.Int("index", i), zap.String("label", e.Label))
	return nil
}

// Clear removes every annotation, releasing all handles.
func (m *Annotations) Clear() {
	for i := range m.annotations {
		m.annotations[i].handle.Release()
		m.annotations[i] = annotationEntry{}
	}
	m.annotations = m.annotations[:0]
	m.selectedRow = -1
}

// LoadBulk replaces the list with list, verbatim.
func (m *Annotations) LoadBulk(list []wavetag.Annotation) {
	m.Clear()
	for _, a := range list {
		m.annotations = append(m.annotations, annotationEntry{Annotation: a, handle: m.handles.NewHandle(a)})
	}
}

// Serialize returns the document for the loaded track.
func (m *Annotations) Serialize() wavetag.AnnotationFile {
	f := wavetag.AnnotationFile{
		Annotations: make([]wavetag.Annotation, len(m.annotations)),
	}
	if m.track != nil {
		f.File = filepath.Base(m.track.Path)
		f.Duration = m.track.Duration
	}
	for i, e := range m.annotations {
		f.Annotations[i] = e.Annotation
	}
	return f
}

// Describe formats the i-th annotation for the list view.
func (m *Annotations) Describe(i int) string {
	if i < 0 || i >= len(m.annotations) {
		return ""
	}
	a := m.annotations[i]
	return fmt.Sprintf("%02d | %s | %s - %s", i+1, a.Label, wavetag.FormatDuration(a.Start), wavetag.FormatDuration(a.End))
}

// List returns the list view of the annotations, whose selected row is the
// target of DeleteSelected.
func (m *Annotations) List() List { return MakeList((*annotationList)(m)) }

type annotationList Annotations

func (v *annotationList) Selected() int     { return v.selectedRow }
func (v *annotationList) SetSelected(i int) { v.selectedRow = i }
func (v *annotationList) Count() int        { return len(v.annotations) }

// Annotate pauses playback and, if the selection is wide enough, opens the
// label prompt for it. The prompt completes with CommitLabel.
func (m *Annotations) Annotate() Action { return MakeAction((*annotate)(m)) }

type annotate Model

func (m *annotate) Enabled() bool { return m.track != nil && (*Model)(m).interactive() }
func (m *annotate) Do() {
	(*Model)(m).pause()
	r := makeTimeRange((*Model)(m).clamp(m.selection.Min), (*Model)(m).clamp(m.selection.Max))
	if r.Width() < wavetag.MinSelection {
		(*Model)(m).setStatus("Selection too short!")
		return
	}
	m.pendingLabel = r
	m.dialog = LabelDialog
}

// Pending returns the range waiting for a label.
func (m *Annotations) Pending() TimeRange { return m.pendingLabel }

// CommitLabel completes the label prompt. A blank label adds nothing. The
// range is checked again against the current track, which may have been
// replaced while the prompt was open.
func (m *Annotations) CommitLabel(label string) error {
	if m.dialog != LabelDialog {
		return nil
	}
	r := m.pendingLabel
	m.dialog = NoDialog
	m.pendingLabel = TimeRange{}
	label = strings.TrimSpace(label)
	if label == "" {
		return nil
	}
	if err := m.Add(r.Min, r.Max, label); err != nil {
		m.log.Warn("label not added", zap.Float64("start", r.Min), zap.Float64("end", r.Max), zap.Error(err))
		return err
	}
	return nil
}

// DeleteSelected deletes the annotation selected in the list. Nothing
// happens when no row is selected.
func (m *Annotations) DeleteSelected() Action { return MakeAction((*deleteSelected)(m)) }

type deleteSelected Model

func (m *deleteSelected) Enabled() bool {
	return (*Model)(m).interactive() && (*Model)(m).Annotations().List().Selected() >= 0
}
func (m *deleteSelected) Do() {
	(*Model)(m).Annotations().DeleteAt(m.selectedRow)
}

// PlayAt zooms to the i-th annotation, selects it and plays it.
func (m *Annotations) PlayAt(i int) bool {
	if !(*Model)(m).interactive() || i < 0 || i >= len(m.annotations) {
		return false
	}
	a := m.annotations[i].Annotation
	m.selectedRow = i
	(*Model)(m).Viewport().ZoomToAnnotation(i)
	(*Model)(m).stopSound()
	m.selection = TimeRange{a.Start, a.End}
	(*Model)(m).setCursor(a.Start)
	return (*Model)(m).startPlayback()
}
