package tracker

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/wavetag/wavetag"
	"go.uber.org/zap"
)

// Model implements the mutable state for the annotator GUI. It is owned by
// the GUI goroutine; background workers communicate with it only by posting
// closures to Broker.ToModel, which the GUI loop hands to ProcessMsg.
type (
	Model struct {
		track *wavetag.Track
		peaks peakCache

		viewport          TimeRange
		viewportListeners []func(TimeRange)
		viewportChanges   int

		selection TimeRange
		cursor    float64

		annotations []annotationEntry
		selectedRow int
		handles     HandleFactory

		mode    Mode
		gesture gesture

		playing   bool
		startTime time.Time
		offset    float64
		end       float64
		speed     int // tenths of the nominal speed
		follow    bool

		loading            bool
		loadGen            int
		loadCancel         context.CancelFunc
		pendingAnnotations string

		dialog       Dialog
		dialogError  string
		pendingLabel TimeRange
		status       string

		alerts  Alerts
		broker  *Broker
		player  wavetag.Player
		decoder Decoder
		now     func() time.Time
		log     *zap.Logger
	}

	// Config holds the collaborators and initial settings of a Model. Only
	// Player and Decoder are required.
	Config struct {
		Player  wavetag.Player
		Decoder Decoder
		Handles HandleFactory
		Logger  *zap.Logger
		// Clock returns the current time; nil means time.Now.
		Clock func() time.Time
		// Speed is the initial playback speed multiplier, clamped to
		// [MinSpeed, MaxSpeed]; 0 means 1.0.
		Speed float64
		Mode  Mode
		// Follow makes the viewport page along with the playback cursor.
		Follow bool
	}

	// Decoder turns a file into a Track. Decode is called on a background
	// goroutine and must honor ctx.
	Decoder interface {
		Decode(ctx context.Context, path string) (*wavetag.Track, error)
	}

	// TimeRange is a span of time in seconds. Min <= Max is kept by every
	// operation of the model.
	TimeRange struct {
		Min, Max float64
	}

	Dialog int
)

const (
	NoDialog Dialog = iota
	LabelDialog
	ErrorDialog
	OpenAudioExplorer
	SaveAnnotationsExplorer
	LoadAnnotationsExplorer
	ExportSelectionExplorer
)

var (
	ErrNoTrack           = errors.New("no audio loaded")
	ErrSelectionTooShort = errors.New("selection too short")
	ErrIndexOutOfRange   = errors.New("annotation index out of range")
	ErrLoadInProgress    = errors.New("a file is already being loaded")
)

// initialViewport is shown before any audio has been loaded.
var initialViewport = TimeRange{0, 10}

func NewModel(broker *Broker, cfg Config) *Model {
	m := &Model{
		broker:      broker,
		player:      cfg.Player,
		decoder:     cfg.Decoder,
		handles:     cfg.Handles,
		log:         cfg.Logger,
		now:         cfg.Clock,
		viewport:    initialViewport,
		selectedRow: -1,
		speed:       10,
		mode:        cfg.Mode,
		follow:      cfg.Follow,
	}
	if m.handles == nil {
		m.handles = nopHandles{}
	}
	if m.log == nil {
		m.log = zap.NewNop()
	}
	if m.now == nil {
		m.now = time.Now
	}
	if cfg.Speed > 0 {
		m.speed = speedToTenths(min(max(cfg.Speed, wavetag.MinSpeed), wavetag.MaxSpeed))
	}
	if m.mode < SelectMode || m.mode > ZoomMode {
		m.mode = SelectMode
	}
	return m
}

// ProcessMsg handles a message received from Broker.ToModel. It must be called
// from the goroutine that owns the model.
func (m *Model) ProcessMsg(msg MsgToModel) {
	switch e := msg.Data.(type) {
	case func():
		e()
	case nil:
	default:
		m.log.Warn("unknown message to model", zap.Any("data", e))
	}
}

// Close cancels a pending load and stops the audio. The model must not be
// used after Close.
func (m *Model) Close() {
	if m.loadCancel != nil {
		m.loadCancel()
		m.loadCancel = nil
	}
	m.stopSound()
}

func (m *Model) Broker() *Broker { return m.broker }

// Track returns the loaded track, or nil.
func (m *Model) Track() *wavetag.Track { return m.track }

// Duration returns the duration of the loaded track, or 0.
func (m *Model) Duration() float64 {
	if m.track == nil {
		return 0
	}
	return m.track.Duration
}

// Loading reports whether an audio file is being decoded.
func (m *Model) Loading() bool { return m.loading }

// Status returns the latest status bar message.
func (m *Model) Status() string { return m.status }

func (m *Model) Dialog() Dialog { return m.dialog }

// DialogError returns the message of the error dialog.
func (m *Model) DialogError() string { return m.dialogError }

// Cancel closes any open dialog. A pending label prompt is discarded.
func (m *Model) Cancel() Action { return MakeAction((*cancel)(m)) }

type cancel Model

func (m *cancel) Do() {
	m.dialog = NoDialog
	m.dialogError = ""
	m.pendingLabel = TimeRange{}
}

func (m *Model) setStatus(status string) {
	m.status = status
	m.log.Debug("status", zap.String("status", status))
}

func (m *Model) showError(message string) {
	m.dialog = ErrorDialog
	m.dialogError = message
	m.status = message
}

func (m *Model) clamp(t float64) float64 {
	if m.track == nil {
		return 0
	}
	return m.track.Clamp(t)
}

func (m *Model) setCursor(t float64) { m.cursor = m.clamp(t) }

func (m *Model) interactive() bool { return !m.loading }

func (r TimeRange) Width() float64 { return r.Max - r.Min }

func (r TimeRange) Contains(t float64) bool { return t >= r.Min && t <= r.Max }

// finite reports whether both bounds and the width are finite numbers.
func (r TimeRange) finite() bool {
	w := r.Width()
	return !math.IsNaN(w) && !math.IsInf(w, 0) && !math.IsInf(r.Min, 0) && !math.IsInf(r.Max, 0)
}

func makeTimeRange(a, b float64) TimeRange {
	return TimeRange{min(a, b), max(a, b)}
}
