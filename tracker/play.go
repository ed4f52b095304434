package tracker

import (
	"fmt"
	"math"
	"time"

	"github.com/wavetag/wavetag"
	"go.uber.org/zap"
)

// TickInterval is how often the GUI loop calls Tick while playing.
const TickInterval = 33 * time.Millisecond

type Play Model

func (m *Model) Play() *Play { return (*Play)(m) }

func (m *Play) Playing() bool { return m.playing }

// SpeedFactor returns the playback speed multiplier.
func (m *Play) SpeedFactor() float64 { return float64(m.speed) / 10 }

// Origin returns the range that Start would play: the selection if it is
// wide enough, otherwise from the cursor to the end of the track.
func (m *Play) Origin() TimeRange {
	if (*Model)(m).Selection().Active() {
		return m.selection
	}
	return TimeRange{m.cursor, (*Model)(m).Duration()}
}

// Tick advances the cursor from the wall clock. Playback stops at the end of
// an active selection (pausing, so the cursor stays there) or at the end of
// the track. It returns true if the cursor moved or playback stopped.
func (m *Play) Tick(now time.Time) bool {
	if !m.playing || m.track == nil {
		return false
	}
	pos := m.offset + now.Sub(m.startTime).Seconds()*m.SpeedFactor()
	sel := m.selection
	if sel.Width() > wavetag.MinSelection && pos >= sel.Max && m.offset < sel.Max {
		m.cursor = m.track.Clamp(sel.Max)
		(*Model)(m).pause()
		return true
	}
	if pos >= m.track.Duration {
		m.cursor = m.track.Duration
		(*Model)(m).stopSound()
		return true
	}
	prev := m.cursor
	(*Model)(m).setCursor(pos)
	if m.follow && !m.viewport.Contains(m.cursor) {
		w := m.viewport.Width()
		(*Model)(m).Viewport().setRange(TimeRange{m.cursor, m.cursor + w})
	}
	return m.cursor != prev
}

// Follow returns a Bool that makes the viewport page along with the
// playback cursor.
func (m *Play) Follow() Bool { return MakeBoolFromPtr(&m.follow) }

// Start starts playback, see Origin.
func (m *Play) Start() Action { return MakeAction((*startPlay)(m)) }

type startPlay Model

func (m *startPlay) Enabled() bool { return m.track != nil && (*Model)(m).interactive() }
func (m *startPlay) Do()           { (*Model)(m).startPlayback() }

// Pause stops playback keeping the cursor and selection.
func (m *Play) Pause() Action { return MakeAction((*pausePlay)(m)) }

type pausePlay Model

func (m *pausePlay) Enabled() bool { return m.playing }
func (m *pausePlay) Do()           { (*Model)(m).pause() }

// Stop stops playback and rewinds the cursor and selection to the beginning.
func (m *Play) Stop() Action { return MakeAction((*stopPlay)(m)) }

type stopPlay Model

func (m *stopPlay) Enabled() bool { return m.track != nil && (*Model)(m).interactive() }
func (m *stopPlay) Do() {
	(*Model)(m).stopSound()
	m.cursor = 0
	m.selection = TimeRange{}
	(*Model)(m).setStatus("Stopped (Reset)")
}

// Toggle pauses when playing and starts otherwise.
func (m *Play) Toggle() Action { return MakeAction((*togglePlay)(m)) }

type togglePlay Model

func (m *togglePlay) Enabled() bool { return m.track != nil && (*Model)(m).interactive() }
func (m *togglePlay) Do() {
	if m.playing {
		(*Model)(m).pause()
		return
	}
	(*Model)(m).startPlayback()
}

// Speed returns the playback speed in tenths, e.g. 10 is the nominal speed.
// Changing it while playing restarts playback from the cursor.
func (m *Play) Speed() Int { return MakeInt((*speed)(m)) }

type speed Model

func (v *speed) Value() int { return v.speed }
func (v *speed) Range() RangeInclusive {
	return RangeInclusive{speedToTenths(wavetag.MinSpeed), speedToTenths(wavetag.MaxSpeed)}
}
func (v *speed) StringOf(value int) string { return fmt.Sprintf("%.1fx", float64(value)/10) }
func (v *speed) SetValue(value int) bool {
	m := (*Model)(v)
	if !m.playing {
		v.speed = value
		return true
	}
	m.Play().Tick(m.now())
	v.speed = value
	if m.playing {
		m.restartFrom(m.cursor, m.end)
	}
	return true
}

func speedToTenths(f float64) int { return int(math.Round(f * 10)) }

func (m *Model) startPlayback() bool {
	if m.track == nil {
		m.setStatus("Load audio first!")
		return false
	}
	if !m.interactive() {
		return false
	}
	m.stopSound()
	r := m.Play().Origin()
	start := m.track.Clamp(r.Min)
	end := m.track.Clamp(r.Max)
	if end <= start {
		end = m.track.Duration
	}
	if start >= m.track.Duration {
		return false
	}
	if !m.restartFrom(start, end) {
		return false
	}
	m.setStatus(fmt.Sprintf("Playing at %.1fx...", m.Play().SpeedFactor()))
	return true
}

// restartFrom hands the samples in [start, end) to the player and anchors the
// clock at start.
func (m *Model) restartFrom(start, end float64) bool {
	samples := m.track.Slice(start, end)
	if len(samples) == 0 {
		m.stopSound()
		return false
	}
	if m.player != nil {
		rate := int(math.Round(float64(m.track.SampleRate) * m.Play().SpeedFactor()))
		if err := m.player.Play(samples, rate); err != nil {
			m.playing = false
			m.Alerts().Add(fmt.Sprintf("Error starting playback: %v", err), Error)
			m.log.Error("could not start playback", zap.Error(err))
			return false
		}
	}
	m.playing = true
	m.startTime = m.now()
	m.offset = start
	m.end = end
	m.cursor = start
	m.log.Debug("playback started",
		zap.Float64("start", start),
		zap.Float64("end", end),
		zap.Float64("speed", m.Play().SpeedFactor()))
	return true
}

func (m *Model) pause() {
	if !m.playing {
		return
	}
	m.stopSound()
	m.setStatus("Paused")
}

// stopSound silences the player without touching the cursor.
func (m *Model) stopSound() {
	if !m.playing {
		return
	}
	m.playing = false
	if m.player != nil {
		if err := m.player.Stop(); err != nil {
			m.log.Warn("could not stop playback", zap.Error(err))
		}
	}
	m.log.Debug("playback stopped", zap.Float64("cursor", m.cursor))
}
