package tracker_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wavetag/wavetag/tracker"
)

func TestPlaySelectionStopsAtSelectionEnd(t *testing.T) {
	env := newLoadedEnv(t)
	m := env.model
	m.Selection().Set(tracker.TimeRange{Min: 2, Max: 4})
	m.Play().Start().Do()
	require.True(t, m.Play().Playing())
	assert.Equal(t, fakePlay{samples: 2000, sampleRate: testSampleRate}, env.player.last())
	assert.Equal(t, 2.0, m.Selection().Cursor())
	assert.Equal(t, "Playing at 1.0x...", m.Status())

	env.clock.Advance(time.Second)
	assert.True(t, m.Play().Tick(env.clock.Now()))
	assert.InDelta(t, 3.0, m.Selection().Cursor(), 1e-9)
	assert.True(t, m.Play().Playing())

	env.clock.Advance(1500 * time.Millisecond)
	assert.True(t, m.Play().Tick(env.clock.Now()))
	assert.False(t, m.Play().Playing())
	assert.Equal(t, 4.0, m.Selection().Cursor())
	assert.Equal(t, tracker.TimeRange{Min: 2, Max: 4}, m.Selection().Range())
	assert.Equal(t, "Paused", m.Status())
	assert.Equal(t, 1, env.player.stops)
}

func TestPlayFromCursorStopsAtTrackEnd(t *testing.T) {
	env := newLoadedEnv(t)
	m := env.model
	m.Selection().Seek(8)
	m.Play().Start().Do()
	require.True(t, m.Play().Playing())
	assert.Equal(t, fakePlay{samples: 2000, sampleRate: testSampleRate}, env.player.last())
	env.clock.Advance(3 * time.Second)
	m.Play().Tick(env.clock.Now())
	assert.False(t, m.Play().Playing())
	assert.Equal(t, 10.0, m.Selection().Cursor())
	assert.False(t, m.Play().Tick(env.clock.Now()))
}

func TestPlayFromTrackEndIsRejected(t *testing.T) {
	env := newLoadedEnv(t)
	m := env.model
	m.Selection().Seek(10)
	m.Play().Start().Do()
	assert.False(t, m.Play().Playing())
	assert.Empty(t, env.player.plays)
}

func TestPlayWithoutTrack(t *testing.T) {
	env := newTestEnv(t)
	m := env.model
	assert.False(t, m.Play().Start().Enabled())
	m.Play().Toggle().Do()
	assert.False(t, m.Play().Playing())
	assert.Empty(t, env.player.plays)
}

func TestPlayOrigin(t *testing.T) {
	env := newLoadedEnv(t)
	m := env.model
	m.Selection().Seek(3)
	assert.Equal(t, tracker.TimeRange{Min: 3, Max: 10}, m.Play().Origin())
	m.Selection().Set(tracker.TimeRange{Min: 5, Max: 5.05})
	assert.Equal(t, tracker.TimeRange{Min: 3, Max: 10}, m.Play().Origin(), "a 0.05s selection is not a playback range")
	m.Selection().Set(tracker.TimeRange{Min: 5, Max: 6})
	assert.Equal(t, tracker.TimeRange{Min: 5, Max: 6}, m.Play().Origin())
}

func TestTickIgnoresSelectionPlayedFromBeyondItsEnd(t *testing.T) {
	env := newLoadedEnv(t)
	m := env.model
	m.Selection().Seek(6)
	m.Play().Start().Do()
	// selecting a region behind the playhead must not stop playback
	m.Selection().Set(tracker.TimeRange{Min: 1, Max: 2})
	env.clock.Advance(time.Second)
	m.Play().Tick(env.clock.Now())
	assert.True(t, m.Play().Playing())
	assert.InDelta(t, 7.0, m.Selection().Cursor(), 1e-9)
}

func TestPauseStopToggle(t *testing.T) {
	env := newLoadedEnv(t)
	m := env.model
	m.Selection().Set(tracker.TimeRange{Min: 2, Max: 4})
	assert.False(t, m.Play().Pause().Enabled())
	m.Play().Toggle().Do()
	require.True(t, m.Play().Playing())
	env.clock.Advance(500 * time.Millisecond)
	m.Play().Tick(env.clock.Now())
	m.Play().Toggle().Do()
	assert.False(t, m.Play().Playing())
	assert.Equal(t, "Paused", m.Status())
	assert.InDelta(t, 2.5, m.Selection().Cursor(), 1e-9)

	m.Play().Start().Do()
	m.Play().Stop().Do()
	assert.False(t, m.Play().Playing())
	assert.Equal(t, 0.0, m.Selection().Cursor())
	assert.Equal(t, tracker.TimeRange{}, m.Selection().Range())
	assert.Equal(t, "Stopped (Reset)", m.Status())
}

func TestSpeed(t *testing.T) {
	env := newLoadedEnv(t)
	m := env.model
	s := m.Play().Speed()
	assert.Equal(t, 10, s.Value())
	assert.Equal(t, tracker.RangeInclusive{Min: 1, Max: 20}, s.Range())
	assert.Equal(t, "1.0x", s.String())
	s.SetValue(50)
	assert.Equal(t, 20, s.Value())
	s.SetValue(-3)
	assert.Equal(t, 1, s.Value())
	s.SetValue(5)
	assert.Equal(t, 0.5, m.Play().SpeedFactor())

	m.Play().Start().Do()
	assert.Equal(t, fakePlay{samples: 10000, sampleRate: 500}, env.player.last())
	env.clock.Advance(2 * time.Second)
	m.Play().Tick(env.clock.Now())
	assert.InDelta(t, 1.0, m.Selection().Cursor(), 1e-9)
}

func TestSpeedChangeWhilePlayingReanchors(t *testing.T) {
	env := newLoadedEnv(t)
	m := env.model
	m.Play().Start().Do()
	env.clock.Advance(2 * time.Second)
	require.True(t, m.Play().Speed().SetValue(20))
	require.True(t, m.Play().Playing())
	require.Len(t, env.player.plays, 2)
	assert.Equal(t, fakePlay{samples: 8000, sampleRate: 2000}, env.player.last())
	assert.InDelta(t, 2.0, m.Selection().Cursor(), 1e-9)
	env.clock.Advance(time.Second)
	m.Play().Tick(env.clock.Now())
	assert.InDelta(t, 4.0, m.Selection().Cursor(), 1e-9)
}

func TestPlayerErrorIsReported(t *testing.T) {
	env := newLoadedEnv(t)
	env.player.err = errors.New("device busy")
	m := env.model
	m.Play().Start().Do()
	assert.False(t, m.Play().Playing())
	alerts := errorAlerts(m)
	require.Len(t, alerts, 1)
	assert.Contains(t, alerts[0].Message, "device busy")
}

func TestSeekRestartsPlayback(t *testing.T) {
	env := newLoadedEnv(t)
	m := env.model
	m.Play().Start().Do()
	m.Selection().Click(6)
	assert.True(t, m.Play().Playing())
	assert.Equal(t, 6.0, m.Selection().Cursor())
	assert.Equal(t, fakePlay{samples: 4000, sampleRate: testSampleRate}, env.player.last())
}

func TestFollowPagesViewport(t *testing.T) {
	env := newLoadedEnv(t)
	m := env.model
	require.True(t, m.Viewport().Set(tracker.TimeRange{Min: 0, Max: 2}))
	m.Play().Start().Do()
	env.clock.Advance(3 * time.Second)
	m.Play().Tick(env.clock.Now())
	assert.Equal(t, tracker.TimeRange{Min: 0, Max: 2}, m.Viewport().Range(), "no paging unless following")

	require.True(t, m.Play().Follow().SetValue(true))
	env.clock.Advance(time.Second)
	m.Play().Tick(env.clock.Now())
	assert.InDelta(t, 4.0, m.Viewport().Range().Min, 1e-9)
	assert.InDelta(t, 6.0, m.Viewport().Range().Max, 1e-9)
}

func TestInitialSpeedIsClamped(t *testing.T) {
	for _, c := range []struct {
		speed float64
		want  int
	}{
		{0, 10},
		{0.01, 1},
		{1.5, 15},
		{7, 20},
		{math.Inf(1), 20},
	} {
		m := tracker.NewModel(tracker.NewBroker(), tracker.Config{Speed: c.speed})
		assert.Equal(t, c.want, m.Play().Speed().Value(), "speed %v", c.speed)
	}
}
