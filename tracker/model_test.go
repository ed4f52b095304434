package tracker_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wavetag/wavetag"
	"github.com/wavetag/wavetag/tracker"
)

const testSampleRate = 1000

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fakePlay struct {
	samples    int
	sampleRate int
}

type fakePlayer struct {
	plays []fakePlay
	stops int
	err   error
}

func (p *fakePlayer) Play(samples []float32, sampleRate int) error {
	if p.err != nil {
		return p.err
	}
	p.plays = append(p.plays, fakePlay{len(samples), sampleRate})
	return nil
}

func (p *fakePlayer) Stop() error {
	p.stops++
	return nil
}

func (p *fakePlayer) last() fakePlay {
	if len(p.plays) == 0 {
		return fakePlay{}
	}
	return p.plays[len(p.plays)-1]
}

// fakeDecoder decodes every path into a silent track of the given duration.
type fakeDecoder struct {
	duration float64
	err      error
	block    chan struct{}
}

func (d *fakeDecoder) Decode(ctx context.Context, path string) (*wavetag.Track, error) {
	if d.block != nil {
		select {
		case <-d.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if d.err != nil {
		return nil, d.err
	}
	samples := make([]float32, int(d.duration*testSampleRate))
	for i := range samples {
		samples[i] = float32(i%100)/50 - 1
	}
	return wavetag.NewTrack(path, samples, testSampleRate)
}

type fakeHandle struct {
	label    string
	released int
}

func (h *fakeHandle) Release() { h.released++ }

type fakeHandles struct {
	created []*fakeHandle
}

func (f *fakeHandles) NewHandle(a wavetag.Annotation) tracker.Handle {
	h := &fakeHandle{label: a.Label}
	f.created = append(f.created, h)
	return h
}

func (f *fakeHandles) live() int {
	n := 0
	for _, h := range f.created {
		if h.released == 0 {
			n++
		}
	}
	return n
}

func (f *fakeHandles) doubleReleased() bool {
	for _, h := range f.created {
		if h.released > 1 {
			return true
		}
	}
	return false
}

type testEnv struct {
	model   *tracker.Model
	broker  *tracker.Broker
	player  *fakePlayer
	decoder *fakeDecoder
	handles *fakeHandles
	clock   *fakeClock
}

func newTestEnv(t testing.TB) *testEnv {
	env := &testEnv{
		broker:  tracker.NewBroker(),
		player:  &fakePlayer{},
		decoder: &fakeDecoder{duration: 10},
		handles: &fakeHandles{},
		clock:   &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	env.model = tracker.NewModel(env.broker, tracker.Config{
		Player:  env.player,
		Decoder: env.decoder,
		Handles: env.handles,
		Clock:   env.clock.Now,
	})
	t.Cleanup(env.model.Close)
	return env
}

// newLoadedEnv returns an environment with a 10 second track loaded.
func newLoadedEnv(t testing.TB) *testEnv {
	env := newTestEnv(t)
	env.load(t, "/audio/dog.wav")
	return env
}

// load loads path and processes the decoder result like the GUI loop does.
func (e *testEnv) load(t testing.TB, path string) {
	require.NoError(t, e.model.LoadAudio(path))
	e.receive(t)
}

func (e *testEnv) receive(t testing.TB) {
	msg, ok := tracker.TimeoutReceive(e.broker.ToModel, 5*time.Second)
	require.True(t, ok, "no message from the decoder")
	e.model.ProcessMsg(msg)
}

func errorAlerts(m *tracker.Model) []tracker.Alert {
	var ret []tracker.Alert
	for _, a := range m.Alerts().Iterate {
		if a.Priority == tracker.Error {
			ret = append(ret, a)
		}
	}
	return ret
}

type myWriteCloser struct {
	*bytes.Buffer
}

func (mwc *myWriteCloser) Close() error {
	// Noop
	return nil
}

func TestLoadAudioResetsState(t *testing.T) {
	env := newLoadedEnv(t)
	m := env.model
	require.NoError(t, m.Annotations().Add(2, 4, "bark"))
	m.Viewport().Set(tracker.TimeRange{Min: 1, Max: 2})
	env.load(t, "/audio/cat.wav")
	require.Equal(t, 0, m.Annotations().Len())
	require.Equal(t, 0, env.handles.live())
	require.Equal(t, tracker.TimeRange{Min: 0, Max: 10}, m.Viewport().Range())
	require.Equal(t, 0.0, m.Selection().Cursor())
	require.Equal(t, "Loaded: cat.wav (00:10.00)", m.Status())
	require.False(t, m.Loading())
}

func TestInitialViewport(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, tracker.TimeRange{Min: 0, Max: 10}, env.model.Viewport().Range())
	require.Nil(t, env.model.Track())
}

func TestLoadWhileLoadingIsRejected(t *testing.T) {
	env := newTestEnv(t)
	env.decoder.block = make(chan struct{})
	m := env.model
	require.NoError(t, m.LoadAudio("/audio/a.wav"))
	require.True(t, m.Loading())
	require.False(t, m.OpenAudio().Enabled())
	require.False(t, m.Play().Toggle().Enabled())
	require.ErrorIs(t, m.LoadAudio("/audio/b.wav"), tracker.ErrLoadInProgress)
	close(env.decoder.block)
	env.receive(t)
	require.False(t, m.Loading())
	require.Equal(t, "/audio/a.wav", m.Track().Path)
}

func TestLoadFailureShowsErrorDialog(t *testing.T) {
	env := newTestEnv(t)
	env.decoder.err = errors.New("could not decode broken.wav: bad header")
	m := env.model
	require.NoError(t, m.LoadAudio("/audio/broken.wav"))
	env.receive(t)
	require.Equal(t, tracker.ErrorDialog, m.Dialog())
	require.Equal(t, "could not decode broken.wav: bad header", m.DialogError())
	require.Nil(t, m.Track())
	require.False(t, m.Loading())
	m.Cancel().Do()
	require.Equal(t, tracker.NoDialog, m.Dialog())
}

func TestLoadFailureKeepsTrackAndAnnotations(t *testing.T) {
	env := newLoadedEnv(t)
	m := env.model
	require.NoError(t, m.Annotations().Add(2, 4, "bark"))
	m.Selection().Set(tracker.TimeRange{Min: 5, Max: 6})
	env.decoder.err = errors.New("could not decode broken.wav: bad header")
	require.NoError(t, m.LoadAudio("/audio/broken.wav"))
	require.NotNil(t, m.Track(), "the old track stays while decoding")
	env.receive(t)
	require.Equal(t, tracker.ErrorDialog, m.Dialog())
	require.NotNil(t, m.Track())
	assert.Equal(t, "/audio/dog.wav", m.Track().Path)
	assert.Equal(t, 1, m.Annotations().Len())
	assert.Equal(t, 1, env.handles.live())
	assert.Equal(t, tracker.TimeRange{Min: 5, Max: 6}, m.Selection().Range())
}

func TestCloseCancelsPendingLoad(t *testing.T) {
	env := newTestEnv(t)
	env.decoder.block = make(chan struct{})
	require.NoError(t, env.model.LoadAudio("/audio/a.wav"))
	env.model.Close()
	_, ok := tracker.TimeoutReceive(env.broker.ToModel, 100*time.Millisecond)
	require.False(t, ok, "a cancelled load must not post a result")
}

func TestUnknownMessageIsIgnored(t *testing.T) {
	env := newTestEnv(t)
	env.model.ProcessMsg(tracker.MsgToModel{Data: 42})
	env.model.ProcessMsg(tracker.MsgToModel{})
}

type modelFuzzState struct {
	env  *testEnv
	file []byte
}

func (s *modelFuzzState) Iterate(yield func(string, func(p string, t *testing.T)) bool, seed int) {
	m := s.env.model
	d := m.Duration()
	x := float64(seed%1200) - 100
	sec := float64(seed%130)/10 - 1
	// Ints
	s.IterateInt("Speed", m.Play().Speed(), yield, seed)
	s.IterateInt("Mode", m.Router().Mode(), yield, seed)
	// Lists
	s.IterateList("Annotations", m.Annotations().List(), yield, seed)
	// Actions
	s.IterateAction("Start", m.Play().Start(), yield, seed)
	s.IterateAction("Pause", m.Play().Pause(), yield, seed)
	s.IterateAction("Stop", m.Play().Stop(), yield, seed)
	s.IterateAction("Toggle", m.Play().Toggle(), yield, seed)
	s.IterateAction("Annotate", m.Annotations().Annotate(), yield, seed)
	s.IterateAction("DeleteSelected", m.Annotations().DeleteSelected(), yield, seed)
	s.IterateAction("Cancel", m.Cancel(), yield, seed)
	// Pointer
	yield("Press", func(p string, t *testing.T) {
		m.Router().Pointer(tracker.PointerEvent{Kind: tracker.Press, Button: tracker.PointerButton(seed % 2), X: x, Width: 1000})
	})
	yield("Drag", func(p string, t *testing.T) {
		m.Router().Pointer(tracker.PointerEvent{Kind: tracker.Drag, X: x, Width: 1000})
	})
	yield("Release", func(p string, t *testing.T) {
		m.Router().Pointer(tracker.PointerEvent{Kind: tracker.Release, Button: tracker.PointerButton(seed % 2), X: x, Width: 1000, Shift: seed%3 == 0})
	})
	// Model operations
	yield("Add", func(p string, t *testing.T) {
		m.Annotations().Add(sec, sec+float64(seed%40)/10, fmt.Sprintf("label %d", seed))
	})
	yield("DeleteAt", func(p string, t *testing.T) {
		m.Annotations().DeleteAt(seed%10 - 2)
	})
	yield("CommitLabel", func(p string, t *testing.T) {
		m.Annotations().CommitLabel(fmt.Sprintf("label %d", seed%3))
	})
	yield("PlayAt", func(p string, t *testing.T) {
		m.Annotations().PlayAt(seed%10 - 2)
	})
	yield("Recall", func(p string, t *testing.T) {
		m.Selection().Recall(seed%10 - 2)
	})
	yield("Seek", func(p string, t *testing.T) {
		m.Selection().Seek(sec)
	})
	yield("Tick", func(p string, t *testing.T) {
		s.env.clock.Advance(time.Duration(seed%7) * tracker.TickInterval)
		m.Play().Tick(s.env.clock.Now())
	})
	yield("Pan", func(p string, t *testing.T) {
		m.Viewport().Pan(x, float64(seed%3)*500)
	})
	yield("ZoomToAnnotation", func(p string, t *testing.T) {
		m.Viewport().ZoomToAnnotation(seed%10 - 2)
	})
	// File reading and saving
	if s.file != nil {
		yield("ReadAnnotations", func(p string, t *testing.T) {
			m.ReadAnnotations(io.NopCloser(bytes.NewReader(s.file)))
		})
	}
	yield("WriteAnnotations", func(p string, t *testing.T) {
		writer := bytes.NewBuffer(nil)
		m.WriteAnnotations(&myWriteCloser{writer})
		s.file = writer.Bytes()
	})
	// Invariants
	yield("Invariants", func(p string, t *testing.T) {
		if c := m.Selection().Cursor(); c < 0 || c > d {
			t.Errorf("Path: %s cursor out of range [0,%v]: %v", p, d, c)
		}
		if r := m.Selection().Range(); r.Min > r.Max {
			t.Errorf("Path: %s selection not ordered: %v", p, r)
		}
		if r := m.Viewport().Range(); r.Width() < wavetag.MinZoomWidth {
			t.Errorf("Path: %s viewport too narrow: %v", p, r)
		}
		if live := s.env.handles.live(); live != m.Annotations().Len() {
			t.Errorf("Path: %s %d annotations but %d live handles", p, m.Annotations().Len(), live)
		}
		if s.env.handles.doubleReleased() {
			t.Errorf("Path: %s a handle was released twice", p)
		}
	})
}

func (s *modelFuzzState) IterateInt(name string, i tracker.Int, yield func(string, func(p string, t *testing.T)) bool, seed int) {
	r := i.Range()
	yield(name+".Set", func(p string, t *testing.T) {
		i.SetValue(seed%(r.Max-r.Min+10) - 5 + r.Min)
	})
	yield(name+".Value", func(p string, t *testing.T) {
		if v := i.Value(); v < r.Min || v > r.Max {
			r := i.Range()
			t.Errorf("Path: %s %s value out of range [%d,%d]: %d", p, name, r.Min, r.Max, v)
		}
	})
}

func (s *modelFuzzState) IterateAction(name string, a tracker.Action, yield func(string, func(p string, t *testing.T)) bool, seed int) {
	yield(name+".Do", func(p string, t *testing.T) {
		a.Do()
	})
}

func (s *modelFuzzState) IterateList(name string, l tracker.List, yield func(string, func(p string, t *testing.T)) bool, seed int) {
	yield(name+".SetSelected", func(p string, t *testing.T) {
		l.SetSelected(seed%50 - 16)
	})
	yield(name+".Count", func(p string, t *testing.T) {
		if sel := l.Selected(); sel < -1 || sel >= l.Count() {
			t.Errorf("Path: %s %s selected out of range: %d", p, name, sel)
		}
	})
}

func FuzzModel(f *testing.F) {
	seed := make([]byte, 1)
	for i := range seed {
		seed[i] = byte(i)
	}
	f.Add(seed)
	f.Fuzz(func(t *testing.T, slice []byte) {
		reader := bytes.NewReader(slice)
		env := newLoadedEnv(t)
		state := modelFuzzState{env: env}
		count := 0
		state.Iterate(func(n string, f func(p string, t *testing.T)) bool {
			count++
			return true
		}, 0)
		totalPath := ""
		for m, err := binary.ReadVarint(reader); err == nil; m, err = binary.ReadVarint(reader) {
			seed := int(m)
			if seed < 0 {
				seed = -seed
			}
			index := seed % count
			state.Iterate(func(n string, f func(p string, t *testing.T)) bool {
				if index == 0 {
					totalPath += n + ". "
					f(totalPath, t)
				}
				index--
				return index >= 0
			}, seed)
		}
	})
}
