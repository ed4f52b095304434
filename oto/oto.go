package oto

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// Context is a wavetag.Player backed by an oto/v3 output device. The device is
// opened once at a fixed sample rate; tracks at other rates, and playback at
// other speeds, are resampled on the fly.
type Context struct {
	ctx        *oto.Context
	sampleRate int

	mu     sync.Mutex
	player *oto.Player
}

const DefaultSampleRate = 44100

// NewContext opens the default audio output device and blocks until it is
// ready.
func NewContext(sampleRate int) (*Context, error) {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready
	return &Context{ctx: ctx, sampleRate: sampleRate}, nil
}

// Play starts playing samples as if they were recorded at sampleRate,
// replacing whatever was playing.
func (c *Context) Play(samples []float32, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("cannot play at sample rate %d", sampleRate)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.closePlayer(); err != nil {
		return err
	}
	r := newResampler(samples, float64(sampleRate)/float64(c.sampleRate))
	c.player = c.ctx.NewPlayer(r)
	c.player.Play()
	return nil
}

// Stop silences the output. Stopping when nothing is playing is not an error.
func (c *Context) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closePlayer()
}

func (c *Context) closePlayer() error {
	if c.player == nil {
		return nil
	}
	p := c.player
	c.player = nil
	p.Pause()
	if err := p.Close(); err != nil {
		return fmt.Errorf("cannot close oto player: %w", err)
	}
	return nil
}
