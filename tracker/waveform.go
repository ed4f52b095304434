package tracker

import (
	"math"

	"github.com/viterin/vek/vek32"
)

// Waveform computes the min/max envelope of the track for drawing.
type Waveform Model

// peakBlock is the number of samples summarized by one entry of the peak
// cache; columns wider than this are computed from the cache.
const peakBlock = 256

type peakCache struct {
	samples  []float32
	min, max []float32
}

func (m *Model) Waveform() *Waveform { return (*Waveform)(m) }

// Peaks fills lo and hi with the minimum and maximum sample of each of the
// len(lo) columns spanning r. Columns outside the track are NaN.
func (m *Waveform) Peaks(r TimeRange, lo, hi []float32) {
	n := min(len(lo), len(hi))
	if m.track == nil || n == 0 || r.Width() <= 0 {
		for i := range n {
			lo[i], hi[i] = float32(math.NaN()), float32(math.NaN())
		}
		return
	}
	sr := float64(m.track.SampleRate)
	perColumn := r.Width() * sr / float64(n)
	cache := m.cachedPeaks()
	for i := range n {
		a := int(math.Floor((r.Min*sr + float64(i)*perColumn)))
		b := int(math.Floor((r.Min*sr + float64(i+1)*perColumn)))
		if b <= a {
			b = a + 1
		}
		a = max(a, 0)
		b = min(b, len(m.track.Samples))
		if b <= a {
			lo[i], hi[i] = float32(math.NaN()), float32(math.NaN())
			continue
		}
		if perColumn >= 2*peakBlock && b/peakBlock > a/peakBlock {
			ba, bb := a/peakBlock, min((b+peakBlock-1)/peakBlock, len(cache.min))
			lo[i] = vek32.Min(cache.min[ba:bb])
			hi[i] = vek32.Max(cache.max[ba:bb])
			continue
		}
		lo[i] = vek32.Min(m.track.Samples[a:b])
		hi[i] = vek32.Max(m.track.Samples[a:b])
	}
}

func (m *Waveform) cachedPeaks() *peakCache {
	s := m.track.Samples
	c := &m.peaks
	if len(c.samples) == len(s) && len(s) > 0 && &c.samples[0] == &s[0] {
		return c
	}
	blocks := (len(s) + peakBlock - 1) / peakBlock
	c.samples = s
	c.min = make([]float32, blocks)
	c.max = make([]float32, blocks)
	for i := range blocks {
		chunk := s[i*peakBlock : min((i+1)*peakBlock, len(s))]
		c.min[i] = vek32.Min(chunk)
		c.max[i] = vek32.Max(chunk)
	}
	return c
}
