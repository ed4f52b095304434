package wavetag

import (
	"errors"
	"math"
)

// Track is a decoded, mono audio file. A Track is never mutated after it has
// been created; loading another file replaces it.
type Track struct {
	Path       string
	Samples    []float32
	SampleRate int
	Duration   float64
}

var ErrEmptyTrack = errors.New("audio file contains no samples")

// NewTrack creates a Track and computes its duration from the sample count.
func NewTrack(path string, samples []float32, sampleRate int) (*Track, error) {
	if sampleRate <= 0 {
		return nil, errors.New("sample rate must be positive")
	}
	if len(samples) == 0 {
		return nil, ErrEmptyTrack
	}
	return &Track{
		Path:       path,
		Samples:    samples,
		SampleRate: sampleRate,
		Duration:   float64(len(samples)) / float64(sampleRate),
	}, nil
}

// Clamp limits s to [0, Duration]. NaN maps to 0.
func (t *Track) Clamp(s float64) float64 {
	if math.IsNaN(s) {
		return 0
	}
	return max(0, min(t.Duration, s))
}

// Slice returns the samples between start and end seconds. The returned slice
// shares memory with the track and must not be modified.
func (t *Track) Slice(start, end float64) []float32 {
	a := max(0, min(len(t.Samples), int(start*float64(t.SampleRate))))
	b := max(0, min(len(t.Samples), int(end*float64(t.SampleRate))))
	if b <= a {
		return nil
	}
	return t.Samples[a:b]
}
