package wavetag_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wavetag/wavetag"
)

func TestNewTrack(t *testing.T) {
	tr, err := wavetag.NewTrack("a.wav", make([]float32, 1000), 100)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, tr.Duration, 1e-12)

	_, err = wavetag.NewTrack("a.wav", nil, 100)
	assert.ErrorIs(t, err, wavetag.ErrEmptyTrack)
	_, err = wavetag.NewTrack("a.wav", make([]float32, 10), 0)
	assert.Error(t, err)
}

func TestTrackSlice(t *testing.T) {
	samples := make([]float32, 1000)
	for i := range samples {
		samples[i] = float32(i)
	}
	tr, err := wavetag.NewTrack("a.wav", samples, 100)
	require.NoError(t, err)
	s := tr.Slice(2, 4)
	require.Len(t, s, 200)
	assert.Equal(t, float32(200), s[0])
	assert.Len(t, tr.Slice(9, 20), 100)
	assert.Nil(t, tr.Slice(4, 4))
	assert.Nil(t, tr.Slice(-5, -1))
	assert.Equal(t, 0.0, tr.Clamp(-1))
	assert.Equal(t, 10.0, tr.Clamp(11))
	assert.Equal(t, 0.0, tr.Clamp(math.NaN()))
}
