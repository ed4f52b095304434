package wavetag_test

import (
	"bytes"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wavetag/wavetag"
)

func TestWriteWav(t *testing.T) {
	var buf bytes.Buffer
	samples := []float32{0, 0.5, -0.5, 1, -1, 2}
	require.NoError(t, wavetag.WriteWav(&buf, samples, 8000))
	assert.Equal(t, 44+2*len(samples), buf.Len())

	dec := wav.NewDecoder(bytes.NewReader(buf.Bytes()))
	require.True(t, dec.IsValidFile())
	pcm, err := dec.FullPCMBuffer()
	require.NoError(t, err)
	assert.Equal(t, 8000, pcm.Format.SampleRate)
	assert.Equal(t, 1, pcm.Format.NumChannels)
	assert.Equal(t, 16, int(dec.BitDepth))
	assert.Equal(t, []int{0, 16384, -16384, 32767, -32767, 32767}, pcm.Data)
}

func TestWriteWavInvalidRate(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, wavetag.WriteWav(&buf, []float32{0}, 0))
}
