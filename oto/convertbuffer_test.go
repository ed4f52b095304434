package oto

import (
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, r io.Reader) []int16 {
	t.Helper()
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	ret := make([]int16, len(b)/2)
	for i := range ret {
		ret[i] = int16(binary.LittleEndian.Uint16(b[i*2:]))
	}
	return ret
}

func TestResamplerUnitStep(t *testing.T) {
	out := readAll(t, newResampler([]float32{0, 1, -1, 2}, 1))
	assert.Equal(t, []int16{0, math.MaxInt16, -math.MaxInt16, math.MaxInt16}, out)
}

func TestResamplerHalfSpeedInterpolates(t *testing.T) {
	out := readAll(t, newResampler([]float32{0, 1}, 0.5))
	require.Len(t, out, 3)
	assert.Equal(t, int16(0), out[0])
	assert.InDelta(t, math.MaxInt16/2, out[1], 1)
	assert.Equal(t, int16(math.MaxInt16), out[2])
}

func TestResamplerDoubleSpeedSkips(t *testing.T) {
	out := readAll(t, newResampler(make([]float32, 10), 2))
	assert.Len(t, out, 5)
}

func TestResamplerEmpty(t *testing.T) {
	n, err := newResampler(nil, 1).Read(make([]byte, 16))
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.EOF)
}
