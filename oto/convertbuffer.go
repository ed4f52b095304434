package oto

import (
	"encoding/binary"
	"io"
	"math"
)

// resampler reads mono float32 samples as 16-bit little endian PCM, stepping
// through the source step samples per output sample with linear
// interpolation.
type resampler struct {
	src  []float32
	step float64
	pos  float64
}

func newResampler(src []float32, step float64) *resampler {
	return &resampler{src: src, step: step}
}

func (r *resampler) Read(p []byte) (n int, err error) {
	last := len(r.src) - 1
	for n+1 < len(p) {
		if last < 0 || r.pos > float64(last) {
			if n == 0 {
				return 0, io.EOF
			}
			return n, nil
		}
		i := int(r.pos)
		v := r.src[i]
		if frac := float32(r.pos - float64(i)); frac > 0 && i < last {
			v += (r.src[i+1] - v) * frac
		}
		binary.LittleEndian.PutUint16(p[n:], uint16(floatTo16Bit(v)))
		n += 2
		r.pos += r.step
	}
	return n, nil
}

// floatTo16Bit converts a sample to a 16-bit integer, clipping values outside
// [-1, 1].
func floatTo16Bit(v float32) int16 {
	if v < -1.0 {
		return -math.MaxInt16
	}
	if v > 1.0 {
		return math.MaxInt16
	}
	return int16(v * math.MaxInt16)
}
