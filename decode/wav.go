package decode

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

var errUnsupportedWav = errors.New("unsupported wav encoding")

const wavFormatPCM = 1

func decodeWav(ctx context.Context, path string) ([]float32, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()
	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, 0, fmt.Errorf("invalid WAV file")
	}
	if decoder.WavAudioFormat != wavFormatPCM {
		return nil, 0, errUnsupportedWav
	}
	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, 0, err
	}
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	bitDepth := buf.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = int(decoder.BitDepth)
	}
	if bitDepth == 0 {
		return nil, 0, fmt.Errorf("unknown bit depth")
	}
	return intBufferToMono(buf, bitDepth), buf.Format.SampleRate, nil
}

// intBufferToMono scales integer PCM of the given bit depth to [-1, 1) and
// averages the channels.
func intBufferToMono(buf *audio.IntBuffer, bitDepth int) []float32 {
	floatBuf := buf.AsFloatBuffer()
	scale := math.Pow(2, float64(bitDepth-1))
	if bitDepth == 8 {
		// 8-bit wav is unsigned
		for i, v := range floatBuf.Data {
			floatBuf.Data[i] = v - 128
		}
	}
	return mixDown(floatBuf.Data, buf.Format.NumChannels, scale)
}
