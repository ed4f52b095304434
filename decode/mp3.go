package decode

import (
	"context"
	"encoding/binary"
	"errors"
	"io"
	"os"

	"github.com/hajimehoshi/go-mp3"
)

// go-mp3 always produces 16-bit little endian stereo
const mp3Channels = 2

func decodeMp3(ctx context.Context, path string) ([]float32, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()
	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, 0, err
	}
	var interleaved []float64
	if n := decoder.Length(); n > 0 {
		interleaved = make([]float64, 0, n/2)
	}
	chunk := make([]byte, 64*1024)
	for {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		n, err := io.ReadFull(decoder, chunk)
		for i := 0; i+1 < n; i += 2 {
			interleaved = append(interleaved, float64(int16(binary.LittleEndian.Uint16(chunk[i:]))))
		}
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			return nil, 0, err
		}
	}
	return mixDown(interleaved, mp3Channels, 32768), decoder.SampleRate(), nil
}
