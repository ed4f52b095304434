package wavetag

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// wavHeader is the canonical 44 byte header of a mono 16-bit PCM .wav file.
type wavHeader struct {
	Riff       [4]byte
	ChunkSize  uint32
	Wave       [4]byte
	Fmt        [4]byte
	FmtSize    uint32
	Format     uint16
	Channels   uint16
	SampleRate uint32
	ByteRate   uint32
	BlockAlign uint16
	Bits       uint16
	Data       [4]byte
	DataSize   uint32
}

const (
	wavHeaderSize = 44
	pcmFormat     = 1
)

// WriteWav writes samples as a mono 16-bit PCM .wav file. Samples outside
// [-1, 1] are clipped.
func WriteWav(w io.Writer, samples []float32, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("invalid sample rate %d", sampleRate)
	}
	dataSize := 2 * len(samples)
	h := wavHeader{
		Riff:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:  uint32(wavHeaderSize - 8 + dataSize),
		Wave:       [4]byte{'W', 'A', 'V', 'E'},
		Fmt:        [4]byte{'f', 'm', 't', ' '},
		FmtSize:    16,
		Format:     pcmFormat,
		Channels:   1,
		SampleRate: uint32(sampleRate),
		ByteRate:   uint32(2 * sampleRate),
		BlockAlign: 2,
		Bits:       16,
		Data:       [4]byte{'d', 'a', 't', 'a'},
		DataSize:   uint32(dataSize),
	}
	if err := binary.Write(w, binary.LittleEndian, h); err != nil {
		return fmt.Errorf("could not write wav header: %w", err)
	}
	pcm := make([]int16, len(samples))
	for i, v := range samples {
		pcm[i] = int16(math.Round(float64(min(max(v, -1), 1)) * math.MaxInt16))
	}
	if err := binary.Write(w, binary.LittleEndian, pcm); err != nil {
		return fmt.Errorf("could not write wav data: %w", err)
	}
	return nil
}
