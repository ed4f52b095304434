// Package decode turns audio files into mono wavetag.Tracks. WAV and MP3 are
// decoded natively, everything else is piped through ffmpeg.
package decode

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/wavetag/wavetag"
	"go.uber.org/zap"
)

// Decoder decodes audio files. The zero value decodes WAV and MP3 files and
// uses ffmpeg from PATH for other formats.
type Decoder struct {
	// FFmpegPath overrides the ffmpeg executable; empty means "ffmpeg".
	FFmpegPath string
	// FFmpegSampleRate is used when the source sample rate cannot be probed.
	FFmpegSampleRate int
	Logger           *zap.Logger
}

// Extensions lists the file extensions offered in the open dialog.
var Extensions = []string{".wav", ".mp3", ".flac", ".ogg"}

// Decode reads the file at path. The returned error is suitable for showing to
// the user as is.
func (d *Decoder) Decode(ctx context.Context, path string) (*wavetag.Track, error) {
	log := d.logger().With(zap.String("path", path))
	log.Debug("decoding audio file")
	var (
		samples    []float32
		sampleRate int
		err        error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		samples, sampleRate, err = decodeWav(ctx, path)
		if err == errUnsupportedWav {
			log.Debug("wav format not supported natively, falling back to ffmpeg")
			samples, sampleRate, err = d.decodeFFmpeg(ctx, path)
		}
	case ".mp3":
		samples, sampleRate, err = decodeMp3(ctx, path)
	default:
		samples, sampleRate, err = d.decodeFFmpeg(ctx, path)
	}
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", filepath.Base(path), err)
	}
	track, err := wavetag.NewTrack(path, samples, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", filepath.Base(path), err)
	}
	log.Info("decoded audio file",
		zap.Int("sampleRate", sampleRate),
		zap.Int("samples", len(samples)),
		zap.Float64("duration", track.Duration))
	return track, nil
}

func (d *Decoder) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

// mixDown averages interleaved frames of numChannels channels into a mono
// buffer, scaling each sample by scale.
func mixDown(interleaved []float64, numChannels int, scale float64) []float32 {
	numChannels = max(numChannels, 1)
	frames := len(interleaved) / numChannels
	ret := make([]float32, frames)
	div := scale * float64(numChannels)
	for i := range ret {
		var sum float64
		for c := range numChannels {
			sum += interleaved[i*numChannels+c]
		}
		ret[i] = float32(sum / div)
	}
	return ret
}
