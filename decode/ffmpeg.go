package decode

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
	"go.uber.org/zap"
)

const defaultSampleRate = 44100

// probeTimeout bounds a single ffprobe run.
var probeTimeout = 10 * time.Second

type ffprobeOutput struct {
	Streams []struct {
		CodecType  string `json:"codec_type"`
		SampleRate string `json:"sample_rate"`
	} `json:"streams"`
}

// decodeFFmpeg converts the file to mono 32-bit float samples at the source
// sample rate using ffmpeg, killing the process if ctx is cancelled.
func (d *Decoder) decodeFFmpeg(ctx context.Context, path string) ([]float32, int, error) {
	sampleRate, err := d.sourceSampleRate(ctx, path)
	if err != nil {
		return nil, 0, err
	}
	stream := ffmpeg.Input(path).
		Output("pipe:", ffmpeg.KwArgs{
			"vn":     "",
			"f":      "f32le",
			"acodec": "pcm_f32le",
			"ac":     1,
			"ar":     sampleRate,
		})
	if d.FFmpegPath != "" {
		stream = stream.SetFfmpegPath(d.FFmpegPath)
	}
	cmd := stream.Compile()
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Start(); err != nil {
		return nil, 0, fmt.Errorf("could not start ffmpeg: %w", err)
	}
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()
	select {
	case <-ctx.Done():
		cmd.Process.Kill()
		<-done
		return nil, 0, ctx.Err()
	case err := <-done:
		if err != nil {
			return nil, 0, fmt.Errorf("ffmpeg failed: %w: %s", err, lastLine(stderr.String()))
		}
	}
	raw := stdout.Bytes()
	samples := make([]float32, len(raw)/4)
	for i := range samples {
		samples[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return samples, sampleRate, nil
}

// sourceSampleRate asks ffprobe for the sample rate of the first audio stream,
// falling back to FFmpegSampleRate when probing fails. Only a cancelled ctx
// is an error; ffprobe itself is killed after probeTimeout.
func (d *Decoder) sourceSampleRate(ctx context.Context, path string) (int, error) {
	fallback := d.FFmpegSampleRate
	if fallback <= 0 {
		fallback = defaultSampleRate
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	type result struct {
		out string
		err error
	}
	done := make(chan result, 1)
	go func() {
		out, err := ffmpeg.ProbeWithTimeout(path, probeTimeout, nil)
		done <- result{out, err}
	}()
	var res result
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case res = <-done:
	}
	if res.err != nil {
		d.logger().Debug("ffprobe failed, using fallback rate", zap.String("path", path), zap.Int("rate", fallback), zap.Error(res.err))
		return fallback, nil
	}
	var probe ffprobeOutput
	if err := json.Unmarshal([]byte(res.out), &probe); err != nil {
		return fallback, nil
	}
	for _, s := range probe.Streams {
		if s.CodecType != "audio" {
			continue
		}
		if sr, err := strconv.Atoi(s.SampleRate); err == nil && sr > 0 {
			return sr, nil
		}
	}
	return fallback, nil
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
