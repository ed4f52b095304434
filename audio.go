package wavetag

// Player plays mono float32 samples. Playing at a sample rate other than the
// track's own rate is how playback speed is realized: the audio is resampled,
// not time-stretched. Play replaces anything that is already playing.
type Player interface {
	Play(samples []float32, sampleRate int) error
	Stop() error
}
