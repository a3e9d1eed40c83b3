package core

// Stream format defaults shared by the capture, processing and playback stages.
const (
	DefaultSampleRate = 44100.0
	DefaultFrameSize  = 8192
	DefaultChannels   = 1
)

// StreamConfig describes the mono block format flowing through the pipeline.
type StreamConfig struct {
	SampleRate float64
	FrameSize  int
	Channels   int
}

// StreamOption mutates a StreamConfig.
type StreamOption func(*StreamConfig)

// DefaultStreamConfig returns 44.1 kHz mono with 8192-sample frames.
func DefaultStreamConfig() StreamConfig {
	return StreamConfig{
		SampleRate: DefaultSampleRate,
		FrameSize:  DefaultFrameSize,
		Channels:   DefaultChannels,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) StreamOption {
	return func(cfg *StreamConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithFrameSize sets the frame length in samples.
func WithFrameSize(frameSize int) StreamOption {
	return func(cfg *StreamConfig) {
		if frameSize > 0 {
			cfg.FrameSize = frameSize
		}
	}
}

// ApplyStreamOptions applies zero or more options to the default config.
func ApplyStreamOptions(opts ...StreamOption) StreamConfig {
	cfg := DefaultStreamConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// FrameDuration returns the duration of one frame in seconds.
func (c StreamConfig) FrameDuration() float64 {
	if c.SampleRate <= 0 {
		return 0
	}
	return float64(c.FrameSize) / c.SampleRate
}
