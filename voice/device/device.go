package device

import (
	"errors"
	"fmt"
	"time"

	"github.com/cwbudde/algo-voicefx/dsp/core"
)

const (
	DefaultSampleRate          = int(core.DefaultSampleRate)
	DefaultChannels            = core.DefaultChannels
	DefaultFrameSize           = core.DefaultFrameSize
	DefaultCaptureBufferFrames = 4
	DefaultPlaybackQueueFrames = 2
	DefaultPlaybackLatency     = 50 * time.Millisecond
)

var (
	// ErrOverflow is returned by Capture.Read when samples were dropped
	// since the previous read. The frame it accompanies is still valid.
	ErrOverflow = errors.New("device: input overflowed")
	// ErrClosed is returned by I/O on a closed handle.
	ErrClosed = errors.New("device: closed")
	// ErrConfig is returned for an unusable Config.
	ErrConfig = errors.New("device: invalid config")
)

// Capture is a blocking source of mono float32 samples.
type Capture interface {
	// Read fills buf completely unless it returns an error other than
	// ErrOverflow.
	Read(buf []float32) (int, error)
	Close() error
}

// Playback is a blocking sink of mono float32 samples.
type Playback interface {
	Write(buf []float32) (int, error)
	Close() error
}

// Opener creates device handles for one streaming session.
type Opener interface {
	OpenCapture(cfg Config) (Capture, error)
	OpenPlayback(cfg Config) (Playback, error)
}

// Config describes the stream both handles are opened with.
type Config struct {
	SampleRate int
	Channels   int
	FrameSize  int

	// CaptureBufferFrames bounds how much input is held before the oldest
	// samples are dropped.
	CaptureBufferFrames int
	// PlaybackQueueFrames bounds how much output is queued before Write blocks.
	PlaybackQueueFrames int
	// PlaybackLatency is the output buffer duration requested from the driver.
	PlaybackLatency time.Duration
}

// DefaultConfig returns 44100 Hz mono with 8192-sample frames.
func DefaultConfig() Config {
	return Config{
		SampleRate:          DefaultSampleRate,
		Channels:            DefaultChannels,
		FrameSize:           DefaultFrameSize,
		CaptureBufferFrames: DefaultCaptureBufferFrames,
		PlaybackQueueFrames: DefaultPlaybackQueueFrames,
		PlaybackLatency:     DefaultPlaybackLatency,
	}
}

// Stream returns the block format the device exchanges with the pipeline.
func (c Config) Stream() core.StreamConfig {
	return core.StreamConfig{
		SampleRate: float64(c.SampleRate),
		FrameSize:  c.FrameSize,
		Channels:   c.Channels,
	}
}

// FrameDuration returns the wall-clock length of one frame.
func (c Config) FrameDuration() time.Duration {
	return time.Duration(c.Stream().FrameDuration() * float64(time.Second))
}

// Validate reports the first unusable field.
func (c Config) Validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d", ErrConfig, c.SampleRate)
	case c.Channels != 1:
		return fmt.Errorf("%w: %d channels, only mono is supported", ErrConfig, c.Channels)
	case c.FrameSize <= 0:
		return fmt.Errorf("%w: frame size %d", ErrConfig, c.FrameSize)
	case c.CaptureBufferFrames < 1:
		return fmt.Errorf("%w: capture buffer %d frames", ErrConfig, c.CaptureBufferFrames)
	case c.PlaybackQueueFrames < 1:
		return fmt.Errorf("%w: playback queue %d frames", ErrConfig, c.PlaybackQueueFrames)
	}
	return nil
}
