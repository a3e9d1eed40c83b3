package engine

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/cwbudde/algo-voicefx/dsp/effects/pitch"
	"github.com/cwbudde/algo-voicefx/voice/device"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger; entries are tagged component=engine.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithStreamingCallback is called with true after Start and false after Stop.
func WithStreamingCallback(fn func(bool)) Option {
	return func(e *Engine) { e.onStreaming = fn }
}

// WithRecordingCallback is called with true after ArmRecording and false
// after DisarmRecording.
func WithRecordingCallback(fn func(bool)) Option {
	return func(e *Engine) { e.onRecording = fn }
}

// WithFrameSize sets the samples per frame. It must be a power of two.
func WithFrameSize(n int) Option {
	return func(e *Engine) { e.cfg.FrameSize = n }
}

// WithSampleRate sets the stream rate in Hz.
func WithSampleRate(hz float64) Option {
	return func(e *Engine) { e.cfg.SampleRate = int(hz) }
}

// WithDeviceConfig replaces the whole device configuration, including
// buffer depths.
func WithDeviceConfig(cfg device.Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// WithPitchOptions configures the windows of the default WSOLA pitch
// shifter. It has no effect together with WithShifter.
func WithPitchOptions(opts ...pitch.Option) Option {
	return func(e *Engine) { e.pitchOpts = append(e.pitchOpts, opts...) }
}

// WithShifter replaces the default WSOLA pitch shifter.
func WithShifter(s pitch.Shifter) Option {
	return func(e *Engine) { e.shifter = s }
}

// WithStopTimeout bounds how long Stop waits for a blocked device call
// before closing the handles underneath it. Zero waits forever.
func WithStopTimeout(d time.Duration) Option {
	return func(e *Engine) { e.stopTimeout = d }
}

// WithReadBackoff sets the pause after a failed capture read.
func WithReadBackoff(d time.Duration) Option {
	return func(e *Engine) { e.readBackoff = d }
}
