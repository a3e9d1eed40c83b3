// Package config defines the voicefx YAML configuration and its loader.
package config

import (
	"github.com/cwbudde/algo-voicefx/dsp/effects/pitch"
	"github.com/cwbudde/algo-voicefx/voice/device"
	"github.com/cwbudde/algo-voicefx/voice/params"
)

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Config is the root configuration structure.
type Config struct {
	LogLevel  LogLevel  `yaml:"log_level"`
	Audio     Audio     `yaml:"audio"`
	Metrics   Metrics   `yaml:"metrics"`
	Recording Recording `yaml:"recording"`
	Preset    Preset    `yaml:"preset"`
}

// Audio holds the stream geometry.
type Audio struct {
	SampleRate          int   `yaml:"sample_rate"`
	FrameSize           int   `yaml:"frame_size"`
	CaptureBufferFrames int   `yaml:"capture_buffer_frames"`
	PlaybackQueueFrames int   `yaml:"playback_queue_frames"`
	Pitch               Pitch `yaml:"pitch"`
}

// Pitch holds the WSOLA windows of the pitch shifter, in milliseconds.
type Pitch struct {
	SequenceMs float64 `yaml:"sequence_ms"`
	OverlapMs  float64 `yaml:"overlap_ms"`
	SearchMs   float64 `yaml:"search_ms"`
}

// Options converts the windows into pitch shifter options.
func (p Pitch) Options() []pitch.Option {
	return []pitch.Option{
		pitch.WithSequence(p.SequenceMs),
		pitch.WithOverlap(p.OverlapMs),
		pitch.WithSearch(p.SearchMs),
	}
}

// Metrics configures the Prometheus endpoint. An empty address disables it.
type Metrics struct {
	ListenAddr string `yaml:"listen_addr"`
}

// Recording configures where relative save paths are resolved.
type Recording struct {
	Dir string `yaml:"dir"`
}

// Preset holds initial slider positions (0..100) and a pitch shift in
// semitones.
type Preset struct {
	Bands   map[string]float64 `yaml:"bands"`
	Effects map[string]float64 `yaml:"effects"`
	Pitch   *float64           `yaml:"pitch"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel: LogInfo,
		Audio: Audio{
			SampleRate:          device.DefaultSampleRate,
			FrameSize:           device.DefaultFrameSize,
			CaptureBufferFrames: device.DefaultCaptureBufferFrames,
			PlaybackQueueFrames: device.DefaultPlaybackQueueFrames,
			Pitch: Pitch{
				SequenceMs: pitch.DefaultSequenceMs,
				OverlapMs:  pitch.DefaultOverlapMs,
				SearchMs:   pitch.DefaultSearchMs,
			},
		},
		Recording: Recording{Dir: "."},
	}
}

// DeviceConfig converts the audio section into a device configuration.
func (c *Config) DeviceConfig() device.Config {
	cfg := device.DefaultConfig()
	cfg.SampleRate = c.Audio.SampleRate
	cfg.FrameSize = c.Audio.FrameSize
	cfg.CaptureBufferFrames = c.Audio.CaptureBufferFrames
	cfg.PlaybackQueueFrames = c.Audio.PlaybackQueueFrames
	return cfg
}

// ParamsPreset converts the preset section for the parameter store.
func (p Preset) ParamsPreset() params.Preset {
	return params.Preset{Bands: p.Bands, Effects: p.Effects, Pitch: p.Pitch}
}
