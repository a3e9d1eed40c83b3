package config

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-voicefx/dsp/effects/pitch"
	"github.com/cwbudde/algo-voicefx/voice/params"
)

// Load reads the YAML configuration file at path and returns a validated [Config].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes YAML from r over [Default] and validates the
// result. An empty document yields the defaults.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}

	a := cfg.Audio
	if a.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("audio.sample_rate must be positive, got %d", a.SampleRate))
	}
	if a.FrameSize <= 0 || a.FrameSize&(a.FrameSize-1) != 0 {
		errs = append(errs, fmt.Errorf("audio.frame_size must be a power of two, got %d", a.FrameSize))
	}
	if a.CaptureBufferFrames < 1 {
		errs = append(errs, fmt.Errorf("audio.capture_buffer_frames must be at least 1, got %d", a.CaptureBufferFrames))
	}
	if a.PlaybackQueueFrames < 1 {
		errs = append(errs, fmt.Errorf("audio.playback_queue_frames must be at least 1, got %d", a.PlaybackQueueFrames))
	}
	if a.SampleRate > 0 {
		if _, err := pitch.NewPitchShifter(float64(a.SampleRate), a.Pitch.Options()...); err != nil {
			errs = append(errs, fmt.Errorf("audio.pitch: %w", err))
		}
	}

	bands := params.BandKeys()
	for _, key := range slices.Sorted(maps.Keys(cfg.Preset.Bands)) {
		if !slices.Contains(bands, key) {
			errs = append(errs, fmt.Errorf("preset.bands: unknown band %q; valid bands: %v", key, bands))
			continue
		}
		if v := cfg.Preset.Bands[key]; v < 0 || v > params.SliderMax {
			errs = append(errs, fmt.Errorf("preset.bands.%s must be in [0, 100], got %g", key, v))
		}
	}

	names := params.EffectNames()
	for _, name := range slices.Sorted(maps.Keys(cfg.Preset.Effects)) {
		if !slices.Contains(names, name) {
			errs = append(errs, fmt.Errorf("preset.effects: unknown effect %q; valid effects: %v", name, names))
			continue
		}
		if v := cfg.Preset.Effects[name]; v < 0 || v > params.SliderMax {
			errs = append(errs, fmt.Errorf("preset.effects.%s must be in [0, 100], got %g", name, v))
		}
	}

	if p := cfg.Preset.Pitch; p != nil && (*p < -pitch.MaxSemitones || *p > pitch.MaxSemitones) {
		errs = append(errs, fmt.Errorf("preset.pitch must be in [-12, 12], got %g", *p))
	}

	return errors.Join(errs...)
}
