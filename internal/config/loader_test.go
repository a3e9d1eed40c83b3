package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-voicefx/internal/config"
)

func TestLoadFromReaderEmptyYieldsDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := config.LoadFromReader(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, 44100, cfg.Audio.SampleRate)
	assert.Equal(t, 8192, cfg.Audio.FrameSize)
}

func TestLoadFromReaderOverlaysDefaults(t *testing.T) {
	t.Parallel()
	yaml := `
log_level: debug
audio:
  frame_size: 4096
metrics:
  listen_addr: ":9100"
preset:
  bands:
    "1k": 75
    16k: 0
  effects:
    Reverb: 40
  pitch: -3
`
	cfg, err := config.LoadFromReader(strings.NewReader(yaml))
	require.NoError(t, err)

	assert.Equal(t, config.LogDebug, cfg.LogLevel)
	assert.Equal(t, 4096, cfg.Audio.FrameSize)
	assert.Equal(t, 44100, cfg.Audio.SampleRate)
	assert.Equal(t, ":9100", cfg.Metrics.ListenAddr)
	assert.Equal(t, map[string]float64{"1k": 75, "16k": 0}, cfg.Preset.Bands)
	assert.Equal(t, map[string]float64{"Reverb": 40}, cfg.Preset.Effects)
	require.NotNil(t, cfg.Preset.Pitch)
	assert.Equal(t, -3.0, *cfg.Preset.Pitch)

	dev := cfg.DeviceConfig()
	assert.Equal(t, 4096, dev.FrameSize)
	assert.Equal(t, 1, dev.Channels)
	require.NoError(t, dev.Validate())
}

func TestPitchWindows(t *testing.T) {
	t.Parallel()
	cfg, err := config.LoadFromReader(strings.NewReader("audio:\n  pitch:\n    sequence_ms: 60\n"))
	require.NoError(t, err)
	assert.Equal(t, config.Pitch{SequenceMs: 60, OverlapMs: 8, SearchMs: 15}, cfg.Audio.Pitch)
	assert.Len(t, cfg.Audio.Pitch.Options(), 3)

	_, err = config.LoadFromReader(strings.NewReader("audio:\n  pitch:\n    overlap_ms: 100\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "audio.pitch")

	_, err = config.LoadFromReader(strings.NewReader("audio:\n  pitch:\n    sequence_ms: 30\n    overlap_ms: 30\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overlap")
}

func TestLoadFromReaderRejectsUnknownFields(t *testing.T) {
	t.Parallel()
	_, err := config.LoadFromReader(strings.NewReader("audio:\n  channels: 2\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channels")
}

func TestValidateCollectsAllProblems(t *testing.T) {
	t.Parallel()
	yaml := `
log_level: loud
audio:
  sample_rate: 0
  frame_size: 1000
  capture_buffer_frames: 0
preset:
  bands:
    3k: 10
    "32": 120
  effects:
    Chorus: 10
  pitch: 30
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	require.Error(t, err)

	for _, want := range []string{
		"log_level",
		"audio.sample_rate",
		"audio.frame_size",
		"audio.capture_buffer_frames",
		`unknown band "3k"`,
		"preset.bands.32",
		`unknown effect "Chorus"`,
		"preset.pitch",
	} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "voicefx.yaml")
	require.NoError(t, os.WriteFile(path, []byte("recording:\n  dir: /tmp/takes\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/takes", cfg.Recording.Dir)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParamsPreset(t *testing.T) {
	t.Parallel()
	p := 2.0
	preset := config.Preset{Bands: map[string]float64{"64": 10}, Pitch: &p}.ParamsPreset()
	assert.Equal(t, map[string]float64{"64": 10}, preset.Bands)
	assert.Equal(t, &p, preset.Pitch)
}
