package params

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBandGainDB(t *testing.T) {
	tests := []struct {
		gain float64
		want string
	}{
		{2.0, "+6 dB"},
		{1.0, "0 dB"},
		{4.0, "+12 dB"},
		{0.5, "-6 dB"},
		{0.7, "-3 dB"},
		{1.05, "0 dB"},
		{0.95, "0 dB"},
		{1e-3, "-60 dB"},
		{0, "−∞ dB"},
		{math.NaN(), "−∞ dB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BandGainDB(tt.gain), "gain %v", tt.gain)
	}
}

func TestPitchFactorLabel(t *testing.T) {
	assert.Equal(t, "×1.0", PitchFactorLabel(0))
	assert.Equal(t, "×2.0", PitchFactorLabel(12))
	assert.Equal(t, "×0.5", PitchFactorLabel(-12))
	assert.Equal(t, "×1.5", PitchFactorLabel(7))
	assert.InDelta(t, math.Pow(2, 3.0/12), PitchFactor(3), 1e-12)
}

func TestVoiceCharacter(t *testing.T) {
	assert.Equal(t, VoiceHuman, VoiceCharacter(0))
	assert.Equal(t, VoiceHuman, VoiceCharacter(4))
	assert.Equal(t, VoiceHuman, VoiceCharacter(-4))
	assert.Equal(t, VoiceChipmunk, VoiceCharacter(4.5))
	assert.Equal(t, VoiceRobot, VoiceCharacter(-12))
}

func TestEffectPercentLabel(t *testing.T) {
	assert.Equal(t, "0%", EffectPercentLabel(0))
	assert.Equal(t, "42%", EffectPercentLabel(42.9))
	assert.Equal(t, "100%", EffectPercentLabel(180))
}

func TestBandKeysAndEffectNames(t *testing.T) {
	assert.Equal(t, []string{"32", "64", "125", "250", "500", "1k", "2k", "4k", "8k", "16k"}, BandKeys())
	assert.Equal(t, []string{"Echo", "Reverb", "Delay", "Distortion", "Volume"}, EffectNames())
	assert.Len(t, Bands(), 10)
}
