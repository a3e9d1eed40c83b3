package params

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/effects"
	"github.com/cwbudde/algo-voicefx/dsp/effects/pitch"
	"github.com/cwbudde/algo-voicefx/dsp/filter/bank"
)

// Voice is the character label shown next to the pitch control.
type Voice string

const (
	VoiceChipmunk Voice = "chipmunk"
	VoiceRobot    Voice = "robot"
	VoiceHuman    Voice = "human"
)

// voiceThreshold is the shift in semitones beyond which the voice no longer
// reads as human.
const voiceThreshold = 4.0

// BandGainDB formats a linear band gain as whole decibels: "+6 dB",
// "0 dB", "-3 dB", or "−∞ dB" for a silenced band.
func BandGainDB(gain float64) string {
	if !(gain > 0) {
		return "−∞ dB"
	}
	db := int(math.Round(core.LinearToDB(gain)))
	if db == 0 {
		return "0 dB"
	}
	return fmt.Sprintf("%+d dB", db)
}

// PitchFactor returns the frequency ratio for a shift in semitones.
func PitchFactor(semitones float64) float64 {
	return pitch.Factor(semitones)
}

// PitchFactorLabel formats the ratio as "×1.5".
func PitchFactorLabel(semitones float64) string {
	return fmt.Sprintf("×%.1f", PitchFactor(semitones))
}

// VoiceCharacter classifies a shift: above +4 semitones is a chipmunk,
// below -4 a robot, anything between human.
func VoiceCharacter(semitones float64) Voice {
	switch {
	case semitones > voiceThreshold:
		return VoiceChipmunk
	case semitones < -voiceThreshold:
		return VoiceRobot
	default:
		return VoiceHuman
	}
}

// EffectPercentLabel formats an effect slider position as "42%".
func EffectPercentLabel(slider float64) string {
	return fmt.Sprintf("%d%%", int(sliderValue(slider)))
}

// Bands lists the equalizer bands in ascending order.
func Bands() []bank.Band {
	return bank.Bands()
}

// BandKeys returns the band keys ("32" .. "16k") in ascending order.
func BandKeys() []string {
	bands := bank.Bands()
	keys := make([]string, len(bands))
	for i, b := range bands {
		keys[i] = b.Key
	}
	return keys
}

// EffectNames returns the effect names in chain order.
func EffectNames() []string {
	return effects.Names()
}
