package params

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/effects/pitch"
)

// Preset is a set of slider positions. Keys that are absent keep their
// current value; Pitch is applied only when set.
type Preset struct {
	Bands   map[string]float64
	Effects map[string]float64
	Pitch   *float64
}

// ApplyPreset validates every key of p and then publishes all values in a
// single update. Nothing is applied when a key is unknown.
func (s *Store) ApplyPreset(p Preset) error {
	var errs []error
	for _, key := range slices.Sorted(maps.Keys(p.Bands)) {
		if _, ok := s.index[key]; !ok {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownBand, key))
		}
	}
	current := s.Snapshot().Effects
	for _, name := range slices.Sorted(maps.Keys(p.Effects)) {
		if _, ok := current.Get(name); !ok {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownEffect, name))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	s.update(func(snap *Snapshot) {
		for key, v := range p.Bands {
			snap.Bands[s.index[key]] = sliderValue(v) / bandSliderDivisor
		}
		for name, v := range p.Effects {
			snap.Effects, _ = snap.Effects.With(name, sliderValue(v)/effectSliderDivisor)
		}
		if p.Pitch != nil {
			snap.Semitones = core.ClampFinite(*p.Pitch, -pitch.MaxSemitones, pitch.MaxSemitones, 0)
		}
	})
	return nil
}
