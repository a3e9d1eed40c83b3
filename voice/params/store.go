package params

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/effectchain"
	"github.com/cwbudde/algo-voicefx/dsp/effects/pitch"
	"github.com/cwbudde/algo-voicefx/dsp/filter/bank"
)

const (
	// SliderMax is the top of the 0..100 slider scale used by the setters.
	SliderMax = 100.0
	// DefaultBandSlider is the initial band slider position (gain 2.0).
	DefaultBandSlider = 50.0

	bandSliderDivisor   = 25.0
	effectSliderDivisor = 100.0

	// MaxBandGain is the band gain at a full slider.
	MaxBandGain = SliderMax / bandSliderDivisor
)

var (
	// ErrUnknownBand is returned for a band key outside the ten known bands.
	ErrUnknownBand = errors.New("params: unknown band")
	// ErrUnknownEffect is returned for an effect name outside the chain.
	ErrUnknownEffect = errors.New("params: unknown effect")
)

// Snapshot is a self-consistent copy of every control value.
type Snapshot struct {
	Bands     bank.Gains
	Effects   effectchain.Gains
	Semitones float64
}

// Option configures a Store at construction.
type Option func(*Snapshot)

// WithUnityBands starts every band at gain 1.0, which leaves the equalizer
// transparent.
func WithUnityBands() Option {
	return func(s *Snapshot) {
		s.Bands = bank.UnityGains()
	}
}

// Store is the process-wide parameter store.
type Store struct {
	mu      sync.Mutex
	current atomic.Pointer[Snapshot]
	index   map[string]int
}

// NewStore returns a store holding the default values: every band slider at
// DefaultBandSlider, every effect off except Volume at 1.0, no pitch shift.
func NewStore(opts ...Option) *Store {
	snap := Snapshot{Effects: effectchain.DefaultGains()}
	for i := range snap.Bands {
		snap.Bands[i] = DefaultBandSlider / bandSliderDivisor
	}
	for _, opt := range opts {
		opt(&snap)
	}

	s := &Store{index: make(map[string]int, bank.NumBands)}
	for i, b := range bank.Bands() {
		s.index[b.Key] = i
	}
	s.current.Store(&snap)
	return s
}

// Snapshot returns the current values. It never blocks.
func (s *Store) Snapshot() Snapshot {
	return *s.current.Load()
}

// SetBandGain sets a band from a slider position in [0, 100]; the stored
// gain is slider/25. Out-of-range and NaN positions are clamped.
func (s *Store) SetBandGain(key string, slider float64) error {
	return s.SetBandGainLinear(key, sliderValue(slider)/bandSliderDivisor)
}

// SetBandGainLinear sets a band gain directly, clamped to [0, MaxBandGain].
func (s *Store) SetBandGainLinear(key string, gain float64) error {
	idx, ok := s.index[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownBand, key)
	}
	gain = core.ClampFinite(gain, 0, MaxBandGain, 0)
	s.update(func(snap *Snapshot) { snap.Bands[idx] = gain })
	return nil
}

// SetEffectGain sets an effect from a slider position in [0, 100]; the
// stored gain is slider/100.
func (s *Store) SetEffectGain(name string, slider float64) error {
	return s.SetEffectGainLinear(name, sliderValue(slider)/effectSliderDivisor)
}

// SetEffectGainLinear sets an effect gain directly, clamped to [0, 1].
func (s *Store) SetEffectGainLinear(name string, gain float64) error {
	if _, ok := s.Snapshot().Effects.Get(name); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEffect, name)
	}
	gain = core.ClampFinite(gain, 0, 1, 0)
	s.update(func(snap *Snapshot) { snap.Effects, _ = snap.Effects.With(name, gain) })
	return nil
}

// SetPitchShift sets the pitch shift in semitones, clamped to [-12, 12].
// NaN maps to 0.
func (s *Store) SetPitchShift(semitones float64) {
	semitones = core.ClampFinite(semitones, -pitch.MaxSemitones, pitch.MaxSemitones, 0)
	s.update(func(snap *Snapshot) { snap.Semitones = semitones })
}

// BandGain returns the current linear gain of a band.
func (s *Store) BandGain(key string) (float64, error) {
	idx, ok := s.index[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownBand, key)
	}
	return s.Snapshot().Bands[idx], nil
}

// EffectGain returns the current linear gain of an effect.
func (s *Store) EffectGain(name string) (float64, error) {
	g, ok := s.Snapshot().Effects.Get(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownEffect, name)
	}
	return g, nil
}

// PitchShift returns the current shift in semitones.
func (s *Store) PitchShift() float64 {
	return s.Snapshot().Semitones
}

// update applies fn to a copy of the current snapshot and publishes it.
func (s *Store) update(fn func(*Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := *s.current.Load()
	fn(&next)
	s.current.Store(&next)
}

func sliderValue(v float64) float64 {
	return core.ClampFinite(v, 0, SliderMax, 0)
}
