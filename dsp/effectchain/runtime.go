package effectchain

import "github.com/cwbudde/algo-voicefx/dsp/effects"

// Unit is the per-stage processing contract.
type Unit interface {
	Name() string
	ProcessInPlace(buf []float64, gain float64)
	Reset()
}

var (
	_ Unit = (*effects.Echo)(nil)
	_ Unit = (*effects.Reverb)(nil)
	_ Unit = (*effects.Delay)(nil)
	_ Unit = (*effects.Distortion)(nil)
	_ Unit = (*effects.Volume)(nil)
)

// Gains holds the linear gain of every unit for one frame.
type Gains struct {
	Echo       float64
	Reverb     float64
	Delay      float64
	Distortion float64
	Volume     float64
}

// DefaultGains returns the neutral setting: every effect off, volume at unity.
func DefaultGains() Gains {
	return Gains{Volume: effects.DefaultVolume}
}

// Get returns the gain for a unit name.
func (g Gains) Get(name string) (float64, bool) {
	switch name {
	case effects.NameEcho:
		return g.Echo, true
	case effects.NameReverb:
		return g.Reverb, true
	case effects.NameDelay:
		return g.Delay, true
	case effects.NameDistortion:
		return g.Distortion, true
	case effects.NameVolume:
		return g.Volume, true
	}
	return 0, false
}

// With returns a copy of g with the named gain replaced.
func (g Gains) With(name string, gain float64) (Gains, bool) {
	switch name {
	case effects.NameEcho:
		g.Echo = gain
	case effects.NameReverb:
		g.Reverb = gain
	case effects.NameDelay:
		g.Delay = gain
	case effects.NameDistortion:
		g.Distortion = gain
	case effects.NameVolume:
		g.Volume = gain
	default:
		return g, false
	}
	return g, true
}
