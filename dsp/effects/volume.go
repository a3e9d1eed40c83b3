package effects

import "github.com/cwbudde/algo-vecmath"

// DefaultVolume is the neutral volume gain.
const DefaultVolume = 1.0

// Volume scales the frame by a linear gain. It is the last unit of a chain
// and the only one applied at every gain, including its neutral 1.0.
type Volume struct{}

// NewVolume creates a volume unit.
func NewVolume() *Volume { return &Volume{} }

// Name returns the unit name.
func (v *Volume) Name() string { return NameVolume }

// Reset is a no-op.
func (v *Volume) Reset() {}

// ProcessInPlace scales buf by gain.
func (v *Volume) ProcessInPlace(buf []float64, gain float64) {
	vecmath.ScaleBlock(buf, buf, clampGain(gain))
}
