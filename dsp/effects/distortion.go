package effects

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-voicefx/dsp/core"
)

const distortionMaxDrive = 10.0

// Distortion is a stateless sine waveshaper.
//
// For gain g the frame is driven by 1+10g, hard-clipped to [-1, 1], shaped
// with sin(x*pi/2), normalised to a peak of 1 and finally scaled by g. The
// output level therefore follows the raw gain, not the driven signal.
type Distortion struct{}

// NewDistortion creates a distortion unit.
func NewDistortion() *Distortion { return &Distortion{} }

// Name returns the unit name.
func (d *Distortion) Name() string { return NameDistortion }

// Reset is a no-op; the waveshaper keeps no state.
func (d *Distortion) Reset() {}

// Drive returns the input drive applied for gain.
func (d *Distortion) Drive(gain float64) float64 {
	return 1 + clampGain(gain)*distortionMaxDrive
}

// ProcessInPlace applies the waveshaper to buf.
func (d *Distortion) ProcessInPlace(buf []float64, gain float64) {
	gain = clampGain(gain)
	drive := d.Drive(gain)

	for i, v := range buf {
		x := core.Clamp(v*drive, -1, 1)
		buf[i] = math.Sin(x * math.Pi / 2)
	}

	scale := gain
	if peak := core.PeakAbs(buf); peak > 0 {
		scale = gain / peak
	}
	vecmath.ScaleBlock(buf, buf, scale)
}
