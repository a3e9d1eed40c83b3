package effects

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-voicefx/dsp/core"
)

// Unit names as exposed to the control surface.
const (
	NameEcho       = "Echo"
	NameReverb     = "Reverb"
	NameDelay      = "Delay"
	NameDistortion = "Distortion"
	NameVolume     = "Volume"
)

// ErrFrameLength is returned when a unit is constructed with an invalid frame length.
var ErrFrameLength = errors.New("effects: frame length must be > 0")

// Names returns the unit names in chain order.
func Names() []string {
	return []string{NameEcho, NameReverb, NameDelay, NameDistortion, NameVolume}
}

func checkFrameLen(name string, frameLen int) error {
	if frameLen <= 0 {
		return fmt.Errorf("%w: %s got %d", ErrFrameLength, name, frameLen)
	}
	return nil
}

func clampGain(gain float64) float64 {
	return core.ClampFinite(gain, 0, 1, 0)
}
