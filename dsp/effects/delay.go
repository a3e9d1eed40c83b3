package effects

import "github.com/cwbudde/algo-vecmath"

// DelayFeedback is the fixed feedback coefficient of the delay line.
const DelayFeedback = 0.3

// Delay is a one-frame feedback delay.
//
//	out  = in + hist*gain
//	hist <- in + hist*0.3
//
// The feedback amount does not depend on gain.
type Delay struct {
	history []float64
	input   []float64
	wet     []float64
}

// NewDelay creates a delay with a one-frame history.
func NewDelay(frameLen int) (*Delay, error) {
	if err := checkFrameLen(NameDelay, frameLen); err != nil {
		return nil, err
	}
	return &Delay{
		history: make([]float64, frameLen),
		input:   make([]float64, frameLen),
		wet:     make([]float64, frameLen),
	}, nil
}

// Name returns the unit name.
func (d *Delay) Name() string { return NameDelay }

// FrameLen returns the frame length the unit was built for.
func (d *Delay) FrameLen() int { return len(d.history) }

// Reset clears the delay line.
func (d *Delay) Reset() {
	for i := range d.history {
		d.history[i] = 0
	}
}

// ProcessInPlace applies the delay to buf, which must be FrameLen samples long.
func (d *Delay) ProcessInPlace(buf []float64, gain float64) {
	gain = clampGain(gain)
	copy(d.input, buf)

	vecmath.ScaleBlock(d.wet, d.history, gain)
	vecmath.AddBlockInPlace(buf, d.wet)

	vecmath.ScaleBlock(d.history, d.history, DelayFeedback)
	vecmath.AddBlockInPlace(d.history, d.input)
}
