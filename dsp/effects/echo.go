package effects

import "github.com/cwbudde/algo-vecmath"

// Echo adds the previous frame's input, scaled by gain, to the current frame.
//
//	out = in + prior*gain
//	prior <- in
type Echo struct {
	prior []float64
	input []float64
	wet   []float64
}

// NewEcho creates an echo with a one-frame history of frameLen samples.
func NewEcho(frameLen int) (*Echo, error) {
	if err := checkFrameLen(NameEcho, frameLen); err != nil {
		return nil, err
	}
	return &Echo{
		prior: make([]float64, frameLen),
		input: make([]float64, frameLen),
		wet:   make([]float64, frameLen),
	}, nil
}

// Name returns the unit name.
func (e *Echo) Name() string { return NameEcho }

// FrameLen returns the frame length the unit was built for.
func (e *Echo) FrameLen() int { return len(e.prior) }

// Reset clears the stored frame.
func (e *Echo) Reset() {
	for i := range e.prior {
		e.prior[i] = 0
	}
}

// ProcessInPlace applies the echo to buf, which must be FrameLen samples long.
func (e *Echo) ProcessInPlace(buf []float64, gain float64) {
	gain = clampGain(gain)
	copy(e.input, buf)

	vecmath.ScaleBlock(e.wet, e.prior, gain)
	vecmath.AddBlockInPlace(buf, e.wet)

	e.prior, e.input = e.input, e.prior
}
