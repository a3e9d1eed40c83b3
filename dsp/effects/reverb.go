package effects

import "github.com/cwbudde/algo-vecmath"

const (
	reverbTaps  = 4
	reverbDecay = 0.5
)

// Reverb mixes the last four input frames into the current one with
// geometrically decaying weights.
//
//	out = in + sum_{i=0..3} hist[i] * 0.5^(i+1) * gain
//
// hist[0] is the oldest stored frame. After each call the window rolls left by
// one frame and the current input becomes hist[3].
type Reverb struct {
	frameLen int
	history  []float64
	input    []float64
	wet      []float64
	weights  [reverbTaps]float64
}

// NewReverb creates a reverb with a four-frame history.
func NewReverb(frameLen int) (*Reverb, error) {
	if err := checkFrameLen(NameReverb, frameLen); err != nil {
		return nil, err
	}
	r := &Reverb{
		frameLen: frameLen,
		history:  make([]float64, reverbTaps*frameLen),
		input:    make([]float64, frameLen),
		wet:      make([]float64, frameLen),
	}
	w := 1.0
	for i := range r.weights {
		w *= reverbDecay
		r.weights[i] = w
	}
	return r, nil
}

// Name returns the unit name.
func (r *Reverb) Name() string { return NameReverb }

// FrameLen returns the frame length the unit was built for.
func (r *Reverb) FrameLen() int { return r.frameLen }

// HistoryLen returns the history length in samples (four frames).
func (r *Reverb) HistoryLen() int { return len(r.history) }

// Reset clears the history window.
func (r *Reverb) Reset() {
	for i := range r.history {
		r.history[i] = 0
	}
}

// ProcessInPlace applies the reverb to buf, which must be FrameLen samples long.
func (r *Reverb) ProcessInPlace(buf []float64, gain float64) {
	gain = clampGain(gain)
	n := r.frameLen
	copy(r.input, buf)

	for i, w := range r.weights {
		vecmath.ScaleBlock(r.wet, r.history[i*n:(i+1)*n], w*gain)
		vecmath.AddBlockInPlace(buf, r.wet)
	}

	copy(r.history, r.history[n:])
	copy(r.history[(reverbTaps-1)*n:], r.input)
}
