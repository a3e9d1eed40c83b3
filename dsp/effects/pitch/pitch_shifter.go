package pitch

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/core"
)

const (
	// MaxSemitones bounds the shift in both directions (one octave).
	MaxSemitones = 12.0

	// Speech-tuned WSOLA windows. Shorter than a music preset so that a
	// single 8192-sample frame still contains several sequences.
	DefaultSequenceMs = 40.0
	DefaultOverlapMs  = 8.0
	DefaultSearchMs   = 15.0

	minRatio = 0.25
	maxRatio = 4.0

	minSequenceMs = 20.0
	maxSequenceMs = 120.0
	minOverlapMs  = 4.0
	maxOverlapMs  = 60.0
	minSearchMs   = 2.0
	maxSearchMs   = 40.0

	identityEps = 1e-9
	tiny        = 1e-12
)

// ErrInvalidSampleRate is returned for a non-positive or non-finite rate.
var ErrInvalidSampleRate = errors.New("pitch: sample rate must be positive and finite")

// Option configures a PitchShifter.
type Option func(*PitchShifter) error

// WithSequence sets the WSOLA sequence length in milliseconds.
func WithSequence(ms float64) Option {
	return func(p *PitchShifter) error {
		if !inRange(ms, minSequenceMs, maxSequenceMs) {
			return fmt.Errorf("pitch: sequence must be in [%g, %g] ms: %g", minSequenceMs, maxSequenceMs, ms)
		}
		p.sequenceMs = ms
		return nil
	}
}

// WithOverlap sets the crossfade length in milliseconds.
func WithOverlap(ms float64) Option {
	return func(p *PitchShifter) error {
		if !inRange(ms, minOverlapMs, maxOverlapMs) {
			return fmt.Errorf("pitch: overlap must be in [%g, %g] ms: %g", minOverlapMs, maxOverlapMs, ms)
		}
		p.overlapMs = ms
		return nil
	}
}

// WithSearch sets the seek window radius in milliseconds.
func WithSearch(ms float64) Option {
	return func(p *PitchShifter) error {
		if !inRange(ms, minSearchMs, maxSearchMs) {
			return fmt.Errorf("pitch: search must be in [%g, %g] ms: %g", minSearchMs, maxSearchMs, ms)
		}
		p.searchMs = ms
		return nil
	}
}

// PitchShifter shifts the pitch of one mono frame at a time while keeping
// its length. A WSOLA stretch by the pitch ratio is followed by a cubic
// Hermite resample back to the original length.
//
// The shifter keeps no audio state between frames. Its scratch buffers are
// reused, so a PitchShifter must not be shared between goroutines.
type PitchShifter struct {
	sampleRate float64

	sequenceMs float64
	overlapMs  float64
	searchMs   float64

	sequenceLen int
	overlapLen  int
	searchLen   int
	stepOut     int

	fadeIn  []float64
	fadeOut []float64

	ref     []float64
	stretch []float64
}

// NewPitchShifter returns a shifter for the given sample rate.
func NewPitchShifter(sampleRate float64, opts ...Option) (*PitchShifter, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	p := &PitchShifter{
		sampleRate: sampleRate,
		sequenceMs: DefaultSequenceMs,
		overlapMs:  DefaultOverlapMs,
		searchMs:   DefaultSearchMs,
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	if err := p.layout(); err != nil {
		return nil, err
	}
	return p, nil
}

// Factor returns the frequency ratio for a shift in semitones after
// clamping it to [-MaxSemitones, MaxSemitones]. NaN maps to 1.
func Factor(semitones float64) float64 {
	return core.SemitonesToRatio(clampSemitones(semitones))
}

// SampleRate returns the sample rate in Hz.
func (p *PitchShifter) SampleRate() float64 { return p.sampleRate }

// Shift returns a new frame of the same length with its pitch moved by
// semitones. Semitones are clamped to [-MaxSemitones, MaxSemitones]; a shift
// that amounts to a unit ratio returns an exact copy of frame.
func (p *PitchShifter) Shift(frame []float64, semitones float64) ([]float64, error) {
	out := make([]float64, len(frame))
	if len(frame) == 0 {
		return out, nil
	}

	ratio := Factor(semitones)
	if core.NearlyEqual(ratio, 1, identityEps) {
		copy(out, frame)
		return out, nil
	}
	if ratio < minRatio || ratio > maxRatio {
		return nil, fmt.Errorf("pitch: ratio %g outside [%g, %g]", ratio, minRatio, maxRatio)
	}

	stretched := p.timeStretch(frame, ratio)
	resampleHermite(out, stretched)
	return out, nil
}

// Reset is a no-op; PitchShifter carries no audio between frames.
func (p *PitchShifter) Reset() {}

func (p *PitchShifter) layout() error {
	if p.overlapMs >= p.sequenceMs {
		return fmt.Errorf("pitch: overlap %g ms must be shorter than sequence %g ms", p.overlapMs, p.sequenceMs)
	}

	p.sequenceLen = max(int(math.Round(p.sequenceMs*0.001*p.sampleRate)), 32)
	p.overlapLen = max(int(math.Round(p.overlapMs*0.001*p.sampleRate)), 8)
	if p.overlapLen >= p.sequenceLen {
		return fmt.Errorf("pitch: overlap too large for sequence: overlap=%d sequence=%d", p.overlapLen, p.sequenceLen)
	}
	p.stepOut = p.sequenceLen - p.overlapLen
	if p.stepOut < 4 {
		return fmt.Errorf("pitch: output hop too small: %d", p.stepOut)
	}
	p.searchLen = max(int(math.Round(p.searchMs*0.001*p.sampleRate)), 1)

	// Raised-cosine crossfade.
	p.fadeIn = make([]float64, p.overlapLen)
	p.fadeOut = make([]float64, p.overlapLen)
	for i := range p.overlapLen {
		t := float64(i) / float64(p.overlapLen-1)
		in := 0.5 - 0.5*math.Cos(math.Pi*t)
		p.fadeIn[i] = in
		p.fadeOut[i] = 1 - in
	}
	p.ref = make([]float64, p.overlapLen)
	return nil
}

// timeStretch lengthens (ratio > 1) or shortens (ratio < 1) input to
// round(len*ratio) samples without changing its pitch.
func (p *PitchShifter) timeStretch(input []float64, ratio float64) []float64 {
	targetLen := max(int(math.Round(float64(len(input))*ratio)), 1)

	nominalInStep := max(float64(p.stepOut)/ratio, 1)

	frames := targetLen/p.stepOut + 4
	p.stretch = core.EnsureLen(p.stretch, frames*p.stepOut+p.sequenceLen+1)
	out := p.stretch
	core.Zero(out)

	for i := range p.sequenceLen {
		out[i] = sampleZero(input, i)
	}
	outLen := p.sequenceLen
	prevStart := 0
	nextNominal := nominalInStep

	for outLen < targetLen+p.sequenceLen {
		refStart := prevStart + p.stepOut
		for i := range p.overlapLen {
			p.ref[i] = sampleZero(input, refStart+i)
		}

		candStart := p.bestOverlap(p.ref, input, int(math.Round(nextNominal)))

		outStart := outLen - p.overlapLen
		for i := range p.overlapLen {
			out[outStart+i] = out[outStart+i]*p.fadeOut[i] + sampleZero(input, candStart+i)*p.fadeIn[i]
		}
		for i := p.overlapLen; i < p.sequenceLen; i++ {
			out[outStart+i] = sampleZero(input, candStart+i)
		}

		outLen = outStart + p.sequenceLen
		prevStart = candStart
		nextNominal += nominalInStep

		if prevStart > len(input)+p.sequenceLen && outLen >= targetLen {
			break
		}
	}

	return out[:targetLen]
}

// bestOverlap searches around predicted for the input offset whose first
// overlapLen samples correlate best with ref.
func (p *PitchShifter) bestOverlap(ref, input []float64, predicted int) int {
	best := predicted
	bestScore := math.Inf(-1)

	refEnergy := tiny
	for _, v := range ref {
		refEnergy += v * v
	}

	for cand := predicted - p.searchLen; cand <= predicted+p.searchLen; cand++ {
		dot := 0.0
		candEnergy := tiny
		for i, rv := range ref {
			cv := sampleZero(input, cand+i)
			dot += rv * cv
			candEnergy += cv * cv
		}
		score := dot / math.Sqrt(refEnergy*candEnergy)
		if score > bestScore {
			bestScore = score
			best = cand
		}
	}
	return best
}

// resampleHermite fills dst by reading src end to end at a uniform rate.
func resampleHermite(dst, src []float64) {
	switch {
	case len(dst) == 0:
		return
	case len(src) == 1 || len(dst) == 1:
		for i := range dst {
			dst[i] = src[0]
		}
		return
	}

	step := float64(len(src)-1) / float64(len(dst)-1)
	for i := range dst {
		pos := float64(i) * step
		idx := int(pos)
		t := pos - float64(idx)

		xm1 := sampleClamp(src, idx-1)
		x0 := sampleClamp(src, idx)
		x1 := sampleClamp(src, idx+1)
		x2 := sampleClamp(src, idx+2)

		c1 := 0.5 * (x1 - xm1)
		c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
		c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
		dst[i] = ((c3*t+c2)*t+c1)*t + x0
	}
}

func sampleZero(x []float64, idx int) float64 {
	if idx < 0 || idx >= len(x) {
		return 0
	}
	return x[idx]
}

func sampleClamp(x []float64, idx int) float64 {
	if idx < 0 {
		return x[0]
	}
	if idx >= len(x) {
		return x[len(x)-1]
	}
	return x[idx]
}

func clampSemitones(s float64) float64 {
	return core.ClampFinite(s, -MaxSemitones, MaxSemitones, 0)
}

func inRange(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}
