package effectchain

import (
	"fmt"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/effects"
)

type stage struct {
	unit   Unit
	gain   func(Gains) float64
	always bool
}

// Chain owns the effect units and their histories.
//
// A Chain is meant to be driven by a single goroutine; nothing else may call
// Process or Reset while it runs.
type Chain struct {
	frameLen int
	stages   []stage
	work     []float64
	limited  bool
}

// New creates the standard five-unit chain for frames of frameLen samples.
func New(frameLen int) (*Chain, error) {
	echo, err := effects.NewEcho(frameLen)
	if err != nil {
		return nil, fmt.Errorf("effectchain: %w", err)
	}
	reverb, err := effects.NewReverb(frameLen)
	if err != nil {
		return nil, fmt.Errorf("effectchain: %w", err)
	}
	delay, err := effects.NewDelay(frameLen)
	if err != nil {
		return nil, fmt.Errorf("effectchain: %w", err)
	}

	return newChain(frameLen, []stage{
		{unit: echo, gain: func(g Gains) float64 { return g.Echo }},
		{unit: reverb, gain: func(g Gains) float64 { return g.Reverb }},
		{unit: delay, gain: func(g Gains) float64 { return g.Delay }},
		{unit: effects.NewDistortion(), gain: func(g Gains) float64 { return g.Distortion }},
		{unit: effects.NewVolume(), gain: func(g Gains) float64 { return g.Volume }, always: true},
	}), nil
}

func newChain(frameLen int, stages []stage) *Chain {
	return &Chain{
		frameLen: frameLen,
		stages:   stages,
		work:     make([]float64, frameLen),
	}
}

// FrameLen returns the frame length in samples.
func (c *Chain) FrameLen() int { return c.frameLen }

// Stages returns the unit names in processing order.
func (c *Chain) Stages() []string {
	names := make([]string, len(c.stages))
	for i, s := range c.stages {
		names[i] = s.unit.Name()
	}
	return names
}

// Limited reports whether the limiter scaled the last processed frame.
func (c *Chain) Limited() bool { return c.limited }

// Reset clears the history of every unit.
func (c *Chain) Reset() {
	for _, s := range c.stages {
		s.unit.Reset()
	}
	c.limited = false
}

// Process runs input through the chain and returns a new frame.
//
// On failure the returned frame is a copy of input and err is a
// *ProcessingError naming the stage.
func (c *Chain) Process(input []float64, g Gains) (out []float64, err error) {
	c.limited = false
	if len(input) != c.frameLen {
		return clone(input), &ProcessingError{
			Stage: StageInput,
			Err:   fmt.Errorf("%w: got %d, want %d", ErrFrameLength, len(input), c.frameLen),
		}
	}
	if !core.AllFinite(input) {
		return clone(input), &ProcessingError{Stage: StageInput, Err: ErrNonFinite}
	}

	var current *stage
	defer func() {
		if r := recover(); r != nil {
			name := StageLimiter
			if current != nil {
				name = current.unit.Name()
				current.unit.Reset()
			}
			out = clone(input)
			err = &ProcessingError{Stage: name, Err: fmt.Errorf("%w: %v", ErrPanic, r)}
		}
	}()

	copy(c.work, input)
	for i := range c.stages {
		s := &c.stages[i]
		gain := s.gain(g)
		if !s.always && !(gain > 0) {
			continue
		}

		current = s
		s.unit.ProcessInPlace(c.work, gain)
		if !core.AllFinite(c.work) {
			s.unit.Reset()
			return clone(input), &ProcessingError{Stage: s.unit.Name(), Err: ErrNonFinite}
		}
	}
	current = nil

	c.limited = core.LimitPeak(c.work, 1)
	return clone(c.work), nil
}

func clone(x []float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	return out
}
