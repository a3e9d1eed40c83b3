package device

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"
)

// Generator fills frame with input samples. offset is the absolute index of
// frame[0] since the capture was opened.
type Generator func(frame []float32, offset int)

// Silence generates zeros.
func Silence(frame []float32, _ int) { clear(frame) }

// Sine returns a generator for a continuous sine tone.
func Sine(freqHz, sampleRate, amplitude float64) Generator {
	step := 2 * math.Pi * freqHz / sampleRate
	return func(frame []float32, offset int) {
		for i := range frame {
			frame[i] = float32(amplitude * math.Sin(step*float64(offset+i)))
		}
	}
}

// LoopbackOption configures a Loopback.
type LoopbackOption func(*Loopback)

// WithGenerator sets the input source. The default is silence.
func WithGenerator(g Generator) LoopbackOption {
	return func(l *Loopback) { l.gen = g }
}

// WithPacing makes every capture read take at least d, imitating a device
// that delivers frames in real time.
func WithPacing(d time.Duration) LoopbackOption {
	return func(l *Loopback) { l.pace = d }
}

// WithCaptureFault injects an error into capture reads. fn receives the
// zero-based read index; ErrOverflow still delivers the frame.
func WithCaptureFault(fn func(read int) error) LoopbackOption {
	return func(l *Loopback) { l.captureFault = fn }
}

// WithPlaybackFault injects an error into playback writes.
func WithPlaybackFault(fn func(write int) error) LoopbackOption {
	return func(l *Loopback) { l.playbackFault = fn }
}

// WithOpenErrors makes the next opens fail with the given errors; nil
// leaves that side working.
func WithOpenErrors(capture, playback error) LoopbackOption {
	return func(l *Loopback) {
		l.captureOpenErr = capture
		l.playbackOpenErr = playback
	}
}

// WithRetain keeps only the last n played frames. Zero keeps everything.
func WithRetain(n int) LoopbackOption {
	return func(l *Loopback) { l.retain = n }
}

// Loopback is an in-memory Opener. Input comes from a Generator and played
// frames are kept for inspection.
type Loopback struct {
	gen           Generator
	pace          time.Duration
	captureFault  func(int) error
	playbackFault func(int) error
	retain        int

	mu              sync.Mutex
	captureOpenErr  error
	playbackOpenErr error
	opened, closed  int
	played          [][]float32
	playedTotal     int
	misuse          int
}

// NewLoopback returns a Loopback opener.
func NewLoopback(opts ...LoopbackOption) *Loopback {
	l := &Loopback{gen: Silence}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// OpenCapture returns a generator-backed capture handle.
func (l *Loopback) OpenCapture(cfg Config) (Capture, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.captureOpenErr != nil {
		return nil, fmt.Errorf("device: open loopback capture: %w", l.captureOpenErr)
	}
	l.opened++
	return &loopCapture{owner: l}, nil
}

// OpenPlayback returns a handle that records every written frame.
func (l *Loopback) OpenPlayback(cfg Config) (Playback, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.playbackOpenErr != nil {
		return nil, fmt.Errorf("device: open loopback playback: %w", l.playbackOpenErr)
	}
	l.opened++
	return &loopPlayback{owner: l}, nil
}

// Played returns copies of the retained output frames in order.
func (l *Loopback) Played() [][]float32 {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([][]float32, len(l.played))
	for i, f := range l.played {
		out[i] = append([]float32(nil), f...)
	}
	return out
}

// PlayedFrames returns how many frames were written in total.
func (l *Loopback) PlayedFrames() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.playedTotal
}

// Handles returns how many handles were opened and how many were closed.
func (l *Loopback) Handles() (opened, closed int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.opened, l.closed
}

// Misuse counts reads and writes on handles that were already closed.
func (l *Loopback) Misuse() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.misuse
}

func (l *Loopback) release() {
	l.mu.Lock()
	l.closed++
	l.mu.Unlock()
}

func (l *Loopback) noteMisuse() {
	l.mu.Lock()
	l.misuse++
	l.mu.Unlock()
}

func (l *Loopback) store(frame []float32) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.playedTotal++
	l.played = append(l.played, append([]float32(nil), frame...))
	if l.retain > 0 && len(l.played) > l.retain {
		l.played = l.played[len(l.played)-l.retain:]
	}
}

type loopCapture struct {
	owner  *Loopback
	mu     sync.Mutex
	closed bool
	reads  int
	offset int
	last   time.Time
}

func (c *loopCapture) Read(buf []float32) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		c.owner.noteMisuse()
		return 0, ErrClosed
	}

	if c.owner.pace > 0 {
		if wait := c.owner.pace - time.Since(c.last); wait > 0 {
			time.Sleep(wait)
		}
		c.last = time.Now()
	}

	idx := c.reads
	c.reads++

	var err error
	if c.owner.captureFault != nil {
		err = c.owner.captureFault(idx)
	}
	if err != nil && !errors.Is(err, ErrOverflow) {
		return 0, err
	}

	c.owner.gen(buf, c.offset)
	c.offset += len(buf)
	return len(buf), err
}

func (c *loopCapture) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.owner.release()
	return nil
}

type loopPlayback struct {
	owner  *Loopback
	mu     sync.Mutex
	closed bool
	writes int
}

func (p *loopPlayback) Write(buf []float32) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		p.owner.noteMisuse()
		return 0, ErrClosed
	}

	idx := p.writes
	p.writes++
	if p.owner.playbackFault != nil {
		if err := p.owner.playbackFault(idx); err != nil {
			return 0, err
		}
	}
	p.owner.store(buf)
	return len(buf), nil
}

func (p *loopPlayback) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	p.owner.release()
	return nil
}

var _ Opener = (*Loopback)(nil)
