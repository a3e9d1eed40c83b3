package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/cwbudde/algo-voicefx/dsp/effectchain"
	"github.com/cwbudde/algo-voicefx/dsp/effects/pitch"
	"github.com/cwbudde/algo-voicefx/dsp/filter/bank"
	"github.com/cwbudde/algo-voicefx/internal/logging"
	"github.com/cwbudde/algo-voicefx/voice/device"
	"github.com/cwbudde/algo-voicefx/voice/params"
	"github.com/cwbudde/algo-voicefx/voice/record"
)

const (
	defaultStopTimeout = 2 * time.Second
	defaultReadBackoff = 10 * time.Millisecond
)

// State is the streaming state.
type State int32

const (
	Stopped State = iota
	Streaming
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Streaming:
		return "streaming"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// Stats are counters local to one Engine.
type Stats struct {
	Frames           uint64
	ProcessingErrors uint64
	Overflows        uint64
	DeviceErrors     uint64
	RecordedFrames   uint64
	LimitedFrames    uint64
}

type session struct {
	capture  device.Capture
	playback device.Playback
	done     chan struct{}
}

// Engine owns the devices and the audio goroutine of a streaming session.
type Engine struct {
	store  *params.Store
	opener device.Opener
	cfg    device.Config
	logger zerolog.Logger

	onStreaming func(bool)
	onRecording func(bool)
	stopTimeout time.Duration
	readBackoff time.Duration

	bank      *bank.Bank
	shifter   pitch.Shifter
	pitchOpts []pitch.Option
	chain     *effectchain.Chain
	recorder  *record.Recorder

	work []float64 // owned by the audio goroutine

	mu    sync.Mutex
	sess  *session
	state atomic.Int32

	frames    atomic.Uint64
	procErrs  atomic.Uint64
	overflows atomic.Uint64
	devErrs   atomic.Uint64
	recorded  atomic.Uint64
	limited   atomic.Uint64
}

// New builds a stopped engine reading its parameters from store and opening
// devices through opener.
func New(store *params.Store, opener device.Opener, opts ...Option) (*Engine, error) {
	if store == nil {
		return nil, errors.New("engine: nil parameter store")
	}
	if opener == nil {
		return nil, errors.New("engine: nil device opener")
	}

	e := &Engine{
		store:       store,
		opener:      opener,
		cfg:         device.DefaultConfig(),
		logger:      *logging.GetDefaultLogger(),
		stopTimeout: defaultStopTimeout,
		readBackoff: defaultReadBackoff,
		recorder:    record.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With().Str("component", "engine").Logger()

	if err := e.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	var err error
	sampleRate := float64(e.cfg.SampleRate)
	if e.bank, err = bank.New(sampleRate, e.cfg.FrameSize); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	if e.shifter == nil {
		if e.shifter, err = pitch.NewPitchShifter(sampleRate, e.pitchOpts...); err != nil {
			return nil, fmt.Errorf("engine: %w", err)
		}
	}
	if e.chain, err = effectchain.New(e.cfg.FrameSize); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	return e, nil
}

// Config returns the device configuration the engine opens with.
func (e *Engine) Config() device.Config { return e.cfg }

// State returns the current streaming state.
func (e *Engine) State() State { return State(e.state.Load()) }

// IsStreaming reports whether a session is running.
func (e *Engine) IsStreaming() bool { return e.State() == Streaming }

// IsRecording reports whether processed frames are being recorded.
func (e *Engine) IsRecording() bool { return e.recorder.IsArmed() }

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Frames:           e.frames.Load(),
		ProcessingErrors: e.procErrs.Load(),
		Overflows:        e.overflows.Load(),
		DeviceErrors:     e.devErrs.Load(),
		RecordedFrames:   e.recorded.Load(),
		LimitedFrames:    e.limited.Load(),
	}
}

// Start opens both devices and launches the audio goroutine. It does nothing
// if the engine is already streaming. ctx bounds the device opening only;
// the session runs until Stop.
func (e *Engine) Start(ctx context.Context) error {
	started, err := e.start(ctx)
	if err != nil {
		return err
	}
	if started {
		notify(e.onStreaming, true)
	}
	return nil
}

func (e *Engine) start(ctx context.Context) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sess != nil {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	capture, err := e.opener.OpenCapture(e.cfg)
	if err != nil {
		deviceErrorsTotal.WithLabelValues(OpOpenCapture).Inc()
		return false, &DeviceError{Op: OpOpenCapture, Err: err}
	}
	playback, err := e.opener.OpenPlayback(e.cfg)
	if err != nil {
		deviceErrorsTotal.WithLabelValues(OpOpenPlayback).Inc()
		return false, &DeviceError{Op: OpOpenPlayback, Err: errors.Join(err, capture.Close())}
	}

	s := &session{capture: capture, playback: playback, done: make(chan struct{})}
	if err := ctx.Err(); err != nil {
		return false, errors.Join(err, e.closeDevices(s))
	}

	e.chain.Reset()
	e.shifter.Reset()
	e.sess = s
	e.state.Store(int32(Streaming))
	streamingActive.Set(1)

	go e.run(s)

	e.logger.Info().
		Int("sample_rate", e.cfg.SampleRate).
		Int("frame_size", e.cfg.FrameSize).
		Msg("streaming started")
	return true, nil
}

// Stop ends the session. It returns after the audio goroutine has exited
// and both devices are closed; close failures are joined into the result.
// It does nothing if the engine is not streaming.
func (e *Engine) Stop() error {
	stopped, err := e.stop()
	if stopped {
		notify(e.onStreaming, false)
	}
	return err
}

func (e *Engine) stop() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.sess
	if s == nil {
		return false, nil
	}
	e.state.Store(int32(Stopped))
	err := e.join(s)
	e.sess = nil
	streamingActive.Set(0)

	e.logger.Info().Uint64("frames", e.frames.Load()).Msg("streaming stopped")
	return true, err
}

// join waits for the audio goroutine, then closes the devices. A loop stuck
// in device I/O past stopTimeout is released by closing the handles first.
func (e *Engine) join(s *session) error {
	var timeout <-chan time.Time
	if e.stopTimeout > 0 {
		t := time.NewTimer(e.stopTimeout)
		defer t.Stop()
		timeout = t.C
	}

	select {
	case <-s.done:
		return e.closeDevices(s)
	case <-timeout:
		e.logger.Warn().Dur("timeout", e.stopTimeout).Msg("audio loop blocked in device I/O, closing devices")
		err := e.closeDevices(s)
		<-s.done
		return err
	}
}

func (e *Engine) closeDevices(s *session) error {
	var errs []error
	if err := s.capture.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := s.playback.Close(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil
	}
	deviceErrorsTotal.WithLabelValues(OpClose).Inc()
	return &DeviceError{Op: OpClose, Err: errors.Join(errs...)}
}

// ArmRecording clears any previous take and starts recording processed
// frames.
func (e *Engine) ArmRecording() {
	e.recorder.Arm()
	e.logger.Info().Msg("recording armed")
	notify(e.onRecording, true)
}

// DisarmRecording stops recording and writes the take to dst as a WAV file.
// An empty dst discards the take. A write failure is returned as a
// *RecordingError and leaves streaming untouched. Calling it while not
// recording does nothing.
func (e *Engine) DisarmRecording(dst string) error {
	take := e.recorder.Disarm()
	if take == nil {
		return nil
	}
	notify(e.onRecording, false)

	log := e.logger.With().Int("frames", take.Frames()).Int("samples", take.Len()).Logger()
	if dst == "" {
		log.Info().Msg("recording discarded")
		return nil
	}
	if err := take.Save(dst); err != nil {
		log.Error().Err(err).Str("path", dst).Msg("recording not saved")
		return &RecordingError{Path: dst, Err: err}
	}
	log.Info().Str("path", dst).Msg("recording saved")
	return nil
}

func notify(fn func(bool), v bool) {
	if fn != nil {
		fn(v)
	}
}
