package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/effectchain"
	"github.com/cwbudde/algo-voicefx/voice/device"
)

func (e *Engine) run(s *session) {
	defer close(s.done)

	in := make([]float32, e.cfg.FrameSize)
	out := make([]float32, e.cfg.FrameSize)
	for e.IsStreaming() {
		e.iterate(s, in, out)
	}
}

// iterate moves one frame from capture to playback. Nothing that happens
// inside it ends the loop.
func (e *Engine) iterate(s *session, in, out []float32) {
	defer func() {
		if r := recover(); r != nil {
			e.procErrs.Add(1)
			processingErrorsTotal.WithLabelValues(StagePanic).Inc()
			e.logger.Error().Interface("panic", r).Msg("audio iteration panicked")
		}
	}()

	n, err := s.capture.Read(in)
	if err != nil {
		if errors.Is(err, device.ErrOverflow) {
			e.overflows.Add(1)
			captureOverflowsTotal.Inc()
			e.logger.Debug().Err(err).Msg("capture overflow")
		} else {
			if !e.IsStreaming() {
				return
			}
			e.devErrs.Add(1)
			deviceErrorsTotal.WithLabelValues(OpRead).Inc()
			e.logger.Warn().Err(&DeviceError{Op: OpRead, Err: err}).Msg("capture read failed")
			time.Sleep(e.readBackoff)
			return
		}
	}
	clear(in[n:])

	start := time.Now()
	if err := e.process(in, out); err != nil {
		copy(out, in)

		stage := StagePanic
		var pe *ProcessingError
		if errors.As(err, &pe) {
			stage = pe.Stage
		}
		e.procErrs.Add(1)
		processingErrorsTotal.WithLabelValues(stage).Inc()
		e.logger.Warn().Err(err).Str("stage", stage).Msg("frame passed through unprocessed")
	}
	frameProcessingSeconds.Observe(time.Since(start).Seconds())

	if e.recorder.Append(out) {
		e.recorded.Add(1)
		recordedFramesTotal.Inc()
	}

	if _, err := s.playback.Write(out); err != nil {
		if !e.IsStreaming() && errors.Is(err, device.ErrClosed) {
			return
		}
		e.devErrs.Add(1)
		deviceErrorsTotal.WithLabelValues(OpWrite).Inc()
		e.logger.Warn().Err(&DeviceError{Op: OpWrite, Err: err}).Msg("playback write failed")
		return
	}
	e.frames.Add(1)
	framesProcessedTotal.Inc()
}

// process runs bank, pitch shifter and chain over in and writes the result
// to out. On error out is left untouched.
func (e *Engine) process(in, out []float32) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ProcessingError{Stage: StagePanic, Err: fmt.Errorf("%w: %v", effectchain.ErrPanic, r)}
		}
	}()

	snap := e.store.Snapshot()
	e.work = core.Widen(e.work, in)

	y, err := e.bank.Process(e.work, snap.Bands)
	if err != nil {
		return &ProcessingError{Stage: StageBank, Err: err}
	}
	y, err = e.shifter.Shift(y, snap.Semitones)
	if err != nil {
		return &ProcessingError{Stage: StagePitch, Err: err}
	}
	if len(y) != len(in) {
		return &ProcessingError{
			Stage: StagePitch,
			Err:   fmt.Errorf("%w: got %d, want %d", effectchain.ErrFrameLength, len(y), len(in)),
		}
	}
	y, err = e.chain.Process(y, snap.Effects)
	if err != nil {
		return &ProcessingError{Stage: StageChain, Err: err}
	}
	if e.chain.Limited() {
		e.limited.Add(1)
		limitedFramesTotal.Inc()
	}

	core.Narrow(out, y)
	return nil
}
