package effectchain

import (
	"errors"
	"fmt"
)

// Stage names used in errors besides the unit names.
const (
	StageInput   = "input"
	StageLimiter = "limiter"
)

var (
	// ErrFrameLength is returned for frames that do not match the chain size.
	ErrFrameLength = errors.New("effectchain: frame length mismatch")
	// ErrNonFinite is returned when a stage produces NaN or Inf samples.
	ErrNonFinite = errors.New("effectchain: non-finite samples")
	// ErrPanic wraps a recovered panic from a unit.
	ErrPanic = errors.New("effectchain: unit panicked")
)

// ProcessingError reports the stage that failed while processing a frame.
type ProcessingError struct {
	Stage string
	Err   error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("processing stage %s: %v", e.Stage, e.Err)
}

func (e *ProcessingError) Unwrap() error { return e.Err }
