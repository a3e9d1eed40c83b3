package engine

import (
	"fmt"

	"github.com/cwbudde/algo-voicefx/dsp/effectchain"
)

// Device operations reported in DeviceError.Op.
const (
	OpOpenCapture  = "open capture"
	OpOpenPlayback = "open playback"
	OpRead         = "read"
	OpWrite        = "write"
	OpClose        = "close"
)

// Pipeline stages reported in ProcessingError.Stage.
const (
	StageBank  = "bank"
	StagePitch = "pitch"
	StageChain = "chain"
	StagePanic = "panic"
)

// DeviceError reports a failed device operation.
type DeviceError struct {
	Op  string
	Err error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("device %s: %v", e.Op, e.Err)
}

func (e *DeviceError) Unwrap() error { return e.Err }

// ProcessingError reports a frame that left the pipeline unprocessed.
type ProcessingError = effectchain.ProcessingError

// RecordingError reports a take that could not be written.
type RecordingError struct {
	Path string
	Err  error
}

func (e *RecordingError) Error() string {
	return fmt.Sprintf("save recording %s: %v", e.Path, e.Err)
}

func (e *RecordingError) Unwrap() error { return e.Err }
