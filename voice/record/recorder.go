package record

import "sync"

// Recorder collects copies of frames between Arm and Disarm. Append is
// called from the audio loop; Arm and Disarm from the control path.
type Recorder struct {
	mu     sync.Mutex
	armed  bool
	frames [][]float32
}

// New returns a disarmed recorder.
func New() *Recorder {
	return &Recorder{}
}

// Arm drops anything buffered and starts accepting frames.
func (r *Recorder) Arm() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.frames = nil
	r.armed = true
}

// IsArmed reports whether Append currently stores frames.
func (r *Recorder) IsArmed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.armed
}

// Append stores a copy of frame if the recorder is armed. It reports
// whether the frame was kept.
func (r *Recorder) Append(frame []float32) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.armed {
		return false
	}
	r.frames = append(r.frames, append([]float32(nil), frame...))
	return true
}

// Disarm stops recording and hands over everything buffered since Arm.
// It returns nil if the recorder was not armed.
func (r *Recorder) Disarm() *Take {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.armed {
		return nil
	}
	r.armed = false
	take := &Take{frames: r.frames}
	r.frames = nil
	return take
}
