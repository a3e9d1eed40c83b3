package pitch

// Shifter shifts one frame by a number of semitones and returns a new frame
// of the same length.
type Shifter interface {
	Shift(frame []float64, semitones float64) ([]float64, error)
	Reset()
}

var _ Shifter = (*PitchShifter)(nil)
