// Package pitch moves the pitch of mono frames by up to an octave in either
// direction without changing their length.
//
// [PitchShifter] stretches a frame in time with WSOLA and resamples the
// result back to the frame length with a cubic Hermite kernel. [Shifter] is
// the narrow interface the stream engine depends on.
package pitch
