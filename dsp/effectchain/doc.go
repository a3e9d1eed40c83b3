// Package effectchain runs the fixed voice effect chain over whole frames.
//
// The chain owns exactly one instance of each unit from package effects and
// applies them in a fixed order:
//
//	Echo -> Reverb -> Delay -> Distortion -> Volume -> limiter
//
// A unit other than Volume runs only while its gain is above zero. Volume
// always runs. The limiter divides the frame by its peak when the peak
// exceeds 1.
//
// Process never mutates its input. When any stage fails (non-finite output or
// a panic inside a unit) it returns a copy of the unprocessed input together
// with a [*ProcessingError], so callers can keep streaming.
package effectchain
