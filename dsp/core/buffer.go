package core

import "math"

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// Widen converts device samples to the float64 processing format.
// dst is resized to len(src).
func Widen(dst []float64, src []float32) []float64 {
	dst = EnsureLen(dst, len(src))
	for i, v := range src {
		dst[i] = float64(v)
	}
	return dst
}

// Narrow converts processed samples back to float32 for the device.
// dst is resized to len(src).
func Narrow(dst []float32, src []float64) []float32 {
	if cap(dst) >= len(src) {
		dst = dst[:len(src)]
	} else {
		dst = make([]float32, len(src))
	}
	for i, v := range src {
		dst[i] = float32(v)
	}
	return dst
}

// PeakAbs returns max(|x[i]|). NaN samples propagate as NaN.
func PeakAbs(x []float64) float64 {
	peak := 0.0
	for _, v := range x {
		if math.IsNaN(v) {
			return math.NaN()
		}
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	return peak
}

// AllFinite reports whether every sample in x is finite.
func AllFinite(x []float64) bool {
	for _, v := range x {
		if !IsFinite(v) {
			return false
		}
	}
	return true
}

// LimitPeak divides buf by its peak magnitude when the peak exceeds ceiling,
// so the loudest sample lands exactly on 1. It reports whether buf was scaled.
func LimitPeak(buf []float64, ceiling float64) bool {
	peak := PeakAbs(buf)
	if !(peak > ceiling) {
		return false
	}
	inv := 1 / peak
	for i := range buf {
		buf[i] *= inv
	}
	return true
}
