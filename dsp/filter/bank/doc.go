// Package bank provides a frequency-domain graphic equalizer bank.
//
// The bank partitions the spectrum of one frame into ten contiguous bands
// whose upper edges are the ISO-style centre frequencies
//
//	32, 64, 125, 250, 500, 1k, 2k, 4k, 8k, 16k Hz
//
// Band membership of a bin is decided by its absolute frequency |f|:
//
//	band 0:      |f| <= 32
//	band i:      Edges[i-1] < |f| <= Edges[i]   (0 < i < 9)
//	band 9:      |f| > 8000
//
// so the bands cover the whole non-negative axis without overlap. Negative
// frequencies (the upper half of the DFT) map to the same band as their
// positive mirror, which keeps the spectrum Hermitian and the output real.
//
// Basic usage:
//
//	b, _ := bank.New(44100, 8192)
//	out, err := b.Process(frame, gains) // gains[i] multiplies band i
//
// With every gain at 1 the bank is the identity up to FFT round-trip error.
package bank
