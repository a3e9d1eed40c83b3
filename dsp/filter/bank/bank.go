package bank

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// NumBands is the number of equalizer bands.
const NumBands = 10

// Edges holds the upper edge (and nominal centre) of each band in Hz.
var Edges = [NumBands]float64{32, 64, 125, 250, 500, 1000, 2000, 4000, 8000, 16000}

var (
	// ErrFrameLength is returned when a frame does not match the bank size.
	ErrFrameLength = errors.New("bank: frame length mismatch")
	// ErrInvalidSize is returned for non power-of-two or non-positive sizes.
	ErrInvalidSize = errors.New("bank: frame length must be a positive power of two")
)

// Gains holds one linear gain per band, indexed like Edges.
type Gains [NumBands]float64

// UnityGains returns a gain table that leaves the signal unchanged.
func UnityGains() Gains {
	var g Gains
	for i := range g {
		g[i] = 1
	}
	return g
}

// Band describes one band of the bank.
type Band struct {
	Key        string  // display key, "32" .. "16k"
	CenterFreq float64 // nominal centre in Hz
	LowEdge    float64 // exclusive lower edge in Hz (0 for the first band)
	HighEdge   float64 // inclusive upper edge in Hz (+Inf for the last band)
}

// Bands returns the static band layout.
func Bands() []Band {
	out := make([]Band, NumBands)
	for i, f := range Edges {
		b := Band{Key: BandKey(f), CenterFreq: f, HighEdge: f}
		if i > 0 {
			b.LowEdge = Edges[i-1]
		}
		if i == NumBands-1 {
			b.HighEdge = math.Inf(1)
		}
		out[i] = b
	}
	return out
}

// BandKey formats a centre frequency the way the equalizer labels it:
// "32", "500", "1k", "16k".
func BandKey(freqHz float64) string {
	if freqHz >= 1000 {
		return fmt.Sprintf("%dk", int(freqHz/1000))
	}
	return fmt.Sprintf("%d", int(freqHz))
}

// BandOf returns the band index that owns a bin at freqHz.
func BandOf(freqHz float64) int {
	f := math.Abs(freqHz)
	if f <= Edges[0] {
		return 0
	}
	for i := 1; i < NumBands-1; i++ {
		if f > Edges[i-1] && f <= Edges[i] {
			return i
		}
	}
	return NumBands - 1
}

// Bank applies per-band gains to fixed-length frames via FFT.
//
// A Bank keeps scratch buffers and is not safe for concurrent use.
type Bank struct {
	sampleRate float64
	size       int

	plan    *algofft.Plan[complex128]
	binBand []uint8
	counts  [NumBands]int

	timeBuf []complex128
	freqBuf []complex128
}

// New creates a bank for frames of frameLen samples at sampleRate.
func New(sampleRate float64, frameLen int) (*Bank, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("bank: sample rate must be positive and finite: %f", sampleRate)
	}
	if frameLen <= 0 || frameLen&(frameLen-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, frameLen)
	}

	plan, err := algofft.NewPlan64(frameLen)
	if err != nil {
		return nil, fmt.Errorf("bank: failed to create FFT plan: %w", err)
	}

	b := &Bank{
		sampleRate: sampleRate,
		size:       frameLen,
		plan:       plan,
		binBand:    make([]uint8, frameLen),
		timeBuf:    make([]complex128, frameLen),
		freqBuf:    make([]complex128, frameLen),
	}
	for k := range frameLen {
		band := BandOf(BinFrequency(k, frameLen, sampleRate))
		b.binBand[k] = uint8(band)
		b.counts[band]++
	}
	return b, nil
}

// BinFrequency returns the signed frequency of DFT bin k for an n-point
// transform, with the upper half of the bins mapped to negative frequencies.
func BinFrequency(k, n int, sampleRate float64) float64 {
	if k < (n+1)/2 {
		return float64(k) * sampleRate / float64(n)
	}
	return float64(k-n) * sampleRate / float64(n)
}

// SampleRate returns the sample rate in Hz.
func (b *Bank) SampleRate() float64 { return b.sampleRate }

// Size returns the frame length in samples.
func (b *Bank) Size() int { return b.size }

// BinCount returns how many DFT bins (both signs) belong to band.
func (b *Bank) BinCount(band int) int {
	if band < 0 || band >= NumBands {
		return 0
	}
	return b.counts[band]
}

// Process returns a new frame with each band of input scaled by its gain.
func (b *Bank) Process(input []float64, gains Gains) ([]float64, error) {
	if len(input) != b.size {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrFrameLength, len(input), b.size)
	}

	for i, v := range input {
		b.timeBuf[i] = complex(v, 0)
	}
	if err := b.plan.Forward(b.freqBuf, b.timeBuf); err != nil {
		return nil, fmt.Errorf("bank: forward FFT failed: %w", err)
	}

	for k, band := range b.binBand {
		g := gains[band]
		if g != 1 {
			b.freqBuf[k] *= complex(g, 0)
		}
	}

	if err := b.plan.Inverse(b.timeBuf, b.freqBuf); err != nil {
		return nil, fmt.Errorf("bank: inverse FFT failed: %w", err)
	}

	out := make([]float64, b.size)
	for i, c := range b.timeBuf {
		out[i] = real(c)
	}
	return out, nil
}
