package bank

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/internal/testutil"
)

const (
	testRate = 44100.0
	testSize = 8192
)

func newTestBank(t *testing.T) *Bank {
	t.Helper()
	b, err := New(testRate, testSize)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return b
}

func TestNewRejectsInvalidSizes(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate float64
		size       int
	}{
		{name: "zero size", sampleRate: testRate, size: 0},
		{name: "not power of two", sampleRate: testRate, size: 1000},
		{name: "zero rate", sampleRate: 0, size: 1024},
		{name: "NaN rate", sampleRate: math.NaN(), size: 1024},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.sampleRate, tt.size); err == nil {
				t.Fatal("New() expected error")
			}
		})
	}
}

func TestBandOfBoundaries(t *testing.T) {
	tests := []struct {
		freq float64
		want int
	}{
		{freq: 0, want: 0},
		{freq: 32, want: 0},
		{freq: -32, want: 0},
		{freq: 32.01, want: 1},
		{freq: 64, want: 1},
		{freq: 1000, want: 5},
		{freq: 1000.5, want: 6},
		{freq: 8000, want: 8},
		{freq: 8000.1, want: 9},
		{freq: 16000, want: 9},
		{freq: 22050, want: 9},
		{freq: -22050, want: 9},
	}
	for _, tt := range tests {
		if got := BandOf(tt.freq); got != tt.want {
			t.Errorf("BandOf(%v) = %d, want %d", tt.freq, got, tt.want)
		}
	}
}

func TestBinCountsPartitionSpectrum(t *testing.T) {
	b := newTestBank(t)
	total := 0
	for i := range NumBands {
		if b.BinCount(i) == 0 {
			t.Errorf("band %d has no bins", i)
		}
		total += b.BinCount(i)
	}
	if total != testSize {
		t.Fatalf("bins assigned = %d, want %d", total, testSize)
	}
	if b.BinCount(-1) != 0 || b.BinCount(NumBands) != 0 {
		t.Fatal("out of range band should report zero bins")
	}
}

func TestBandKeys(t *testing.T) {
	want := []string{"32", "64", "125", "250", "500", "1k", "2k", "4k", "8k", "16k"}
	bands := Bands()
	for i, band := range bands {
		if band.Key != want[i] {
			t.Errorf("band %d key = %q, want %q", i, band.Key, want[i])
		}
	}
	if !math.IsInf(bands[NumBands-1].HighEdge, 1) {
		t.Fatal("last band must be open-ended")
	}
}

func TestProcessIdentityAtUnityGain(t *testing.T) {
	b := newTestBank(t)
	inputs := map[string][]float64{
		"noise":   testutil.DeterministicNoise(7, 0.8, testSize),
		"sine":    testutil.DeterministicSine(440, testRate, 0.5, testSize),
		"impulse": testutil.Impulse(testSize, 100),
	}
	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			out, err := b.Process(in, UnityGains())
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			testutil.RequireSliceNearlyEqual(t, out, in, 1e-9)
		})
	}
}

func TestProcessZeroGainSilences(t *testing.T) {
	b := newTestBank(t)
	in := testutil.DeterministicNoise(3, 1, testSize)

	out, err := b.Process(in, Gains{})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if peak := core.PeakAbs(out); peak > 1e-12 {
		t.Fatalf("peak = %g, want ~0", peak)
	}
}

func TestProcessIsolatesBand(t *testing.T) {
	b := newTestBank(t)
	// Bin-aligned tone at 186*fs/N ~= 1001 Hz, owned by the 2k band.
	freq := 186 * testRate / testSize
	in := testutil.DeterministicSine(freq, testRate, 0.25, testSize)
	band := BandOf(freq)
	if band != 6 {
		t.Fatalf("tone band = %d, want 6", band)
	}

	gains := UnityGains()
	gains[band] = 2
	boosted, err := b.Process(in, gains)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	want := make([]float64, len(in))
	for i, v := range in {
		want[i] = 2 * v
	}
	testutil.RequireSliceNearlyEqual(t, boosted, want, 1e-9)

	gains[band] = 0
	cut, err := b.Process(in, gains)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if peak := core.PeakAbs(cut); peak > 1e-9 {
		t.Fatalf("cut band peak = %g, want ~0", peak)
	}

	gains = UnityGains()
	gains[2] = 0
	other, err := b.Process(in, gains)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, other, in, 1e-9)
}

func TestProcessDoesNotMutateInput(t *testing.T) {
	b := newTestBank(t)
	in := testutil.DeterministicNoise(11, 0.5, testSize)
	orig := append([]float64(nil), in...)

	if _, err := b.Process(in, Gains{}); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, in, orig, 0)
}

func TestProcessRejectsWrongLength(t *testing.T) {
	b := newTestBank(t)
	_, err := b.Process(make([]float64, 100), UnityGains())
	if !errors.Is(err, ErrFrameLength) {
		t.Fatalf("Process() error = %v, want ErrFrameLength", err)
	}
}
