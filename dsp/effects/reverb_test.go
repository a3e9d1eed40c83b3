package effects

import (
	"testing"

	"github.com/cwbudde/algo-voicefx/internal/testutil"
)

func TestReverbHistoryIsFourFrames(t *testing.T) {
	r, err := NewReverb(32)
	if err != nil {
		t.Fatalf("NewReverb() error = %v", err)
	}
	if r.HistoryLen() != 4*32 {
		t.Fatalf("HistoryLen() = %d, want %d", r.HistoryLen(), 4*32)
	}
	for range 10 {
		r.ProcessInPlace(testutil.DC(0.1, 32), 1)
	}
	if r.HistoryLen() != 4*32 {
		t.Fatal("history length changed after processing")
	}
}

func TestReverbTapWeights(t *testing.T) {
	const n = 16
	const gain = 0.8

	r, err := NewReverb(n)
	if err != nil {
		t.Fatalf("NewReverb() error = %v", err)
	}

	// A single non-silent frame followed by silence walks through the window
	// from newest (weight 0.5^4) to oldest (weight 0.5^1).
	r.ProcessInPlace(testutil.DC(1, n), gain)

	wantWeights := []float64{0.0625, 0.125, 0.25, 0.5, 0}
	for _, w := range wantWeights {
		buf := make([]float64, n)
		r.ProcessInPlace(buf, gain)
		testutil.RequireSliceNearlyEqual(t, buf, testutil.DC(w*gain, n), 1e-15)
	}
}

func TestReverbSumsAllTaps(t *testing.T) {
	const n = 4
	r, err := NewReverb(n)
	if err != nil {
		t.Fatalf("NewReverb() error = %v", err)
	}
	for range 4 {
		r.ProcessInPlace(testutil.DC(1, n), 1)
	}
	buf := make([]float64, n)
	r.ProcessInPlace(buf, 1)
	// 0.5 + 0.25 + 0.125 + 0.0625
	testutil.RequireSliceNearlyEqual(t, buf, testutil.DC(0.9375, n), 1e-15)
}
