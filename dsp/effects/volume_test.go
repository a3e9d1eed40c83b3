package effects

import (
	"testing"

	"github.com/cwbudde/algo-voicefx/internal/testutil"
)

func TestVolume(t *testing.T) {
	v := NewVolume()
	in := testutil.DeterministicNoise(1, 0.5, 32)

	buf := append([]float64(nil), in...)
	v.ProcessInPlace(buf, DefaultVolume)
	testutil.RequireSliceNearlyEqual(t, buf, in, 0)

	v.ProcessInPlace(buf, 0.5)
	want := make([]float64, len(in))
	for i, x := range in {
		want[i] = x * 0.5
	}
	testutil.RequireSliceNearlyEqual(t, buf, want, 1e-15)

	v.ProcessInPlace(buf, -3)
	testutil.RequireSliceNearlyEqual(t, buf, make([]float64, len(in)), 0)
}

func TestNamesOrder(t *testing.T) {
	want := []string{"Echo", "Reverb", "Delay", "Distortion", "Volume"}
	got := Names()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
