package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -1, min: 0, max: 1, expected: 0},
		{name: "above", value: 2, min: 0, max: 1, expected: 1},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestClampFinite(t *testing.T) {
	if got := ClampFinite(math.NaN(), -12, 12, 0); got != 0 {
		t.Fatalf("ClampFinite(NaN) = %v, want 0", got)
	}
	if got := ClampFinite(math.Inf(1), -12, 12, 0); got != 12 {
		t.Fatalf("ClampFinite(+Inf) = %v, want 12", got)
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
}

func TestDBConversions(t *testing.T) {
	if db := LinearToDB(0.5); !NearlyEqual(db, -6.020599913279624, 1e-12) {
		t.Fatalf("LinearToDB(0.5) = %v, want -6.0206", db)
	}
	if db := LinearToDB(1); db != 0 {
		t.Fatalf("LinearToDB(1) = %v, want 0", db)
	}
	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("expected -Inf for zero")
	}
	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("expected NaN for negative input")
	}
}

func TestSemitonesToRatio(t *testing.T) {
	tests := []struct {
		semitones float64
		want      float64
	}{
		{semitones: 12, want: 2},
		{semitones: -12, want: 0.5},
		{semitones: 0, want: 1},
	}
	for _, tt := range tests {
		if got := SemitonesToRatio(tt.semitones); !NearlyEqual(got, tt.want, 1e-12) {
			t.Fatalf("SemitonesToRatio(%v) = %v, want %v", tt.semitones, got, tt.want)
		}
	}
}
