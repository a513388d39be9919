package common

import (
	"math"
	"testing"
)

func TestExpDecayConverges(t *testing.T) {
	v := 0.0
	for i := 0; i < 10*TPS; i++ {
		v = ExpDecay(v, 10, 5, FixedDt)
		if v > 10 {
			t.Fatalf("overshoot at tick %d: %v", i, v)
		}
	}
	if math.Abs(v-10) > 1e-6 {
		t.Fatalf("expected convergence to 10, got %v", v)
	}
	if got := ExpDecay(3, 7, 0, FixedDt); got != 7 {
		t.Fatalf("zero rate should snap, got %v", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{-1, 0, 1, 0},
		{0.5, 0, 1, 0.5},
		{2, 0, 1, 1},
	}
	for _, tc := range tests {
		if got := Clamp(tc.v, tc.lo, tc.hi); got != tc.want {
			t.Fatalf("Clamp(%v, %v, %v) = %v, want %v", tc.v, tc.lo, tc.hi, got, tc.want)
		}
	}
}
