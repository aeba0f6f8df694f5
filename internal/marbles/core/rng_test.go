package core

import (
	"math"
	"testing"
)

func TestUnitFloatStaysBelowOne(t *testing.T) {
	tests := []struct {
		x    uint64
		want float64
	}{
		{0, 0},
		{1 << 63, 0.5},
		{math.MaxUint64, 1 - 1.0/(1<<53)},
		{math.MaxUint64 - 511, 1 - 1.0/(1<<53)},
	}
	for _, tc := range tests {
		if got := unitFloat(tc.x); got != tc.want {
			t.Errorf("unitFloat(%#x) = %v, expected %v", tc.x, got, tc.want)
		}
	}
}

func TestSimpleRNGFloatRange(t *testing.T) {
	r := NewRNG(7)
	for i := 0; i < 10000; i++ {
		if f := r.Float(); f < 0 || f >= 1 {
			t.Fatalf("draw %d: Float() = %v outside [0, 1)", i, f)
		}
	}
}
