package core

import (
	"math"
	"testing"
)

func TestLinspace(t *testing.T) {
	got := Linspace(0, 1, 5)
	want := []float64{0, 0.25, 0.5, 0.75, 1}

	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-15 {
			t.Fatalf("Linspace[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if one := Linspace(3, 7, 1); len(one) != 1 || one[0] != 3 {
		t.Fatalf("Linspace(n=1) = %v, want [3]", one)
	}

	if Linspace(0, 1, 0) != nil {
		t.Fatal("Linspace(n=0) should be nil")
	}
}

func TestIsFinitePositive(t *testing.T) {
	tests := []struct {
		v    float64
		want bool
	}{
		{1, true},
		{0, false},
		{-1, false},
		{math.Inf(1), false},
		{math.NaN(), false},
	}
	for _, tt := range tests {
		if got := IsFinitePositive(tt.v); got != tt.want {
			t.Fatalf("IsFinitePositive(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1, 1+1e-13, 0) {
		t.Fatal("expected values to be nearly equal")
	}

	if NearlyEqual(1, 1.1, 1e-6) {
		t.Fatal("expected values to differ")
	}
}
