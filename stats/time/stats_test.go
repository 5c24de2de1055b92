package time

import (
	"math"
	"testing"
)

const tolerance = 1e-12

func TestCalculateEmpty(t *testing.T) {
	if s := Calculate(nil); s != (Stats{}) {
		t.Fatalf("Calculate(nil) = %+v, want zero", s)
	}
}

func TestCalculateBasic(t *testing.T) {
	s := Calculate([]float64{1, -2, 3, -4})

	if s.Length != 4 || s.Max != 3 || s.MaxPos != 2 || s.Min != -4 || s.MinPos != 3 {
		t.Fatalf("Calculate() = %+v", s)
	}

	checks := []struct {
		name      string
		got, want float64
	}{
		{name: "mean", got: s.Mean, want: -0.5},
		{name: "stddev", got: s.StdDev, want: math.Sqrt(7.25)},
		{name: "rms", got: s.RMS, want: math.Sqrt(7.5)},
		{name: "peak", got: s.Peak, want: 4},
		{name: "crest", got: s.CrestFactor, want: 4 / math.Sqrt(7.5)},
	}

	for _, c := range checks {
		if math.Abs(c.got-c.want) > tolerance {
			t.Fatalf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}

	if s.ZeroCrossings != 3 {
		t.Fatalf("ZeroCrossings = %d, want 3", s.ZeroCrossings)
	}
}

func TestCalculateSineCrestFactor(t *testing.T) {
	x := make([]float64, 4800)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * 100 * float64(i) / 48000)
	}

	s := Calculate(x)
	if math.Abs(s.CrestFactor-math.Sqrt2) > 1e-6 {
		t.Fatalf("CrestFactor = %v, want sqrt(2)", s.CrestFactor)
	}

	if math.Abs(s.Mean) > 1e-9 {
		t.Fatalf("Mean = %v, want 0", s.Mean)
	}
}

func TestCalculateSkipsNonFinite(t *testing.T) {
	s := Calculate([]float64{math.Inf(-1), 2, math.NaN(), 4})

	if s.NonFinite != 2 || s.Length != 2 {
		t.Fatalf("NonFinite = %d, Length = %d, want 2, 2", s.NonFinite, s.Length)
	}

	if s.Min != 2 || s.MinPos != 1 || s.Max != 4 || s.MaxPos != 3 || s.Mean != 3 {
		t.Fatalf("Calculate() = %+v", s)
	}
}

func TestCalculateSilence(t *testing.T) {
	s := Calculate(make([]float64, 8))
	if s.CrestFactor != 0 || s.RMS != 0 || s.ZeroCrossings != 0 {
		t.Fatalf("Calculate(silence) = %+v", s)
	}
}
