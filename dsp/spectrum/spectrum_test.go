package spectrum

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-spectral/dsp/core"
	"github.com/cwbudde/algo-spectral/internal/testutil"
)

func TestComplexNormAndAngle(t *testing.T) {
	spec, _ := core.FromSlice([]float64{3, 4, -1, -1, 0, 0}, 3, 2)

	mag, err := ComplexNorm(spec, 1)
	if err != nil {
		t.Fatalf("ComplexNorm() error = %v", err)
	}

	testutil.RequireShape(t, mag, 3)
	testutil.RequireSliceNearlyEqual(t, mag.Data(), []float64{5, math.Sqrt2, 0}, 1e-12)

	phase, err := Angle(spec)
	if err != nil {
		t.Fatalf("Angle() error = %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, phase.Data(), []float64{math.Atan2(4, 3), -3 * math.Pi / 4, 0}, 1e-12)
}

func TestComplexNormPowerAppliedAfterNorm(t *testing.T) {
	spec, _ := core.FromSlice([]float64{3, 4, 0, 2}, 1, 2, 2)

	tests := []struct {
		power float64
		want  []float64
	}{
		{power: 2, want: []float64{25, 4}},
		{power: 0.5, want: []float64{math.Sqrt(5), math.Sqrt2}},
		{power: 3, want: []float64{125, 8}},
	}
	for _, tt := range tests {
		got, err := ComplexNorm(spec, tt.power)
		if err != nil {
			t.Fatalf("ComplexNorm(power=%v) error = %v", tt.power, err)
		}

		testutil.RequireShape(t, got, 1, 2)
		testutil.RequireSliceNearlyEqual(t, got.Data(), tt.want, 1e-9)
	}
}

func TestAngleRange(t *testing.T) {
	spec, _ := core.FromSlice([]float64{-1, 0, -1, -0.5, 0, 1}, 3, 2)

	phase, _ := Angle(spec)
	for i, v := range phase.Data() {
		if v <= -math.Pi || v > math.Pi {
			t.Fatalf("phase[%d] = %v outside (-pi, pi]", i, v)
		}
	}

	if phase.Data()[0] != math.Pi {
		t.Fatalf("Angle(-1+0i) = %v, want pi", phase.Data()[0])
	}
}

func TestMagPhaseRoundTrip(t *testing.T) {
	data := testutil.DeterministicNoise(11, 2, 4*5*2)
	spec, _ := core.FromSlice(data, 4, 5, 2)

	mag, phase, err := MagPhase(spec, 1)
	if err != nil {
		t.Fatalf("MagPhase() error = %v", err)
	}

	back, err := FromPolar(mag, phase)
	if err != nil {
		t.Fatalf("FromPolar() error = %v", err)
	}

	testutil.RequireShape(t, back, 4, 5, 2)
	testutil.RequireSliceNearlyEqual(t, back.Data(), data, 1e-12)
}

func TestComplexOpsRejectNonComplex(t *testing.T) {
	bad, _ := core.NewArray(4, 3)

	if _, err := ComplexNorm(bad, 1); !errors.Is(err, core.ErrShapeMismatch) {
		t.Fatalf("ComplexNorm() error = %v, want ErrShapeMismatch", err)
	}

	if _, err := Angle(bad); !errors.Is(err, core.ErrShapeMismatch) {
		t.Fatalf("Angle() error = %v, want ErrShapeMismatch", err)
	}

	ok, _ := core.NewArray(4, 2)
	if _, err := ComplexNorm(ok, math.NaN()); !errors.Is(err, core.ErrDomainViolation) {
		t.Fatalf("ComplexNorm(NaN) error = %v, want ErrDomainViolation", err)
	}
}
