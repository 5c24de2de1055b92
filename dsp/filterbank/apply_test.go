package filterbank

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-spectral/dsp/core"
	"github.com/cwbudde/algo-spectral/internal/testutil"
)

func TestApplyIdentityIsNoop(t *testing.T) {
	spec, _ := core.FromSlice(testutil.DeterministicNoise(7, 1, 2*3*6*5), 2, 3, 6, 5)

	fb, err := Identity(6).Filterbank()
	if err != nil {
		t.Fatalf("Identity.Filterbank() error = %v", err)
	}

	out, err := Apply(spec, fb)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	testutil.RequireShape(t, out, 2, 3, 6, 5)
	testutil.RequireSliceNearlyEqual(t, out.Data(), spec.Data(), 1e-15)
}

func TestApplyContractsFrequencyAxis(t *testing.T) {
	// spec (1, 3, 2): rows are frequencies, columns frames.
	spec, _ := core.FromSlice([]float64{
		1, 2,
		3, 4,
		5, 6,
	}, 1, 3, 2)

	// fb (3, 2): band 0 sums all rows, band 1 picks row 2.
	fb, err := NewMatrix(3, 2, []float64{
		1, 0,
		1, 0,
		1, 1,
	})
	if err != nil {
		t.Fatalf("NewMatrix() error = %v", err)
	}

	out, err := Apply(spec, fb)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	testutil.RequireShape(t, out, 1, 2, 2)
	testutil.RequireSliceNearlyEqual(t, out.Data(), []float64{9, 12, 5, 6}, 1e-12)
}

func TestApplyMelEndToEndShape(t *testing.T) {
	spec, _ := core.NewArray(1, 513, 60)

	fb, err := BuildMel(513, 40, 0, 8000, false)
	if err != nil {
		t.Fatalf("BuildMel() error = %v", err)
	}

	out, err := Apply(spec, fb)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	testutil.RequireShape(t, out, 1, 40, 60)
}

func TestApplyRejectsMismatch(t *testing.T) {
	spec, _ := core.NewArray(2, 10, 4)
	fb, _ := Identity(9).Filterbank()

	if _, err := Apply(spec, fb); !errors.Is(err, core.ErrShapeMismatch) {
		t.Fatalf("Apply() error = %v, want ErrShapeMismatch", err)
	}

	flat, _ := core.NewArray(9)
	if _, err := Apply(flat, fb); !errors.Is(err, core.ErrShapeMismatch) {
		t.Fatalf("Apply(rank 1) error = %v, want ErrShapeMismatch", err)
	}
}
