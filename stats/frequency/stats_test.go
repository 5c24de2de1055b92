package frequency

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-spectral/dsp/core"
)

const tolerance = 1e-9

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestFrameTriangle(t *testing.T) {
	d, err := Frame([]float64{0, 1, 2, 1, 0}, 8000)
	if err != nil {
		t.Fatalf("Frame() error = %v", err)
	}

	checks := []struct {
		name      string
		got, want float64
	}{
		{name: "energy", got: d.Energy, want: 6},
		{name: "peak hz", got: d.PeakHz, want: 2000},
		{name: "centroid", got: d.Centroid, want: 2000},
		{name: "spread", got: d.Spread, want: math.Sqrt(5e5)},
		{name: "rolloff", got: d.Rolloff, want: 3000},
		{name: "bandwidth", got: d.Bandwidth, want: 2000 * (2 - math.Sqrt2)},
		{name: "flatness", got: d.Flatness, want: 0},
	}

	for _, c := range checks {
		if !almostEqual(c.got, c.want, tolerance) {
			t.Fatalf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}

	if d.PeakBin != 2 {
		t.Fatalf("PeakBin = %d, want 2", d.PeakBin)
	}
}

func TestFrameFlatness(t *testing.T) {
	tests := []struct {
		name string
		mag  []float64
		want float64
	}{
		{name: "flat", mag: []float64{0, 1, 1, 1, 1}, want: 1},
		{name: "dc ignored", mag: []float64{100, 2, 2, 2}, want: 1},
		{name: "zero bin", mag: []float64{1, 1, 0, 1}, want: 0},
		{name: "two levels", mag: []float64{0, 1, 4}, want: 2.0 / 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Frame(tt.mag, 1000)
			if err != nil {
				t.Fatalf("Frame() error = %v", err)
			}

			if !almostEqual(d.Flatness, tt.want, tolerance) {
				t.Fatalf("Flatness = %v, want %v", d.Flatness, tt.want)
			}
		})
	}
}

func TestFrameRolloffFraction(t *testing.T) {
	mag := []float64{0, 1, 1, 1, 1}

	d, err := Frame(mag, 8000, WithRolloff(0.5))
	if err != nil {
		t.Fatalf("Frame() error = %v", err)
	}

	if !almostEqual(d.Rolloff, 2000, tolerance) {
		t.Fatalf("Rolloff = %v, want 2000", d.Rolloff)
	}
}

func TestFrameDegenerate(t *testing.T) {
	for _, mag := range [][]float64{nil, {3}, {0, 0, 0}} {
		d, err := Frame(mag, 8000)
		if err != nil {
			t.Fatalf("Frame(%v) error = %v", mag, err)
		}

		if d != (Descriptors{}) {
			t.Fatalf("Frame(%v) = %+v, want zero descriptors", mag, d)
		}
	}
}

func TestFrameErrors(t *testing.T) {
	if _, err := Frame([]float64{1, 2}, 0); !errors.Is(err, core.ErrInvalidConfiguration) {
		t.Fatalf("Frame(sr=0) error = %v, want ErrInvalidConfiguration", err)
	}

	for _, f := range []float64{0, -0.1, 1.5, math.NaN()} {
		if _, err := Frame([]float64{1, 2}, 8000, WithRolloff(f)); !errors.Is(err, core.ErrInvalidConfiguration) {
			t.Fatalf("Frame(rolloff=%v) error = %v, want ErrInvalidConfiguration", f, err)
		}
	}
}

func TestSpectrogram(t *testing.T) {
	// Two rows of a (2, 5, 3) spectrogram; frame f of row r peaks at bin r+f.
	mag, _ := core.NewArray(2, 5, 3)
	for r := range 2 {
		for f := range 3 {
			mag.Set(1, r, r+f, f)
		}
	}

	track, err := Spectrogram(mag, 8000)
	if err != nil {
		t.Fatalf("Spectrogram() error = %v", err)
	}

	if track.Rows != 2 || track.Frames != 3 || len(track.Values) != 6 {
		t.Fatalf("track = %d x %d (%d values), want 2 x 3", track.Rows, track.Frames, len(track.Values))
	}

	for r := range 2 {
		for f := range 3 {
			d := track.At(r, f)
			if d.PeakBin != r+f {
				t.Fatalf("At(%d, %d).PeakBin = %d, want %d", r, f, d.PeakBin, r+f)
			}

			if !almostEqual(d.Centroid, float64(r+f)*1000, tolerance) {
				t.Fatalf("At(%d, %d).Centroid = %v, want %v", r, f, d.Centroid, float64(r+f)*1000)
			}
		}
	}

	mean := track.Mean()
	if !almostEqual(mean.Centroid, 1500, tolerance) || mean.PeakBin != 2 {
		t.Fatalf("Mean() = %+v, want centroid 1500 and peak bin 2", mean)
	}
}

func TestSpectrogramErrors(t *testing.T) {
	flat, _ := core.NewArray(4)
	ok, _ := core.NewArray(4, 2)

	if _, err := Spectrogram(flat, 8000); !errors.Is(err, core.ErrShapeMismatch) {
		t.Fatalf("Spectrogram(rank 1) error = %v, want ErrShapeMismatch", err)
	}

	if _, err := Spectrogram(nil, 8000); !errors.Is(err, core.ErrShapeMismatch) {
		t.Fatalf("Spectrogram(nil) error = %v, want ErrShapeMismatch", err)
	}

	if _, err := Spectrogram(ok, -1); !errors.Is(err, core.ErrInvalidConfiguration) {
		t.Fatalf("Spectrogram(sr=-1) error = %v, want ErrInvalidConfiguration", err)
	}
}

func TestTrackMeanEmpty(t *testing.T) {
	if m := (&Track{}).Mean(); m != (Descriptors{}) {
		t.Fatalf("Mean() = %+v, want zero", m)
	}
}
