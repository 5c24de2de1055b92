package spectrum

import (
	"fmt"
	"math"
	"sync"

	"github.com/cwbudde/algo-spectral/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// ComplexNorm returns the Euclidean norm over the trailing pair dimension,
// raised to power. power 1 gives the magnitude, power 2 the power spectrum.
//
// The result drops the trailing dimension: (..., 2) becomes (...).
// Magnitudes are computed with SIMD kernels when available; scratch buffers
// are pooled so steady-state calls allocate only the output.
func ComplexNorm(spec *core.Array, power float64) (*core.Array, error) {
	if err := checkComplex(spec); err != nil {
		return nil, err
	}

	if math.IsNaN(power) || math.IsInf(power, 0) {
		return nil, fmt.Errorf("spectrum: power must be finite: %f: %w", power, core.ErrDomainViolation)
	}

	out, err := newReal(spec)
	if err != nil {
		return nil, err
	}

	dst := out.Data()
	re, im, buf := getScratch(len(dst))
	defer putScratch(buf)

	deinterleave(re, im, spec.Data())

	switch power {
	case 1:
		vecmath.Magnitude(dst, re, im)
	case 2:
		vecmath.Power(dst, re, im)
	default:
		vecmath.Magnitude(dst, re, im)
		for i, v := range dst {
			dst[i] = math.Pow(v, power)
		}
	}

	return out, nil
}

// Angle returns atan2(imag, real) over the trailing pair dimension, in (-pi, pi].
func Angle(spec *core.Array) (*core.Array, error) {
	if err := checkComplex(spec); err != nil {
		return nil, err
	}

	out, err := newReal(spec)
	if err != nil {
		return nil, err
	}

	src := spec.Data()
	dst := out.Data()

	for i := range dst {
		dst[i] = math.Atan2(src[2*i+1], src[2*i])
	}

	return out, nil
}

// MagPhase splits a complex spectrogram into ComplexNorm(spec, power) and Angle(spec).
func MagPhase(spec *core.Array, power float64) (mag, phase *core.Array, err error) {
	mag, err = ComplexNorm(spec, power)
	if err != nil {
		return nil, nil, err
	}

	phase, err = Angle(spec)
	if err != nil {
		return nil, nil, err
	}

	return mag, phase, nil
}

// FromPolar builds a complex spectrogram (..., 2) from equally shaped
// magnitude and phase arrays.
func FromPolar(mag, phase *core.Array) (*core.Array, error) {
	if mag == nil || phase == nil || !core.SameShape(mag.Shape(), phase.Shape()) {
		return nil, fmt.Errorf("spectrum: magnitude and phase shapes differ: %w", core.ErrShapeMismatch)
	}

	out, err := core.NewArray(append(mag.Shape(), 2)...)
	if err != nil {
		return nil, err
	}

	m := mag.Data()
	p := phase.Data()
	dst := out.Data()

	for i := range m {
		sin, cos := math.Sincos(p[i])
		dst[2*i] = m[i] * cos
		dst[2*i+1] = m[i] * sin
	}

	return out, nil
}

func checkComplex(spec *core.Array) error {
	if spec == nil {
		return fmt.Errorf("spectrum: nil spectrogram: %w", core.ErrShapeMismatch)
	}

	if spec.Rank() < 2 || spec.Dim(-1) != 2 {
		return fmt.Errorf("spectrum: complex array needs a trailing dimension of 2, got shape %s: %w",
			core.FormatShape(spec.Shape()), core.ErrShapeMismatch)
	}

	return nil
}

func newReal(spec *core.Array) (*core.Array, error) {
	shape := spec.Shape()
	return core.NewArray(shape[:len(shape)-1]...)
}

func deinterleave(re, im, pairs []float64) {
	for i := range re {
		re[i] = pairs[2*i]
		im[i] = pairs[2*i+1]
	}
}
