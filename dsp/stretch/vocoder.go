package stretch

import (
	"fmt"
	"math"
	"runtime"

	"github.com/cwbudde/algo-spectral/dsp/core"
	"golang.org/x/sync/errgroup"
)

// maxFrames bounds the output length for very small rates.
const maxFrames = 1 << 24

// PhaseAdvance returns the expected phase rotation per hop of each of bins
// frequency bins: bins points evenly spaced over [0, π·hopLen].
func PhaseAdvance(hopLen, bins int) ([]float64, error) {
	if hopLen <= 0 {
		return nil, fmt.Errorf("stretch: hop length must be > 0: %d: %w", hopLen, core.ErrInvalidConfiguration)
	}

	if bins <= 0 {
		return nil, fmt.Errorf("stretch: bin count must be > 0: %d: %w", bins, core.ErrInvalidConfiguration)
	}

	return core.Linspace(0, math.Pi*float64(hopLen), bins), nil
}

// NumFrames returns the output frame count for frames input frames at rate:
// the number of positions 0, rate, 2·rate, ... below frames.
func NumFrames(frames int, rate float64) int {
	if frames <= 0 || !core.IsFinitePositive(rate) {
		return 0
	}

	n := int(math.Ceil(float64(frames) / rate))
	for n > 1 && float64(n-1)*rate >= float64(frames) {
		n--
	}

	for float64(n)*rate < float64(frames) {
		n++
	}

	return n
}

// PhaseVocoder stretches a complex spectrogram of shape (..., bins, frames, 2)
// along the frame axis by rate and returns (..., bins, newFrames, 2).
// advance must hold one entry per bin, usually from [PhaseAdvance].
// The input is not modified.
func PhaseVocoder(spec *core.Array, rate float64, advance []float64) (*core.Array, error) {
	return phaseVocoder(spec, rate, advance, 0)
}

func phaseVocoder(spec *core.Array, rate float64, advance []float64, workers int) (*core.Array, error) {
	if !core.IsFinitePositive(rate) {
		return nil, fmt.Errorf("stretch: rate must be finite and > 0: %v: %w", rate, core.ErrDomainViolation)
	}

	if spec == nil || spec.Rank() < 3 || spec.Dim(-1) != 2 {
		shape := "nil"
		if spec != nil {
			shape = core.FormatShape(spec.Shape())
		}

		return nil, fmt.Errorf("stretch: spectrogram must be (..., bins, frames, 2), got %s: %w",
			shape, core.ErrShapeMismatch)
	}

	bins := spec.Dim(-3)
	frames := spec.Dim(-2)

	if len(advance) != bins {
		return nil, fmt.Errorf("stretch: phase advance has %d entries, spectrogram has %d bins: %w",
			len(advance), bins, core.ErrShapeMismatch)
	}

	if float64(frames)/rate > maxFrames {
		return nil, fmt.Errorf("stretch: rate %v yields more than %d frames: %w", rate, maxFrames, core.ErrDomainViolation)
	}

	newFrames := NumFrames(frames, rate)
	rows := spec.Leading(3)

	shape := spec.Shape()
	shape[len(shape)-2] = newFrames

	out, err := core.NewArray(shape...)
	if err != nil {
		return nil, err
	}

	steps := make([]float64, newFrames)
	for j := range steps {
		steps[j] = float64(j) * rate
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	inStride := bins * frames * 2
	outStride := bins * newFrames * 2

	var g errgroup.Group
	g.SetLimit(workers)

	for r := range rows {
		g.Go(func() error {
			src := spec.Data()[r*inStride : (r+1)*inStride]
			dst := out.Data()[r*outStride : (r+1)*outStride]

			for k := range bins {
				stretchBin(
					dst[k*newFrames*2:(k+1)*newFrames*2],
					src[k*frames*2:(k+1)*frames*2],
					steps, advance[k],
				)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// stretchBin resynthesises one bin. src holds frames (re, im) pairs, dst
// receives len(steps) pairs.
func stretchBin(dst, src, steps []float64, advance float64) {
	frames := len(src) / 2

	// Frames past the end read as zero.
	at := func(i int) (float64, float64) {
		if i >= frames {
			return 0, 0
		}

		return src[2*i], src[2*i+1]
	}

	re0, im0 := at(0)
	acc := math.Atan2(im0, re0)

	for j, t := range steps {
		i0 := int(math.Floor(t))
		alpha := t - float64(i0)

		reA, imA := at(i0)
		reB, imB := at(i0 + 1)

		m0 := math.Hypot(reA, imA)
		m1 := math.Hypot(reB, imB)
		mag := alpha*m1 + (1-alpha)*m0

		dst[2*j] = mag * math.Cos(acc)
		dst[2*j+1] = mag * math.Sin(acc)

		dphi := math.Atan2(imB, reB) - math.Atan2(imA, reA) - advance
		acc += advance + wrapPhase(dphi)
	}
}

// wrapPhase maps x to the principal range by removing the nearest multiple of 2π.
func wrapPhase(x float64) float64 {
	return x - 2*math.Pi*math.RoundToEven(x/(2*math.Pi))
}
