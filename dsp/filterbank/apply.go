package filterbank

import (
	"fmt"

	"github.com/cwbudde/algo-spectral/dsp/core"
	"gonum.org/v1/gonum/mat"
)

// Apply maps a magnitude spectrogram (..., numFreqs, frames) through fb and
// returns (..., numBands, frames). All other axes are preserved.
func Apply(spec *core.Array, fb *Matrix) (*core.Array, error) {
	if spec == nil || fb == nil {
		return nil, fmt.Errorf("filterbank: nil spectrogram or matrix: %w", core.ErrInvalidConfiguration)
	}

	if spec.Rank() < 2 {
		return nil, fmt.Errorf("filterbank: spectrogram rank must be >= 2, got shape %s: %w",
			core.FormatShape(spec.Shape()), core.ErrShapeMismatch)
	}

	freqs := spec.Dim(-2)
	frames := spec.Dim(-1)

	if freqs != fb.numFreqs {
		return nil, fmt.Errorf("filterbank: spectrogram has %d frequency rows, filterbank expects %d: %w",
			freqs, fb.numFreqs, core.ErrShapeMismatch)
	}

	outShape := spec.Shape()
	outShape[len(outShape)-2] = fb.numBands

	out, err := core.NewArray(outShape...)
	if err != nil {
		return nil, err
	}

	weightsT := fb.dense().T()
	in := spec.Data()
	dst := out.Data()
	inStride := freqs * frames
	outStride := fb.numBands * frames

	for l := range spec.Leading(2) {
		x := mat.NewDense(freqs, frames, in[l*inStride:(l+1)*inStride])
		y := mat.NewDense(fb.numBands, frames, dst[l*outStride:(l+1)*outStride])
		y.Mul(weightsT, x)
	}

	return out, nil
}
