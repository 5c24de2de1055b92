package spectrum

import (
	"fmt"

	"github.com/cwbudde/algo-spectral/dsp/core"
)

// Downmix averages a over axis, keeping that axis with size 1.
//
// For a waveform (batch, channel, time) use axis 1 to get (batch, 1, time);
// the same call reduces a magnitude spectrogram (batch, channel, bins, frames)
// to (batch, 1, bins, frames). Negative axes count from the end.
func Downmix(a *core.Array, axis int) (*core.Array, error) {
	if a == nil {
		return nil, fmt.Errorf("spectrum: nil array: %w", core.ErrShapeMismatch)
	}

	rank := a.Rank()
	if axis < 0 {
		axis += rank
	}

	if axis < 0 || axis >= rank {
		return nil, fmt.Errorf("spectrum: downmix axis %d out of range for shape %s: %w",
			axis, core.FormatShape(a.Shape()), core.ErrShapeMismatch)
	}

	shape := a.Shape()
	n := shape[axis]

	inner := 1
	for _, d := range shape[axis+1:] {
		inner *= d
	}

	outer := a.Len() / (n * inner)

	shape[axis] = 1

	out, err := core.NewArray(shape...)
	if err != nil {
		return nil, err
	}

	src := a.Data()
	dst := out.Data()
	scale := 1 / float64(n)

	for o := range outer {
		acc := dst[o*inner : (o+1)*inner]
		for c := range n {
			row := src[(o*n+c)*inner : (o*n+c+1)*inner]
			for i, v := range row {
				acc[i] += v
			}
		}

		for i := range acc {
			acc[i] *= scale
		}
	}

	return out, nil
}
