package stft

import (
	"fmt"
	"runtime"

	"github.com/cwbudde/algo-spectral/dsp/core"
	"github.com/cwbudde/algo-spectral/dsp/window"
	"golang.org/x/sync/errgroup"
)

// Params configures the [Transform] primitive.
type Params struct {
	FFTLen int
	HopLen int
	// Window has length <= FFTLen; shorter windows are zero-padded centrally.
	Window []float64
	// Center reflect-pads each row by FFTLen/2 so frame t is centred on
	// sample t*HopLen. Callers that pad themselves must leave it false.
	Center bool
	// Backend defaults to DefaultBackend.
	Backend BackendFactory
	// Workers bounds row parallelism; <= 0 uses GOMAXPROCS.
	Workers int
}

// NumFrames returns how many frames fit in length samples without centring.
// It returns 0 when length < fftLen.
func NumFrames(length, fftLen, hopLen int) int {
	if length < fftLen || hopLen <= 0 {
		return 0
	}

	return (length-fftLen)/hopLen + 1
}

// Transform computes the short-time Fourier transform of every row of a
// (rows, time) array and returns (rows, FFTLen/2+1, frames, 2).
func Transform(rows *core.Array, p Params) (*core.Array, error) {
	if rows == nil || rows.Rank() != 2 {
		return nil, fmt.Errorf("stft: transform needs a (rows, time) array: %w", core.ErrShapeMismatch)
	}

	if p.FFTLen <= 0 || p.HopLen <= 0 {
		return nil, fmt.Errorf("stft: fft length and hop length must be > 0: %d, %d: %w",
			p.FFTLen, p.HopLen, core.ErrInvalidConfiguration)
	}

	if err := window.Validate(p.Window, p.FFTLen); err != nil {
		return nil, err
	}

	if p.Center {
		padded, err := PadRows(rows, p.FFTLen/2, PadReflect)
		if err != nil {
			return nil, err
		}

		rows = padded
	}

	numRows := rows.Dim(0)
	length := rows.Dim(1)

	frames := NumFrames(length, p.FFTLen, p.HopLen)
	if frames < 1 {
		return nil, fmt.Errorf("stft: signal length %d is shorter than fft length %d: %w",
			length, p.FFTLen, core.ErrShapeMismatch)
	}

	bins := p.FFTLen/2 + 1

	out, err := core.NewArray(numRows, bins, frames, 2)
	if err != nil {
		return nil, err
	}

	factory := p.Backend
	if factory == nil {
		factory = DefaultBackend
	}

	win := window.PadCentered(p.Window, p.FFTLen)

	workers := p.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	workers = min(workers, numRows)
	chunk := (numRows + workers - 1) / workers

	var g errgroup.Group

	for start := 0; start < numRows; start += chunk {
		end := min(start+chunk, numRows)

		g.Go(func() error {
			backend, err := factory(p.FFTLen)
			if err != nil {
				return err
			}

			w := rowWorker{
				backend: backend,
				window:  win,
				hop:     p.HopLen,
				frame:   make([]float64, p.FFTLen),
				bins:    make([]complex128, bins),
			}

			for r := start; r < end; r++ {
				src := rows.Data()[r*length : (r+1)*length]
				dst := out.Data()[r*bins*frames*2 : (r+1)*bins*frames*2]

				if err := w.run(dst, src, frames); err != nil {
					return err
				}
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

type rowWorker struct {
	backend Backend
	window  []float64
	hop     int
	frame   []float64
	bins    []complex128
}

// run transforms one row into dst laid out as (bins, frames, 2).
func (w *rowWorker) run(dst, src []float64, frames int) error {
	numBins := len(w.bins)

	for f := range frames {
		pos := f * w.hop
		window.ApplyCoefficients(w.frame, src[pos:pos+len(w.frame)], w.window)

		if err := w.backend.Forward(w.bins, w.frame); err != nil {
			return err
		}

		for k := range numBins {
			off := (k*frames + f) * 2
			dst[off] = real(w.bins[k])
			dst[off+1] = imag(w.bins[k])
		}
	}

	return nil
}
