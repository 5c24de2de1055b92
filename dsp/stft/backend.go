package stft

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-spectral/dsp/core"
	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Backend computes the one-sided DFT of a real frame.
//
// Implementations are not required to be safe for concurrent use.
type Backend interface {
	// Forward writes the first len(dst) bins of the DFT of frame into dst.
	// len(dst) is fftLen/2+1 and len(frame) is fftLen.
	Forward(dst []complex128, frame []float64) error
}

// BackendFactory creates a Backend for a given FFT length.
type BackendFactory func(fftLen int) (Backend, error)

// DefaultBackend uses algo-fft for power-of-two lengths and gonum otherwise.
func DefaultBackend(fftLen int) (Backend, error) {
	if isPowerOf2(fftLen) {
		return AlgoFFT(fftLen)
	}

	return Gonum(fftLen)
}

type algoFFTBackend struct {
	plan *algofft.Plan[complex128]
	buf  []complex128
}

// AlgoFFT returns a backend built on an algo-fft complex plan.
func AlgoFFT(fftLen int) (Backend, error) {
	plan, err := algofft.NewPlan64(fftLen)
	if err != nil {
		return nil, fmt.Errorf("stft: failed to create FFT plan: %w", err)
	}

	return &algoFFTBackend{plan: plan, buf: make([]complex128, fftLen)}, nil
}

func (b *algoFFTBackend) Forward(dst []complex128, frame []float64) error {
	for i, v := range frame {
		b.buf[i] = complex(v, 0)
	}

	if err := b.plan.Forward(b.buf, b.buf); err != nil {
		return fmt.Errorf("stft: forward FFT failed: %w", err)
	}

	copy(dst, b.buf)

	return nil
}

type gonumBackend struct {
	fft *fourier.FFT
}

// Gonum returns a backend built on gonum's real FFT. It supports any length.
func Gonum(fftLen int) (Backend, error) {
	if fftLen <= 0 {
		return nil, fmt.Errorf("stft: fft length must be > 0: %d", fftLen)
	}

	return &gonumBackend{fft: fourier.NewFFT(fftLen)}, nil
}

func (b *gonumBackend) Forward(dst []complex128, frame []float64) error {
	b.fft.Coefficients(dst, frame)
	return nil
}

type goDSPBackend struct{}

// GoDSP returns a backend built on github.com/mjibson/go-dsp.
func GoDSP(fftLen int) (Backend, error) {
	if fftLen <= 0 {
		return nil, fmt.Errorf("stft: fft length must be > 0: %d", fftLen)
	}

	return goDSPBackend{}, nil
}

func (goDSPBackend) Forward(dst []complex128, frame []float64) error {
	copy(dst, fft.FFTReal(frame))
	return nil
}

// ParseBackend maps "auto", "algofft", "gonum" or "godsp" to a factory.
func ParseBackend(name string) (BackendFactory, error) {
	switch name {
	case "", "auto":
		return DefaultBackend, nil
	case "algofft":
		return AlgoFFT, nil
	case "gonum":
		return Gonum, nil
	case "godsp":
		return GoDSP, nil
	default:
		return nil, fmt.Errorf("stft: unknown backend %q: %w", name, core.ErrInvalidConfiguration)
	}
}

func isPowerOf2(v int) bool {
	return v > 0 && (v&(v-1)) == 0
}
